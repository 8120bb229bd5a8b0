package user

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the user record as exposed to the API, with the per-type
// leave balances attached.
type Profile struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	IsAdmin  bool           `json:"is_admin"`
	Balances map[string]int `json:"leave_balance"`
}
