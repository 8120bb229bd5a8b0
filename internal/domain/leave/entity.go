package leave

import "time"

// Type is the category of time off. Each type has its own balance.
type Type string

const (
	TypeAnnual   Type = "annual"
	TypeSick     Type = "sick"
	TypePersonal Type = "personal"
)

// AllTypes returns every leave type in definition order.
func AllTypes() []Type {
	return []Type{TypeAnnual, TypeSick, TypePersonal}
}

// DefaultBalance returns the initial balance granted per type.
func DefaultBalance(t Type) int {
	switch t {
	case TypeAnnual:
		return 20
	case TypeSick:
		return 10
	case TypePersonal:
		return 5
	}
	return 0
}

func IsValidType(t Type) bool {
	switch t {
	case TypeAnnual, TypeSick, TypePersonal:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Request entity. Status moves only through the workflow service; requests
// are never deleted once created.
type Request struct {
	ID              string
	OwnerID         string
	Type            Type
	StartDate       time.Time
	EndDate         time.Time
	Days            int
	Reason          *string
	Status          Status
	RejectionReason *string
	RequestedAt     time.Time
	UpdatedAt       time.Time

	// Joined for responses
	OwnerName  *string
	OwnerEmail *string
}

// BalanceDelta is the balance adjustment implied by a status change.
// Personal leave never touches the balance. For the other types only
// pending -> approved debits and approved -> pending credits; every other
// transition, approved -> rejected included, leaves the balance alone.
// That asymmetry is the system's current contract.
func BalanceDelta(from, to Status, t Type, days int) int {
	if t == TypePersonal {
		return 0
	}
	switch {
	case from == StatusPending && to == StatusApproved:
		return -days
	case from == StatusApproved && to == StatusPending:
		return days
	}
	return 0
}
