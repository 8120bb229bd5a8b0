package leave

import "errors"

var (
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrBalanceNotFound     = errors.New("leave balance not found")
	ErrConcurrentUpdate    = errors.New("leave request was updated concurrently")
)
