package leave

import "context"

// RequestRepository - interface for leave_requests table
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	// GetByIDForUpdate loads the request while holding its row lock for the
	// remainder of the surrounding transaction. Transitions use it so that two
	// concurrent status changes on the same request serialize.
	GetByIDForUpdate(ctx context.Context, id string) (Request, error)
	// ListByOwner returns the owner's requests most-recent-first with the
	// requester record expanded.
	ListByOwner(ctx context.Context, ownerID string) ([]Request, error)
	// ListAll returns every request most-recent-first with requester name and
	// email only.
	ListAll(ctx context.Context) ([]Request, error)
	// UpdateStatus performs a compare-and-set on the request status. It
	// returns false when the row no longer holds the expected status.
	UpdateStatus(ctx context.Context, id string, from, to Status, rejectionReason *string) (bool, error)
}

// BalanceRepository - conditional ledger over (owner, type) integer balances.
// Adjust is an unconditional relative update; sufficiency checks are the
// caller's responsibility.
type BalanceRepository interface {
	Get(ctx context.Context, ownerID string, t Type) (int, error)
	Adjust(ctx context.Context, ownerID string, t Type, delta int) error
	// InitDefaults seeds the default balances for a newly registered user.
	InitDefaults(ctx context.Context, ownerID string) error
}

// Transactor runs fn inside a single database transaction; repository calls
// made with the ctx passed to fn share that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
