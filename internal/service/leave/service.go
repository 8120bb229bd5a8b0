package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leavedesk/leave-backend-go/internal/domain/leave"
	"github.com/leavedesk/leave-backend-go/internal/domain/notification"
	"github.com/leavedesk/leave-backend-go/internal/domain/user"
	"github.com/leavedesk/leave-backend-go/internal/pkg/validator"
)

// Service is the leave workflow engine. It owns every status transition and
// every balance mutation; nothing else writes either.
type Service struct {
	tx       leave.Transactor
	requests leave.RequestRepository
	balances leave.BalanceRepository
	users    user.Repository
	notifier notification.Service
}

func NewLeaveService(
	tx leave.Transactor,
	requests leave.RequestRepository,
	balances leave.BalanceRepository,
	users user.Repository,
	notifier notification.Service,
) *Service {
	return &Service{
		tx:       tx,
		requests: requests,
		balances: balances,
		users:    users,
		notifier: notifier,
	}
}

// CreateRequest submits a new pending request. The balance is only checked
// for sufficiency here, never reserved: two concurrent submissions can both
// pass the check, and the debit happens at approval time.
func (s *Service) CreateRequest(ctx context.Context, req leave.CreateRequestRequest) (leave.Request, error) {
	if _, err := s.users.GetByID(ctx, req.OwnerID); err != nil {
		return leave.Request{}, fmt.Errorf("failed to load requester: %w", err)
	}

	remaining, err := s.balances.Get(ctx, req.OwnerID, req.Type)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to load balance: %w", err)
	}
	if remaining < req.Days {
		return leave.Request{}, leave.ErrInsufficientBalance
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	// Reason is kept for personal leave only; other types ignore it.
	var reason *string
	if req.Type == leave.TypePersonal {
		reason = req.Reason
	}

	created, err := s.requests.Create(ctx, leave.Request{
		OwnerID:   req.OwnerID,
		Type:      req.Type,
		StartDate: startDate,
		EndDate:   endDate,
		Days:      req.Days,
		Reason:    reason,
		Status:    leave.StatusPending,
	})
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// TransitionStatus applies an admin status change. Load, delta computation
// and persist run in one transaction with the request row locked, so
// concurrent transitions on the same request serialize and no delta is ever
// computed from a stale status. A same-status call is a no-op: unchanged
// request back, no balance movement, no notification.
func (s *Service) TransitionStatus(ctx context.Context, requestID string, req leave.UpdateStatusRequest) (leave.Request, error) {
	var updated leave.Request
	var changed bool

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.requests.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		if current.Status == req.Status {
			updated = current
			return nil
		}

		if delta := leave.BalanceDelta(current.Status, req.Status, current.Type, current.Days); delta != 0 {
			if err := s.balances.Adjust(ctx, current.OwnerID, current.Type, delta); err != nil {
				return fmt.Errorf("failed to adjust balance: %w", err)
			}
		}

		var rejectionReason *string
		if req.Status == leave.StatusRejected {
			// Stored as given; may be empty or absent.
			rejectionReason = req.RejectionReason
		}

		ok, err := s.requests.UpdateStatus(ctx, requestID, current.Status, req.Status, rejectionReason)
		if err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		if !ok {
			return leave.ErrConcurrentUpdate
		}

		updated = current
		updated.Status = req.Status
		if req.Status == leave.StatusRejected {
			updated.RejectionReason = rejectionReason
		}
		changed = true
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}

	if changed {
		// Best-effort from here on: the transition is committed and stays
		// committed whatever happens to the notification.
		message := fmt.Sprintf("Your leave request has been %s : %s", updated.Status, updated.Type)
		if _, err := s.notifier.Notify(ctx, updated.OwnerID, message); err != nil {
			slog.Error("failed to store notification", "request_id", updated.ID, "error", err)
		}
	}

	return updated, nil
}

// ListMine returns the caller's requests most-recent-first.
func (s *Service) ListMine(ctx context.Context, ownerID string) ([]leave.Request, error) {
	return s.requests.ListByOwner(ctx, ownerID)
}

// ListAll returns every request most-recent-first. Admin scope.
func (s *Service) ListAll(ctx context.Context) ([]leave.Request, error) {
	return s.requests.ListAll(ctx)
}

// GetBalances returns the caller's remaining days per leave type.
func (s *Service) GetBalances(ctx context.Context, ownerID string) (map[string]int, error) {
	balances := make(map[string]int, len(leave.AllTypes()))
	for _, t := range leave.AllTypes() {
		remaining, err := s.balances.Get(ctx, ownerID, t)
		if err != nil {
			return nil, err
		}
		balances[string(t)] = remaining
	}
	return balances, nil
}
