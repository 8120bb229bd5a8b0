package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/leavedesk/leave-backend-go/internal/domain/leave"
	"github.com/leavedesk/leave-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, owner_id, leave_type, start_date, end_date, days, reason,
			status, requested_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6,
			$7, NOW(), NOW(), NOW()
		) RETURNING id, requested_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.OwnerID, string(request.Type), request.StartDate, request.EndDate,
		request.Days, request.Reason, string(request.Status),
	).Scan(&request.ID, &request.RequestedAt, &request.UpdatedAt)
	if err != nil {
		return leave.Request{}, err
	}

	return request, nil
}

const requestColumns = `
	lr.id, lr.owner_id, lr.leave_type, lr.start_date, lr.end_date, lr.days,
	lr.reason, lr.status, lr.rejection_reason, lr.requested_at, lr.updated_at
`

func scanRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.OwnerID, &req.Type, &req.StartDate, &req.EndDate, &req.Days,
		&req.Reason, &req.Status, &req.RejectionReason, &req.RequestedAt, &req.UpdatedAt,
	)
	return req, err
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1
	`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}

	return req, nil
}

// GetByIDForUpdate takes the row lock so concurrent transitions on the same
// request serialize behind the surrounding transaction.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1
		FOR UPDATE
	`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}

	return req, nil
}

func (r *leaveRequestRepositoryImpl) ListByOwner(ctx context.Context, ownerID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `,
			   u.name AS owner_name,
			   u.email AS owner_email
		FROM leave_requests lr
		JOIN users u ON lr.owner_id = u.id
		WHERE lr.owner_id = $1
		ORDER BY lr.requested_at DESC
	`

	return r.queryRequests(ctx, q, query, ownerID)
}

func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `,
			   u.name AS owner_name,
			   u.email AS owner_email
		FROM leave_requests lr
		JOIN users u ON lr.owner_id = u.id
		ORDER BY lr.requested_at DESC
	`

	return r.queryRequests(ctx, q, query)
}

func (r *leaveRequestRepositoryImpl) queryRequests(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]leave.Request, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		var ownerName, ownerEmail string
		err := rows.Scan(
			&req.ID, &req.OwnerID, &req.Type, &req.StartDate, &req.EndDate, &req.Days,
			&req.Reason, &req.Status, &req.RejectionReason, &req.RequestedAt, &req.UpdatedAt,
			&ownerName, &ownerEmail,
		)
		if err != nil {
			return nil, err
		}
		req.OwnerName = &ownerName
		req.OwnerEmail = &ownerEmail
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// UpdateStatus is a compare-and-set: the row is updated only while it still
// holds the expected current status. The rejection reason is written only on
// transitions into rejected and kept untouched otherwise.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to leave.Status, rejectionReason *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var commandTagRows int64
	if to == leave.StatusRejected {
		query := `
			UPDATE leave_requests
			SET status = $3, rejection_reason = $4, updated_at = NOW()
			WHERE id = $1 AND status = $2
		`
		commandTag, err := q.Exec(ctx, query, id, string(from), string(to), rejectionReason)
		if err != nil {
			return false, err
		}
		commandTagRows = commandTag.RowsAffected()
	} else {
		query := `
			UPDATE leave_requests
			SET status = $3, updated_at = NOW()
			WHERE id = $1 AND status = $2
		`
		commandTag, err := q.Exec(ctx, query, id, string(from), string(to))
		if err != nil {
			return false, err
		}
		commandTagRows = commandTag.RowsAffected()
	}

	return commandTagRows == 1, nil
}
