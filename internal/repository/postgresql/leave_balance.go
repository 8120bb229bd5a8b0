package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/leavedesk/leave-backend-go/internal/domain/leave"
	"github.com/leavedesk/leave-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, ownerID string, t leave.Type) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT remaining
		FROM leave_balances
		WHERE owner_id = $1 AND leave_type = $2
	`

	var remaining int
	err := q.QueryRow(ctx, query, ownerID, string(t)).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, leave.ErrBalanceNotFound
		}
		return 0, err
	}

	return remaining, nil
}

// Adjust applies a relative update in a single statement so concurrent
// adjustments to the same (owner, type) row never lose updates. Negative
// results are allowed; sufficiency is checked by callers.
func (r *leaveBalanceRepositoryImpl) Adjust(ctx context.Context, ownerID string, t leave.Type, delta int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET remaining = remaining + $3, updated_at = NOW()
		WHERE owner_id = $1 AND leave_type = $2
	`

	commandTag, err := q.Exec(ctx, query, ownerID, string(t), delta)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

func (r *leaveBalanceRepositoryImpl) InitDefaults(ctx context.Context, ownerID string) error {
	q := GetQuerier(ctx, r.db)

	types := leave.AllTypes()
	valueStrings := make([]string, 0, len(types))
	valueArgs := make([]interface{}, 0, len(types)*3)
	for i, t := range types {
		base := i * 3
		valueStrings = append(valueStrings, fmt.Sprintf("(uuidv7(), $%d, $%d, $%d, NOW(), NOW())", base+1, base+2, base+3))
		valueArgs = append(valueArgs, ownerID, string(t), leave.DefaultBalance(t))
	}

	query := fmt.Sprintf(`
		INSERT INTO leave_balances (id, owner_id, leave_type, remaining, created_at, updated_at)
		VALUES %s
	`, strings.Join(valueStrings, ", "))

	_, err := q.Exec(ctx, query, valueArgs...)
	return err
}
