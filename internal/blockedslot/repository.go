package blockedslot

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const constraintSlot = "blocked_slots_dietitian_date_time_key"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *BlockedSlot) error {
	query := `
		INSERT INTO blocked_slots (id, dietitian_id, date, time, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query, b.ID, b.DietitianID, b.Date, b.Time, b.Reason, b.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == constraintSlot {
			return ErrDuplicate
		}
		return err
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, dietitianID, id string) error {
	query := `DELETE FROM blocked_slots WHERE id = $1 AND dietitian_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, dietitianID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) ListByDietitian(ctx context.Context, dietitianID string) ([]BlockedSlot, error) {
	query := `
		SELECT id, dietitian_id, to_char(date, 'YYYY-MM-DD') AS date, time, reason, created_at
		FROM blocked_slots
		WHERE dietitian_id = $1
		ORDER BY date, time
	`

	slots := []BlockedSlot{}
	if err := r.db.SelectContext(ctx, &slots, query, dietitianID); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *repository) Exists(ctx context.Context, dietitianID, date, clock string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM blocked_slots WHERE dietitian_id = $1 AND date = $2 AND time = $3)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, dietitianID, date, clock)
	return exists, err
}

func (r *repository) TimesOn(ctx context.Context, dietitianID, date string) ([]string, error) {
	query := `SELECT time FROM blocked_slots WHERE dietitian_id = $1 AND date = $2 ORDER BY time`

	times := []string{}
	if err := r.db.SelectContext(ctx, &times, query, dietitianID, date); err != nil {
		return nil, err
	}
	return times, nil
}
