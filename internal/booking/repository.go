package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"nutribook/internal/slot"
)

// Constraint names from migrations/000001_create_bookings.up.sql.
const (
	constraintPaymentID     = "bookings_payment_id_key"
	constraintDietitianSlot = "bookings_dietitian_slot_active_key"
	constraintUserSlot      = "bookings_user_slot_active_key"
)

const uniqueViolation = pq.ErrorCode("23505")

const activeStatusesPredicate = "status IN ('confirmed', 'completed')"

const bookingColumns = `id, user_id, username, email, user_phone, user_address,
	dietitian_id, dietitian_name, dietitian_email, dietitian_phone, dietitian_specialization,
	date, time, consultation_type, amount, payment_method, payment_id, payment_status,
	status, created_at, updated_at`

var sortClauses = map[string]string{
	"createdAt":  "created_at ASC",
	"-createdAt": "created_at DESC",
	"date":       "date ASC, time ASC",
	"-date":      "date DESC, time DESC",
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.UserID, b.Username, b.Email, b.UserPhone, b.UserAddress,
		b.DietitianID, b.DietitianName, b.DietitianEmail, b.DietitianPhone, b.DietitianSpecialization,
		b.Date, b.Time, b.ConsultationType, b.Amount, b.PaymentMethod, b.PaymentID, b.PaymentStatus,
		b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b.Date = b.Date.UTC()
	return &b, nil
}

func (r *repository) FindActiveForUser(ctx context.Context, userID string, day slot.DayRange, clock string) (*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND date >= $2 AND date < $3 AND time = $4 AND ` + activeStatusesPredicate + `
		LIMIT 1
	`
	return r.findOne(ctx, query, userID, day.Start, day.End, clock)
}

func (r *repository) FindActiveForDietitian(ctx context.Context, dietitianID string, day slot.DayRange, clock string) (*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE dietitian_id = $1 AND date >= $2 AND date < $3 AND time = $4 AND ` + activeStatusesPredicate + `
		LIMIT 1
	`
	return r.findOne(ctx, query, dietitianID, day.Start, day.End, clock)
}

func (r *repository) findOne(ctx context.Context, query string, args ...interface{}) (*Booking, error) {
	var b Booking
	if err := r.db.GetContext(ctx, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	b.Date = b.Date.UTC()
	return &b, nil
}

func (r *repository) PaymentIDExists(ctx context.Context, paymentID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM bookings WHERE payment_id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, paymentID)
	return exists, err
}

func (r *repository) ListByUser(ctx context.Context, userID string, opts ListOptions) ([]Booking, error) {
	return r.list(ctx, "user_id", userID, opts)
}

func (r *repository) ListByDietitian(ctx context.Context, dietitianID string, opts ListOptions) ([]Booking, error) {
	return r.list(ctx, "dietitian_id", dietitianID, opts)
}

func (r *repository) list(ctx context.Context, ownerColumn, ownerID string, opts ListOptions) ([]Booking, error) {
	var sb strings.Builder
	args := []interface{}{ownerID}

	sb.WriteString(`SELECT ` + bookingColumns + ` FROM bookings WHERE ` + ownerColumn + ` = $1`)
	if opts.Status != "" {
		args = append(args, opts.Status)
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}

	order, ok := sortClauses[opts.Sort]
	if !ok {
		order = sortClauses[DefaultSort]
	}
	sb.WriteString(" ORDER BY " + order)

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, sb.String(), args...); err != nil {
		return nil, err
	}

	for i := range bookings {
		bookings[i].Date = bookings[i].Date.UTC()
	}
	return bookings, nil
}

func (r *repository) ActiveTimesForDietitian(ctx context.Context, dietitianID string, day slot.DayRange) ([]string, error) {
	query := `
		SELECT time
		FROM bookings
		WHERE dietitian_id = $1 AND date >= $2 AND date < $3 AND ` + activeStatusesPredicate + `
		ORDER BY time
	`

	times := []string{}
	if err := r.db.SelectContext(ctx, &times, query, dietitianID, day.Start, day.End); err != nil {
		return nil, err
	}
	return times, nil
}

// UpdateStatus moves a booking from one status to another. It fails with
// ErrStaleStatus when the booking is no longer in the expected status.
func (r *repository) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + bookingColumns

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, to, at, id, from); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaleStatus
		}
		return nil, translateWriteError(err)
	}

	b.Date = b.Date.UTC()
	return &b, nil
}

// translateWriteError maps unique violations onto the repository sentinels so a
// losing concurrent writer is reported like an application-level conflict.
func translateWriteError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}

	switch pqErr.Constraint {
	case constraintPaymentID:
		return fmt.Errorf("%w: %s", ErrPaymentIDTaken, pqErr.Message)
	case constraintDietitianSlot:
		return fmt.Errorf("%w: %s", ErrSlotTaken, pqErr.Message)
	case constraintUserSlot:
		return fmt.Errorf("%w: %s", ErrUserSlotTaken, pqErr.Message)
	default:
		return err
	}
}

func (r *repository) StatsByDay(ctx context.Context, dietitianID string, from, to time.Time) ([]DayStats, error) {
	query := `
		SELECT
			to_char(date AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'no-show')   AS no_show
		FROM bookings
		WHERE dietitian_id = $1 AND date >= $2 AND date < $3
		GROUP BY day
		ORDER BY day
	`

	stats := []DayStats{}
	if err := r.db.SelectContext(ctx, &stats, query, dietitianID, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}
