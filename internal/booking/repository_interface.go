package booking

import (
	"context"
	"time"

	"nutribook/internal/slot"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// FindActiveForUser returns nil, nil when the user has no active booking at that time.
	FindActiveForUser(ctx context.Context, userID string, day slot.DayRange, clock string) (*Booking, error)
	FindActiveForDietitian(ctx context.Context, dietitianID string, day slot.DayRange, clock string) (*Booking, error)
	PaymentIDExists(ctx context.Context, paymentID string) (bool, error)
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]Booking, error)
	ListByDietitian(ctx context.Context, dietitianID string, opts ListOptions) ([]Booking, error)
	ActiveTimesForDietitian(ctx context.Context, dietitianID string, day slot.DayRange) ([]string, error)
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (*Booking, error)
	// StatsByDay counts a dietitian's bookings per appointment day in [from, to).
	StatsByDay(ctx context.Context, dietitianID string, from, to time.Time) ([]DayStats, error)
}
