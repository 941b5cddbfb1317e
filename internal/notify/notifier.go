package notify

import (
	"context"

	"nutribook/internal/booking"
	"nutribook/internal/slot"
)

type dispatcher interface {
	Dispatch(ctx context.Context, n Notification)
}

// BookingNotifier tells both parties of a booking about its lifecycle.
type BookingNotifier struct {
	dispatcher dispatcher
}

func NewBookingNotifier(d dispatcher) *BookingNotifier {
	return &BookingNotifier{dispatcher: d}
}

func (n *BookingNotifier) NotifyConfirmed(ctx context.Context, b *booking.Booking) {
	n.notifyBoth(ctx, TypeBookingConfirmed, b)
}

func (n *BookingNotifier) NotifyCancelled(ctx context.Context, b *booking.Booking) {
	n.notifyBoth(ctx, TypeBookingCancelled, b)
}

func (n *BookingNotifier) notifyBoth(ctx context.Context, t Type, b *booking.Booking) {
	n.dispatcher.Dispatch(ctx, Notification{
		Type:             t,
		RecipientContact: b.Email,
		RecipientName:    b.Username,
		Role:             RoleUser,
		Facts:            factsOf(b, b.DietitianName),
	})
	n.dispatcher.Dispatch(ctx, Notification{
		Type:             t,
		RecipientContact: b.DietitianEmail,
		RecipientName:    b.DietitianName,
		Role:             RoleDietitian,
		Facts:            factsOf(b, b.Username),
	})
}

func factsOf(b *booking.Booking, with string) BookingFacts {
	return BookingFacts{
		BookingID:        b.ID,
		With:             with,
		Date:             b.Date.UTC().Format(slot.DateLayout),
		Time:             b.Time,
		ConsultationType: string(b.ConsultationType),
		Amount:           b.Amount,
		PaymentID:        b.PaymentID,
		Status:           string(b.Status),
	}
}
