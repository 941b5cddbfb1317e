package notify

import (
	"context"
	"fmt"
	"time"

	"nutribook/internal/clock"
	"nutribook/internal/email"
)

// Mailer queues booking emails.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, to, name string, d email.BookingDetails) error
	SendCancellation(ctx context.Context, to, name string, d email.BookingDetails) error
}

// EmailSender hands notifications to the email queue.
type EmailSender struct {
	mailer Mailer
}

func NewEmailSender(m Mailer) *EmailSender {
	return &EmailSender{mailer: m}
}

func (s *EmailSender) Name() string { return "email" }

func (s *EmailSender) Send(ctx context.Context, n Notification) error {
	if n.RecipientContact == "" {
		return fmt.Errorf("no email address for %s", n.Role)
	}

	d := email.BookingDetails{
		BookingID:        n.Facts.BookingID,
		With:             n.Facts.With,
		Date:             n.Facts.Date,
		Time:             n.Facts.Time,
		ConsultationType: n.Facts.ConsultationType,
		Amount:           n.Facts.Amount,
		PaymentID:        n.Facts.PaymentID,
	}

	switch n.Type {
	case TypeBookingConfirmed:
		return s.mailer.SendBookingConfirmation(ctx, n.RecipientContact, n.RecipientName, d)
	case TypeBookingCancelled:
		return s.mailer.SendCancellation(ctx, n.RecipientContact, n.RecipientName, d)
	default:
		return fmt.Errorf("unsupported notification type %q", n.Type)
	}
}

// Publisher publishes a JSON message under a routing key.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Event is the message put on the bus for other delivery channels.
type Event struct {
	Notification
	OccurredAt time.Time `json:"occurredAt"`
}

// EventSender publishes notifications to the event bus under
// "<type>.<role>", e.g. "booking.confirmed.dietitian".
type EventSender struct {
	publisher Publisher
	clock     clock.Clock
}

func NewEventSender(p Publisher, clk clock.Clock) *EventSender {
	return &EventSender{publisher: p, clock: clk}
}

func (s *EventSender) Name() string { return "event" }

func (s *EventSender) Send(ctx context.Context, n Notification) error {
	key := RoutingKey(n)
	if err := s.publisher.PublishJSON(ctx, key, Event{Notification: n, OccurredAt: s.clock.Now().UTC()}); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}

func RoutingKey(n Notification) string {
	return string(n.Type) + "." + string(n.Role)
}
