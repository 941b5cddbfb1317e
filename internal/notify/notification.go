package notify

import "context"

type Type string

const (
	TypeBookingConfirmed Type = "booking.confirmed"
	TypeBookingCancelled Type = "booking.cancelled"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleDietitian Role = "dietitian"
)

// BookingFacts is the part of a booking a recipient is told about. With names
// the other party of the appointment.
type BookingFacts struct {
	BookingID        string  `json:"bookingId"`
	With             string  `json:"with"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	ConsultationType string  `json:"consultationType"`
	Amount           float64 `json:"amount"`
	PaymentID        string  `json:"paymentId"`
	Status           string  `json:"status"`
}

type Notification struct {
	Type             Type         `json:"type"`
	RecipientContact string       `json:"recipientContact"`
	RecipientName    string       `json:"recipientName"`
	Role             Role         `json:"role"`
	Facts            BookingFacts `json:"bookingFacts"`
}

// Sender delivers a notification over one channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}
