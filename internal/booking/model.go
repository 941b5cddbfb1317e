package booking

import (
	"time"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no-show"
)

// Active reports whether a booking in this status occupies its slot.
func (s Status) Active() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

type ConsultationType string

const (
	ConsultationOnline   ConsultationType = "Online"
	ConsultationInPerson ConsultationType = "In-person"
)

type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "netbanking"
	PaymentWallet     PaymentMethod = "wallet"
)

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

// Booking is a reserved appointment. User and dietitian details are copied at
// creation time and never re-synced.
type Booking struct {
	ID          string  `db:"id" json:"id"`
	UserID      string  `db:"user_id" json:"userId"`
	Username    string  `db:"username" json:"username"`
	Email       string  `db:"email" json:"email"`
	UserPhone   *string `db:"user_phone" json:"userPhone,omitempty"`
	UserAddress *string `db:"user_address" json:"userAddress,omitempty"`

	DietitianID             string  `db:"dietitian_id" json:"dietitianId"`
	DietitianName           string  `db:"dietitian_name" json:"dietitianName"`
	DietitianEmail          string  `db:"dietitian_email" json:"dietitianEmail"`
	DietitianPhone          *string `db:"dietitian_phone" json:"dietitianPhone,omitempty"`
	DietitianSpecialization *string `db:"dietitian_specialization" json:"dietitianSpecialization,omitempty"`

	Date             time.Time        `db:"date" json:"date"`
	Time             string           `db:"time" json:"time"`
	ConsultationType ConsultationType `db:"consultation_type" json:"consultationType"`

	Amount        float64       `db:"amount" json:"amount"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	PaymentID     string        `db:"payment_id" json:"paymentId"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"paymentStatus"`

	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ReserveRequest is submitted after the payment gateway has captured the payment.
type ReserveRequest struct {
	UserID      string `json:"userId" validate:"required,uuid"`
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required"`
	UserPhone   string `json:"userPhone"`
	UserAddress string `json:"userAddress"`

	DietitianID             string `json:"dietitianId" validate:"required,uuid"`
	DietitianName           string `json:"dietitianName" validate:"required"`
	DietitianEmail          string `json:"dietitianEmail" validate:"required"`
	DietitianPhone          string `json:"dietitianPhone"`
	DietitianSpecialization string `json:"dietitianSpecialization"`

	Date             string `json:"date" validate:"required,calendardate" example:"2026-03-10"`
	Time             string `json:"time" validate:"required,clock" example:"10:00"`
	ConsultationType string `json:"consultationType" validate:"required,oneof=Online In-person" example:"Online"`

	Amount        *float64 `json:"amount" validate:"required,gte=0" example:"500"`
	PaymentMethod string   `json:"paymentMethod" validate:"required,oneof=card upi netbanking wallet" example:"upi"`
	PaymentID     string   `json:"paymentId" validate:"required" example:"pay_Q1w2e3r4"`
}

// ListOptions filters and orders a listing. Sort is one of "createdAt",
// "-createdAt", "date" or "-date"; a leading "-" means descending.
type ListOptions struct {
	Status Status
	Sort   string
}

const DefaultSort = "-createdAt"

// Availability lists the taken times of one dietitian day.
type Availability struct {
	DietitianID string   `json:"dietitianId"`
	Date        string   `json:"date"`
	Booked      []string `json:"booked"`
	Blocked     []string `json:"blocked"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required" example:"cancelled"`
}

// Actor is the authenticated caller of a status transition.
type Actor struct {
	ID   string
	Role string
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
