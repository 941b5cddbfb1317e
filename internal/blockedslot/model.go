package blockedslot

import "time"

const DefaultReason = "Unavailable"

// BlockedSlot marks a dietitian's (date, time) as unavailable for booking.
type BlockedSlot struct {
	ID          string    `db:"id" json:"id"`
	DietitianID string    `db:"dietitian_id" json:"dietitianId"`
	Date        string    `db:"date" json:"date" example:"2026-03-10"`
	Time        string    `db:"time" json:"time" example:"10:00"`
	Reason      string    `db:"reason" json:"reason" example:"Conference"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type AddRequest struct {
	Date   string `json:"date" validate:"required,calendardate" example:"2026-03-10"`
	Time   string `json:"time" validate:"required,clock" example:"10:00"`
	Reason string `json:"reason" validate:"max=200"`
}
