package booking

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"nutribook/internal/validation"
)

type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindConflictUser    ErrorKind = "conflict_user"
	KindConflictSlot    ErrorKind = "conflict_slot"
	KindConflictBlocked ErrorKind = "conflict_blocked"
	KindPaymentReused   ErrorKind = "payment_reused"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindInternal        ErrorKind = "internal"
)

// HTTPStatus maps the kind onto the status code returned to clients.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation, KindPaymentReused:
		return http.StatusBadRequest
	case KindConflictUser, KindConflictSlot, KindConflictBlocked:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

const (
	msgSlotTaken     = "This time slot is no longer available. Please choose another time."
	msgSlotBlocked   = "The dietitian is not available at this time. Please choose another slot."
	msgPaymentReused = "This payment has already been used for another booking"
	msgInternal      = "Something went wrong while booking. Please try again."
	msgPastDate      = "date cannot be in the past"
)

// Sentinels returned by the repository when a unique constraint rejects a write.
var (
	ErrSlotTaken      = errors.New("dietitian slot already booked")
	ErrUserSlotTaken  = errors.New("user already booked at this time")
	ErrPaymentIDTaken = errors.New("payment id already used")
	ErrNotFound       = errors.New("booking not found")
	ErrStaleStatus    = errors.New("booking status changed concurrently")
)

// ConflictDetail names the caller's own colliding appointment. It is only
// filled for user-side conflicts.
type ConflictDetail struct {
	DietitianName string `json:"dietitianName"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// Error is the single structured error returned by the service.
type Error struct {
	Kind     ErrorKind               `json:"kind"`
	Message  string                  `json:"error"`
	Fields   []validation.FieldError `json:"fields,omitempty"`
	Conflict *ConflictDetail         `json:"conflict,omitempty"`
	Err      error                   `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a service error, or KindInternal for anything else.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func validationError(fields []validation.FieldError) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "Invalid fields: " + joinFields(fields),
		Fields:  fields,
	}
}

func fieldError(field, tag, message string) *Error {
	return validationError([]validation.FieldError{{Field: field, Tag: tag, Message: message}})
}

func userConflictError(dietitianName, date, clock string) *Error {
	return &Error{
		Kind:     KindConflictUser,
		Message:  fmt.Sprintf("You already have an appointment with %s on %s at %s", dietitianName, date, clock),
		Conflict: &ConflictDetail{DietitianName: dietitianName, Date: date, Time: clock},
	}
}

func slotTakenError(err error) *Error {
	return &Error{Kind: KindConflictSlot, Message: msgSlotTaken, Err: err}
}

func slotBlockedError() *Error {
	return &Error{Kind: KindConflictBlocked, Message: msgSlotBlocked}
}

func paymentReusedError(err error) *Error {
	return &Error{Kind: KindPaymentReused, Message: msgPaymentReused, Err: err}
}

func internalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: msgInternal, Err: err}
}

func joinFields(fields []validation.FieldError) string {
	return strings.Join(validation.Fields(fields), ", ")
}
