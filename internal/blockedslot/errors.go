package blockedslot

import (
	"errors"
	"strings"

	"nutribook/internal/validation"
)

var (
	ErrDuplicate = errors.New("slot is already blocked")
	ErrNotFound  = errors.New("blocked slot not found")
	ErrPastDate  = errors.New("date cannot be in the past")
)

type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(validation.Fields(e.Fields), ", ")
}
