package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"nutribook/internal/slot"
	"nutribook/internal/validation"
)

// maxStatsDays bounds one stats request to roughly a year of schedule.
const maxStatsDays = 366

// DayStats counts the bookings of one appointment day by status.
type DayStats struct {
	Day       string `db:"day" json:"day" example:"2026-03-10"`
	Confirmed int    `db:"confirmed" json:"confirmed"`
	Cancelled int    `db:"cancelled" json:"cancelled"`
	Completed int    `db:"completed" json:"completed"`
	NoShow    int    `db:"no_show" json:"noShow"`
}

// Stats summarizes a dietitian's schedule between two calendar dates, both
// inclusive. Days without bookings are omitted.
func (s *service) Stats(ctx context.Context, dietitianID, from, to string) ([]DayStats, error) {
	var fields []validation.FieldError
	if _, err := uuid.Parse(dietitianID); err != nil {
		fields = append(fields, validation.FieldError{Field: "dietitianId", Tag: "uuid", Message: "dietitianId must be a valid identifier"})
	}
	start, err := slot.ParseDate(from)
	if err != nil {
		fields = append(fields, validation.FieldError{Field: "from", Tag: "calendardate", Message: err.Error()})
	}
	end, err := slot.ParseDate(to)
	if err != nil {
		fields = append(fields, validation.FieldError{Field: "to", Tag: "calendardate", Message: err.Error()})
	}
	if len(fields) > 0 {
		return nil, validationError(fields)
	}

	if end.Before(start) {
		return nil, fieldError("to", "gtefield", "to must not be before from")
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > maxStatsDays {
		return nil, fieldError("to", "range", fmt.Sprintf("date range must not exceed %d days", maxStatsDays))
	}

	stats, err := s.repo.StatsByDay(ctx, dietitianID, start, slot.RangeOf(end).End)
	if err != nil {
		return nil, internalError(fmt.Errorf("booking stats: %w", err))
	}
	return stats, nil
}
