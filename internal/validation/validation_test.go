package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID     string   `json:"id" validate:"required,uuid"`
	Date   string   `json:"date" validate:"required,calendardate"`
	Time   string   `json:"time" validate:"required,clock"`
	Kind   string   `json:"kind" validate:"required,oneof=Online In-person"`
	Amount *float64 `json:"amount" validate:"required,gte=0"`
	Note   string   `json:"note"`
}

func TestStruct_Valid(t *testing.T) {
	amount := 0.0
	errs := New().Struct(sample{
		ID:     "7b1f4d0e-58a4-4c1e-9f57-2f7f3f3f0a10",
		Date:   "2026-03-10",
		Time:   "10:00",
		Kind:   "In-person",
		Amount: &amount,
	})

	assert.Empty(t, errs)
}

func TestStruct_ReportsEveryField(t *testing.T) {
	errs := New().Struct(sample{})

	require.Len(t, errs, 5)
	assert.Equal(t, []string{"id", "date", "time", "kind", "amount"}, Fields(errs))
	for _, e := range errs {
		assert.Equal(t, "required", e.Tag)
		assert.Contains(t, e.Message, "is required")
	}
}

func TestStruct_FormatErrors(t *testing.T) {
	negative := -5.0
	errs := New().Struct(sample{
		ID:     "not-a-uuid",
		Date:   "10/03/2026",
		Time:   "25:00",
		Kind:   "Phone",
		Amount: &negative,
	})

	require.Len(t, errs, 5)
	byField := map[string]FieldError{}
	for _, e := range errs {
		byField[e.Field] = e
	}

	assert.Equal(t, "uuid", byField["id"].Tag)
	assert.Equal(t, "calendardate", byField["date"].Tag)
	assert.Equal(t, "clock", byField["time"].Tag)
	assert.Equal(t, "oneof", byField["kind"].Tag)
	assert.Equal(t, "kind must be one of: Online, In-person", byField["kind"].Message)
	assert.Equal(t, "gte", byField["amount"].Tag)
}
