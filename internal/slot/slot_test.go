package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	key, err := Normalize("2026-03-10", "10:00")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), key.Date)
	assert.Equal(t, "2026-03-10", key.DateString)
	assert.Equal(t, "10:00", key.Time)
	assert.Equal(t, key.Date, key.Range.Start)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), key.Range.End)
}

func TestNormalize_SameValueAcrossServerZones(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("IST", 5*3600+1800),
		time.FixedZone("PST", -8*3600),
		time.FixedZone("LINT", 14*3600),
	}

	original := time.Local
	defer func() { time.Local = original }()

	var results []time.Time
	for _, zone := range zones {
		time.Local = zone
		key, err := Normalize("2026-03-10", "23:30")
		require.NoError(t, err)
		results = append(results, key.Date)
	}

	for _, got := range results[1:] {
		assert.True(t, results[0].Equal(got))
		assert.Equal(t, results[0].Location(), got.Location())
	}
	assert.Zero(t, results[0].Hour())
}

func TestParseDate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"slashes", "2026/03/10"},
		{"day overflow", "2026-02-30"},
		{"month out of range", "2026-13-01"},
		{"zero day", "2026-03-00"},
		{"short year", "26-03-10"},
		{"not numeric", "2026-ab-10"},
		{"with time", "2026-03-10T10:00:00Z"},
		{"signed month", "2026-+3-10"},
		{"signed day", "2026-03-+9"},
		{"negative year", "-026-03-10"},
		{"surrounding spaces", " 2026-03-10 "},
		{"padded day", "2026-03- 9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestParseDate_LeapDay(t *testing.T) {
	d, err := ParseDate("2028-02-29")
	require.NoError(t, err)
	assert.Equal(t, 29, d.Day())

	_, err = ParseDate("2027-02-29")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestValidTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "10:00", "23:59"}
	invalid := []string{"", "9:30", "10:0", "24:00", "12:60", "10-00", "10:00:00", " 10:00"}

	for _, s := range valid {
		assert.True(t, ValidTime(s), s)
	}
	for _, s := range invalid {
		assert.False(t, ValidTime(s), s)
	}
}

func TestNormalize_InvalidTime(t *testing.T) {
	_, err := Normalize("2026-03-10", "7pm")
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestToday(t *testing.T) {
	// 01:30 in UTC+05:30 is still the previous day in UTC.
	now := time.Date(2026, 3, 10, 1, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Today(now))
}

func TestIsPast(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	assert.True(t, IsPast(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsPast(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsPast(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), now))
}

func TestDayRange_Contains(t *testing.T) {
	r := RangeOf(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))

	assert.True(t, r.Contains(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)))
}
