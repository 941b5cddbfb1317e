package slot

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical calendar date form used by clients and blocked slots.
	DateLayout = "2006-01-02"
	day        = 24 * time.Hour
)

var (
	ErrInvalidDate = errors.New("date must be a valid calendar date in YYYY-MM-DD format")
	ErrInvalidTime = errors.New("time must be in HH:MM format")

	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// DayRange is the half-open interval [Start, End) covering one UTC calendar day.
type DayRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r DayRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Key is the timezone-independent identity of a (date, time) pair.
type Key struct {
	Date       time.Time
	DateString string
	Time       string
	Range      DayRange
}

// Normalize canonicalizes a date string and a wall-clock time into a Key.
func Normalize(date, clock string) (Key, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Key{}, err
	}
	if !ValidTime(clock) {
		return Key{}, ErrInvalidTime
	}

	return Key{
		Date:       d,
		DateString: d.Format(DateLayout),
		Time:       clock,
		Range:      RangeOf(d),
	}, nil
}

// ParseDate builds the UTC midnight of a YYYY-MM-DD string from its components,
// so the server's local zone never shifts the calendar day.
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return time.Time{}, ErrInvalidDate
	}
	for _, p := range parts {
		if !allDigits(p) {
			return time.Time{}, ErrInvalidDate
		}
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, ErrInvalidDate
	}
	dom, err := strconv.Atoi(parts[2])
	if err != nil || dom < 1 {
		return time.Time{}, ErrInvalidDate
	}

	d := time.Date(year, time.Month(month), dom, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject it instead.
	if d.Day() != dom || int(d.Month()) != month {
		return time.Time{}, ErrInvalidDate
	}

	return d, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidTime reports whether s is a 24-hour HH:MM wall-clock time.
func ValidTime(s string) bool {
	if !timePattern.MatchString(s) {
		return false
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	return h < 24 && m < 60
}

// RangeOf returns the UTC day containing t.
func RangeOf(t time.Time) DayRange {
	start := Today(t)
	return DayRange{Start: start, End: start.Add(day)}
}

// Today returns the UTC midnight of the day that contains now.
func Today(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// IsPast reports whether the normalized date lies strictly before UTC-today.
func IsPast(date, now time.Time) bool {
	return date.Before(Today(now))
}
