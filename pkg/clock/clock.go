package clock

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date key used for attendance records.
const DateLayout = "2006-01-02"

// TimeLayout is the time-of-day format carried on present scans.
const TimeLayout = "15:04:05"

// Clock yields wall time in a fixed school timezone. All date-only keys
// (attendance scan dates) are derived from it so that "today" means the
// school's today, not the server's.
type Clock struct {
	loc *time.Location
}

func New(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Clock{}, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return Clock{loc: loc}, nil
}

// UTC returns a Clock pinned to UTC, useful in tests.
func UTC() Clock {
	return Clock{loc: time.UTC}
}

func (c Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns the current calendar date as a date-only key.
func (c Clock) Today() string {
	return c.Now().Format(DateLayout)
}

// ValidDate reports whether s is a well-formed date-only key.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime reports whether s is a well-formed time-of-day value.
func ValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
