package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/ckramer/tyke/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// DateInTimezone returns the calendar date string (YYYY-MM-DD) of the given
// instant in the specified timezone. Streaks are keyed by this value, so
// "today" is determined by the user's configured timezone, not the system
// timezone.
func DateInTimezone(t time.Time, timezone string) (string, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return t.In(loc).Format(constants.DateFormat), nil
}

// DiffDays returns the whole-day difference between two date strings
// (YYYY-MM-DD). A positive result means b is after a.
func DiffDays(a, b string) (int, error) {
	da, err := time.Parse(constants.DateFormat, a)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", a, err)
	}
	db, err := time.Parse(constants.DateFormat, b)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", b, err)
	}
	// Date-based arithmetic with explicit rounding to avoid DST issues
	return int(math.Round(db.Sub(da).Hours() / 24)), nil
}

// FormatClock renders a second count as M:SS (or H:MM:SS above an hour).
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
