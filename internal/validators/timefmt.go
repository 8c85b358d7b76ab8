package validators

import "time"

// IsClockTime reports whether s is a valid "HH:MM" wall-clock string.
func IsClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsDate reports whether s is a valid "YYYY-MM-DD" calendar date.
func IsDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsWeekday reports whether d is an ISO day of week (1 Monday .. 7 Sunday).
func IsWeekday(d int) bool {
	return d >= 1 && d <= 7
}
