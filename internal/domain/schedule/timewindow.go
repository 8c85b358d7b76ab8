package schedule

import (
	"fmt"
	"time"
)

// Wall-clock arithmetic for (date, start, end) triples. Times are minutes
// since midnight; dates are calendar days normalized to midnight UTC.

const clockLayout = "15:04"

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse(clockLayout, hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// DurationMinutes is end minus start for same-day wall-clock times.
func DurationMinutes(start, end int) int {
	return end - start
}

// GapMinutes is the signed number of minutes between two absolute
// timestamps; negative when laterStart precedes earlierEnd.
func GapMinutes(earlierEnd, laterStart time.Time) int {
	return int(laterStart.Sub(earlierEnd) / time.Minute)
}

// DateOnly strips the time component, anchoring the date at midnight UTC so
// equality and range comparisons behave the same across database drivers.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// At combines a calendar date with wall-clock minutes into a timestamp.
func At(date time.Time, minutes int) time.Time {
	d := DateOnly(date)
	return d.Add(time.Duration(minutes) * time.Minute)
}

// Weekday returns the ISO day of week for a date, 1 (Monday) through 7
// (Sunday).
func Weekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WeekStart returns the Monday beginning the ISO week containing date.
func WeekStart(date time.Time) time.Time {
	d := DateOnly(date)
	return d.AddDate(0, 0, 1-Weekday(d))
}
