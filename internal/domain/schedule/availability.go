package schedule

import (
	"time"

	"github.com/platefleet/scheduling/internal/models"
)

// WindowsFor filters a staff member's availability windows down to the ones
// effective on the given date: matching weekday, marked available, and inside
// the optional effective-from/effective-until bounds. An empty result means
// the staff member is fully unavailable that day, not unrestricted.
func WindowsFor(windows []models.AvailabilityWindow, date time.Time) []models.AvailabilityWindow {
	day := DateOnly(date)
	weekday := Weekday(day)

	var out []models.AvailabilityWindow
	for _, w := range windows {
		if w.Weekday != weekday || !w.IsAvailable {
			continue
		}
		if w.EffectiveFrom != nil && day.Before(DateOnly(*w.EffectiveFrom)) {
			continue
		}
		if w.EffectiveUntil != nil && day.After(DateOnly(*w.EffectiveUntil)) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// CoversRange reports whether any single window fully contains
// [startMin, endMin]. Disjoint windows are not merged; a shift spanning two
// adjacent windows is still uncovered.
func CoversRange(windows []models.AvailabilityWindow, startMin, endMin int) bool {
	for _, w := range windows {
		ws, err := ParseClock(w.StartTime)
		if err != nil {
			continue
		}
		we, err := ParseClock(w.EndTime)
		if err != nil {
			continue
		}
		if ws <= startMin && we >= endMin {
			return true
		}
	}
	return false
}
