package schedule

// Rules carries the locale-bound scheduling constants. It is built once from
// configuration and passed to the detector and auto-scheduler explicitly so
// detection stays pure and testable with arbitrary caps.
type Rules struct {
	// WeeklyCapMinutes is the maximum scheduled minutes per staff member per
	// ISO week (Monday start).
	WeeklyCapMinutes int

	// MinRestMinutes is the minimum gap required between two adjacent shifts
	// of the same staff member.
	MinRestMinutes int

	// DefaultShiftStartMin/DefaultShiftEndMin define the window the
	// auto-scheduler fills when the caller does not supply one.
	DefaultShiftStartMin int
	DefaultShiftEndMin   int
}

func DefaultRules() Rules {
	return Rules{
		WeeklyCapMinutes:     40 * 60,
		MinRestMinutes:       10 * 60,
		DefaultShiftStartMin: 9 * 60,
		DefaultShiftEndMin:   17 * 60,
	}
}
