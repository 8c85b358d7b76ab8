package schedule

import "encoding/json"

// BreakInterval is one unpaid pause inside a shift, wall-clock "HH:MM".
type BreakInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseBreaks decodes the JSON break list stored on a shift. An empty string
// is a shift without breaks.
func ParseBreaks(raw string) ([]BreakInterval, error) {
	if raw == "" {
		return nil, nil
	}
	var breaks []BreakInterval
	if err := json.Unmarshal([]byte(raw), &breaks); err != nil {
		return nil, err
	}
	return breaks, nil
}

// EncodeBreaks renders break intervals back to their stored JSON form.
func EncodeBreaks(breaks []BreakInterval) (string, error) {
	if len(breaks) == 0 {
		return "", nil
	}
	b, err := json.Marshal(breaks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// BreakMinutes sums the durations of the given breaks. Intervals that do not
// parse or run backwards count as zero.
func BreakMinutes(breaks []BreakInterval) int {
	total := 0
	for _, b := range breaks {
		start, err := ParseClock(b.Start)
		if err != nil {
			continue
		}
		end, err := ParseClock(b.End)
		if err != nil {
			continue
		}
		if end > start {
			total += end - start
		}
	}
	return total
}

// TotalHours is the scheduled duration net of breaks, in hours. The weekly
// cap rule intentionally uses gross duration instead.
func TotalHours(startMin, endMin int, breaks []BreakInterval) float64 {
	minutes := DurationMinutes(startMin, endMin) - BreakMinutes(breaks)
	if minutes < 0 {
		minutes = 0
	}
	return float64(minutes) / 60.0
}
