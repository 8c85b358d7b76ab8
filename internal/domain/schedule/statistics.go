package schedule

// Statistics is the read-side aggregate over a branch and inclusive date
// range. Cancelled shifts are excluded from the hour total but still counted
// in the per-status map.
type Statistics struct {
	TotalShifts int            `json:"total_shifts"`
	TotalHours  float64        `json:"total_hours"`
	ByStatus    map[string]int `json:"by_status"`
}
