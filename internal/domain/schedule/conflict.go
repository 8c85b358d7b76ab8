package schedule

import (
	"encoding/json"

	"github.com/platefleet/scheduling/internal/models"
)

// ===============================
// Conflict types and severities
// ===============================

const (
	ConflictOverlap        = "overlap"
	ConflictUnavailable    = "unavailable"
	ConflictMaxHours       = "max_hours"
	ConflictMinRest        = "min_rest"
	ConflictBranchMismatch = "branch_mismatch"
	ConflictRoleMismatch   = "role_mismatch"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// ===============================
// Detail payloads
// ===============================

type OverlapDetails struct {
	OverlappingShiftID uint   `json:"overlapping_shift_id"`
	OtherStart         string `json:"other_start"`
	OtherEnd           string `json:"other_end"`
}

type UnavailableDetails struct {
	ShiftStart     string `json:"shift_start"`
	ShiftEnd       string `json:"shift_end"`
	WindowsMatched int    `json:"windows_matched"`
}

type MaxHoursDetails struct {
	TotalMinutes int `json:"total_minutes"`
	CapMinutes   int `json:"cap_minutes"`
}

type MinRestDetails struct {
	AdjacentShiftID uint `json:"adjacent_shift_id"`
	GapMinutes      int  `json:"gap_minutes"`
	RequiredMinutes int  `json:"required_minutes"`
}

type BranchMismatchDetails struct {
	ShiftBranchID uint `json:"shift_branch_id"`
	HomeBranchID  uint `json:"home_branch_id"`
}

type RoleMismatchDetails struct {
	RequiredRole string `json:"required_role"`
	StaffRole    string `json:"staff_role"`
}

func newConflict(ctype, severity string, details any) models.Conflict {
	var payload string
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			payload = string(b)
		}
	}
	return models.Conflict{
		Type:     ctype,
		Severity: severity,
		Details:  payload,
	}
}
