package dto

import "github.com/platefleet/scheduling/internal/models"

// ShiftListItem is the flattened row the schedule board renders. Conflict
// payloads are omitted; the board only needs the unresolved count to flag a
// cell.
type ShiftListItem struct {
	ID        uint   `json:"id"`
	Reference string `json:"reference"`

	StaffID   uint   `json:"staff_id"`
	StaffName string `json:"staff_name"`
	StaffRole string `json:"staff_role"`

	BranchID uint `json:"branch_id"`

	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	Status       string  `json:"status"`
	RequiredRole string  `json:"required_role,omitempty"`
	TotalHours   float64 `json:"total_hours"`

	UnresolvedConflicts int `json:"unresolved_conflicts"`
}

func NewShiftListItem(s models.Shift) ShiftListItem {
	unresolved := 0
	for _, c := range s.Conflicts {
		if !c.Resolved {
			unresolved++
		}
	}

	return ShiftListItem{
		ID:                  s.ID,
		Reference:           s.Reference,
		StaffID:             s.StaffID,
		StaffName:           s.Staff.Name,
		StaffRole:           s.Staff.Role,
		BranchID:            s.BranchID,
		Date:                s.Date.Format("2006-01-02"),
		StartTime:           s.StartTime,
		EndTime:             s.EndTime,
		Status:              s.Status,
		RequiredRole:        s.RequiredRole,
		TotalHours:          s.TotalHours,
		UnresolvedConflicts: unresolved,
	}
}
