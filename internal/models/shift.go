package models

import "time"

const (
	ShiftScheduled = "scheduled"
	ShiftActive    = "active"
	ShiftCompleted = "completed"
	ShiftCancelled = "cancelled"
)

// Shift is a scheduled work period for one staff member at one branch on one
// calendar date. Times are wall-clock "HH:MM" strings; Date carries no time
// component.
type Shift struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Reference is the stable identifier handed to external collaborators
	// (notifications, POS sync) so they never depend on row ids.
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	StaffID uint        `gorm:"index;not null" json:"staff_id"`
	Staff   StaffMember `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff,omitempty"`

	BranchID uint   `gorm:"index;not null" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch,omitempty"`

	Date      time.Time `gorm:"index;not null" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	// RequiredRole is set when the shift was created against a role quota
	// (auto-scheduling); empty otherwise.
	RequiredRole string `gorm:"size:30" json:"required_role,omitempty"`

	ClockInAt  *time.Time `json:"clock_in_at"`
	ClockOutAt *time.Time `json:"clock_out_at"`

	// Breaks holds a JSON list of {"start","end"} wall-clock pairs.
	Breaks     string  `gorm:"type:text" json:"breaks,omitempty"`
	TotalHours float64 `json:"total_hours"`

	Conflicts []Conflict `gorm:"constraint:OnDelete:CASCADE;" json:"conflicts,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
