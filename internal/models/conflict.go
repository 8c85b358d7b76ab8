package models

import "time"

// Conflict records one scheduling-rule violation detected on a shift. It is
// created only by the conflict detector and resolved only by an explicit
// external action; rescheduling never flips Resolved back.
type Conflict struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	ShiftID uint `gorm:"index;not null" json:"shift_id"`

	Type     string `gorm:"size:30;not null" json:"type"`
	Severity string `gorm:"size:10;not null" json:"severity"`

	// Details is a type-specific JSON payload (overlapping shift id,
	// computed totals vs. cap, gap minutes, ...).
	Details string `gorm:"type:text" json:"details"`

	Resolved        bool       `gorm:"default:false;index" json:"resolved"`
	ResolvedAt      *time.Time `json:"resolved_at"`
	ResolvedBy      *uint      `json:"resolved_by"`
	ResolutionNotes string     `gorm:"size:255" json:"resolution_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
