package models

import "time"

// AvailabilityWindow is a recurring weekday time range during which a staff
// member may be scheduled. Weekday runs 1-7 with Monday as 1. Start and end
// are wall-clock "HH:MM" strings; start must sort before end.
type AvailabilityWindow struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index;not null" json:"staff_id"`

	Weekday int `gorm:"not null" json:"weekday"`

	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	IsAvailable bool   `gorm:"default:true" json:"is_available"`

	EffectiveFrom  *time.Time `gorm:"type:date" json:"effective_from"`
	EffectiveUntil *time.Time `gorm:"type:date" json:"effective_until"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
