package models

import "time"

// Staff roles. Shift assignment never invents roles outside this set;
// the HTTP layer validates against it on create/update.
const (
	RoleCashier        = "CASHIER"
	RoleKitchenStaff   = "KITCHEN_STAFF"
	RoleDeliveryDriver = "DELIVERY_DRIVER"
	RoleWaiter         = "WAITER"
	RoleBranchManager  = "BRANCH_MANAGER"
)

type StaffMember struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// BranchID is the home branch. Null means the staff member is
	// branch-agnostic and may be scheduled anywhere.
	BranchID *uint   `json:"branch_id"`
	Branch   *Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch,omitempty"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Email  string `gorm:"size:100" json:"email"`
	Phone  string `gorm:"size:20" json:"phone"`
	Role   string `gorm:"size:30;not null" json:"role"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleCashier, RoleKitchenStaff, RoleDeliveryDriver, RoleWaiter, RoleBranchManager:
		return true
	}
	return false
}
