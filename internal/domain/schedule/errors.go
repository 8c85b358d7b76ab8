package schedule

import "github.com/platefleet/scheduling/internal/httperr"

// Validation failures. All of these are rejected before detection or
// persistence runs; detected conflicts are data, never errors.
var (
	ErrInvalidTimeRange = httperr.ErrBusiness("invalid_time_range")
	ErrInvalidRole      = httperr.ErrBusiness("invalid_role")
	ErrStaffNotFound    = httperr.ErrBusiness("staff_not_found")
	ErrStaffInactive    = httperr.ErrBusiness("staff_inactive")
	ErrBranchNotFound   = httperr.ErrBusiness("branch_not_found")
	ErrShiftNotFound    = httperr.ErrBusiness("shift_not_found")
	ErrConflictNotFound = httperr.ErrBusiness("conflict_not_found")
	ErrConflictResolved = httperr.ErrBusiness("conflict_already_resolved")
	ErrInvalidState     = httperr.ErrBusiness("invalid_state")
)
