package schedule

import (
	"context"
	"time"

	"github.com/platefleet/scheduling/internal/models"
)

// Reader is the read surface the conflict detector needs: the staff
// directory, the availability-window store and the existing-shift store.
// All reads must happen inside the same transaction as the shift write
// (see Repository.InTransaction) so two concurrent requests cannot both
// miss a mutual overlap.
type Reader interface {
	// -------- Staff directory --------
	GetStaffMember(ctx context.Context, id uint) (*models.StaffMember, error)

	// ListActiveStaffByRole returns active members of a role ordered by
	// ascending id (the auto-scheduler's deterministic tie-break).
	ListActiveStaffByRole(ctx context.Context, role string) ([]models.StaffMember, error)

	// -------- Availability windows --------
	ListWindows(ctx context.Context, staffID uint) ([]models.AvailabilityWindow, error)

	// -------- Shifts (read) --------
	GetShift(ctx context.Context, id uint) (*models.Shift, error)

	// ListShiftsForDate returns a staff member's non-cancelled shifts on a
	// date, excluding excludeID (0 to exclude nothing).
	ListShiftsForDate(ctx context.Context, staffID uint, date time.Time, excludeID uint) ([]models.Shift, error)

	// ListShiftsForRange returns non-cancelled shifts with from <= date < to.
	ListShiftsForRange(ctx context.Context, staffID uint, from, to time.Time, excludeID uint) ([]models.Shift, error)

	// PrecedingShift / FollowingShift locate the non-cancelled shift
	// immediately before/after (date, startMin) by date+start ordering.
	// They return nil when no such shift exists.
	PrecedingShift(ctx context.Context, staffID uint, date time.Time, startMin int, excludeID uint) (*models.Shift, error)
	FollowingShift(ctx context.Context, staffID uint, date time.Time, startMin int, excludeID uint) (*models.Shift, error)

	ListShiftsForBranch(ctx context.Context, branchID uint, from, to time.Time) ([]models.Shift, error)

	// -------- Branches --------
	GetBranch(ctx context.Context, id uint) (*models.Branch, error)

	// -------- Conflicts (read) --------
	GetConflict(ctx context.Context, id uint) (*models.Conflict, error)
	ListConflicts(ctx context.Context, shiftID uint, unresolvedOnly bool) ([]models.Conflict, error)
}

// Repository is the full store adapter consumed by the scheduler use cases.
// Supplied by the persistence collaborator; the core never talks to the
// database directly.
type Repository interface {
	Reader

	CreateShift(ctx context.Context, s *models.Shift) error
	SaveShift(ctx context.Context, s *models.Shift) error
	DeleteShift(ctx context.Context, s *models.Shift) error

	CreateConflicts(ctx context.Context, conflicts []models.Conflict) error
	SaveConflict(ctx context.Context, c *models.Conflict) error

	// DeleteUnresolvedConflicts clears the regenerable conflicts before a
	// re-detection; resolved ones are history and stay.
	DeleteUnresolvedConflicts(ctx context.Context, shiftID uint) error
	DeleteConflicts(ctx context.Context, shiftID uint) error

	// InTransaction runs fn against a transactional view of the store. The
	// adapter is responsible for locking "all shifts for this staff member
	// in the affected date range" strongly enough that detection reads and
	// the shift write are one atomic unit.
	InTransaction(ctx context.Context, fn func(Repository) error) error
}
