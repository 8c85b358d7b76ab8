package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/httperr"
	"github.com/platefleet/scheduling/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// lockedShifts adds FOR UPDATE on per-staff shift reads so concurrent
// create/update calls for the same staff member serialize inside the
// surrounding transaction. SQLite (dev/test database) locks the whole file
// anyway and rejects the clause.
func (r *ScheduleGormRepository) lockedShifts(tx *gorm.DB) *gorm.DB {
	if r.db.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// --------------------------------------------------
// Staff directory
// --------------------------------------------------

func (r *ScheduleGormRepository) GetStaffMember(
	ctx context.Context,
	id uint,
) (*models.StaffMember, error) {

	var staff models.StaffMember
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, err
	}
	return &staff, nil
}

func (r *ScheduleGormRepository) ListActiveStaffByRole(
	ctx context.Context,
	role string,
) ([]models.StaffMember, error) {

	var staff []models.StaffMember
	if err := r.db.WithContext(ctx).
		Where("role = ? AND active = ?", role, true).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// --------------------------------------------------
// Availability windows
// --------------------------------------------------

func (r *ScheduleGormRepository) ListWindows(
	ctx context.Context,
	staffID uint,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

// --------------------------------------------------
// Shifts (read)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetShift(
	ctx context.Context,
	id uint,
) (*models.Shift, error) {

	var shift models.Shift
	if err := r.db.WithContext(ctx).First(&shift, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShiftNotFound
		}
		return nil, err
	}
	return &shift, nil
}

func (r *ScheduleGormRepository) ListShiftsForDate(
	ctx context.Context,
	staffID uint,
	date time.Time,
	excludeID uint,
) ([]models.Shift, error) {

	var shifts []models.Shift
	q := r.lockedShifts(r.db.WithContext(ctx)).
		Where(
			"staff_id = ? AND date = ? AND status <> ?",
			staffID, domain.DateOnly(date), models.ShiftCancelled,
		)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Order("start_time ASC").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *ScheduleGormRepository) ListShiftsForRange(
	ctx context.Context,
	staffID uint,
	from, to time.Time,
	excludeID uint,
) ([]models.Shift, error) {

	var shifts []models.Shift
	q := r.lockedShifts(r.db.WithContext(ctx)).
		Where(
			"staff_id = ? AND date >= ? AND date < ? AND status <> ?",
			staffID, domain.DateOnly(from), domain.DateOnly(to), models.ShiftCancelled,
		)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Order("date ASC, start_time ASC").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *ScheduleGormRepository) PrecedingShift(
	ctx context.Context,
	staffID uint,
	date time.Time,
	startMin int,
	excludeID uint,
) (*models.Shift, error) {

	var shift models.Shift
	q := r.lockedShifts(r.db.WithContext(ctx)).
		Where("staff_id = ? AND status <> ?", staffID, models.ShiftCancelled).
		Where(
			"(date < ? OR (date = ? AND start_time < ?))",
			domain.DateOnly(date), domain.DateOnly(date), domain.FormatClock(startMin),
		)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Order("date DESC, start_time DESC").First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *ScheduleGormRepository) FollowingShift(
	ctx context.Context,
	staffID uint,
	date time.Time,
	startMin int,
	excludeID uint,
) (*models.Shift, error) {

	var shift models.Shift
	q := r.lockedShifts(r.db.WithContext(ctx)).
		Where("staff_id = ? AND status <> ?", staffID, models.ShiftCancelled).
		Where(
			"(date > ? OR (date = ? AND start_time > ?))",
			domain.DateOnly(date), domain.DateOnly(date), domain.FormatClock(startMin),
		)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Order("date ASC, start_time ASC").First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *ScheduleGormRepository) ListShiftsForBranch(
	ctx context.Context,
	branchID uint,
	from, to time.Time,
) ([]models.Shift, error) {

	var shifts []models.Shift
	if err := r.db.WithContext(ctx).
		Where(
			"branch_id = ? AND date >= ? AND date <= ?",
			branchID, domain.DateOnly(from), domain.DateOnly(to),
		).
		Order("date ASC, start_time ASC").
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

// --------------------------------------------------
// Branches
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBranch(
	ctx context.Context,
	id uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBranchNotFound
		}
		return nil, err
	}
	return &branch, nil
}

// --------------------------------------------------
// Shifts (write)
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateShift(
	ctx context.Context,
	s *models.Shift,
) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrBusiness("duplicate_shift_reference")
		}
		return fmt.Errorf("create shift: %w", err)
	}
	return nil
}

func (r *ScheduleGormRepository) SaveShift(
	ctx context.Context,
	s *models.Shift,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ScheduleGormRepository) DeleteShift(
	ctx context.Context,
	s *models.Shift,
) error {
	return r.db.WithContext(ctx).Delete(s).Error
}

// --------------------------------------------------
// Conflicts
// --------------------------------------------------

func (r *ScheduleGormRepository) GetConflict(
	ctx context.Context,
	id uint,
) (*models.Conflict, error) {

	var conflict models.Conflict
	if err := r.db.WithContext(ctx).First(&conflict, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrConflictNotFound
		}
		return nil, err
	}
	return &conflict, nil
}

func (r *ScheduleGormRepository) ListConflicts(
	ctx context.Context,
	shiftID uint,
	unresolvedOnly bool,
) ([]models.Conflict, error) {

	q := r.db.WithContext(ctx).Where("shift_id = ?", shiftID)
	if unresolvedOnly {
		q = q.Where("resolved = ?", false)
	}

	var conflicts []models.Conflict
	if err := q.Order("id ASC").Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (r *ScheduleGormRepository) CreateConflicts(
	ctx context.Context,
	conflicts []models.Conflict,
) error {
	if len(conflicts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&conflicts).Error
}

func (r *ScheduleGormRepository) SaveConflict(
	ctx context.Context,
	c *models.Conflict,
) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ScheduleGormRepository) DeleteUnresolvedConflicts(
	ctx context.Context,
	shiftID uint,
) error {
	return r.db.WithContext(ctx).
		Where("shift_id = ? AND resolved = ?", shiftID, false).
		Delete(&models.Conflict{}).Error
}

func (r *ScheduleGormRepository) DeleteConflicts(
	ctx context.Context,
	shiftID uint,
) error {
	return r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Delete(&models.Conflict{}).Error
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *ScheduleGormRepository) InTransaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
