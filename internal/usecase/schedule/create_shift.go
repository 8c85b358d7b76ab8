package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/platefleet/scheduling/internal/audit"
	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/infra/cache"
	"github.com/platefleet/scheduling/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateShiftInput struct {
	StaffID  uint
	BranchID uint

	Date      string // "2006-01-02"
	StartTime string // "15:04"
	EndTime   string

	RequiredRole string
	Breaks       []domain.BreakInterval

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateShift struct {
	repo  domain.Repository
	rules domain.Rules
	audit *audit.Dispatcher
	cache cache.StatisticsCache
}

func NewCreateShift(
	repo domain.Repository,
	rules domain.Rules,
	auditDispatcher *audit.Dispatcher,
	statsCache cache.StatisticsCache,
) *CreateShift {
	return &CreateShift{
		repo:  repo,
		rules: rules,
		audit: auditDispatcher,
		cache: statsCache,
	}
}

// validateInput rejects structural problems before anything is written.
// Detected conflicts are not errors and never block creation.
func (uc *CreateShift) validateInput(
	ctx context.Context,
	in CreateShiftInput,
) (date time.Time, startMin, endMin int, err error) {

	date, err = time.Parse("2006-01-02", in.Date)
	if err != nil {
		return time.Time{}, 0, 0, domain.ErrInvalidTimeRange
	}

	startMin, err = domain.ParseClock(in.StartTime)
	if err != nil {
		return time.Time{}, 0, 0, domain.ErrInvalidTimeRange
	}
	endMin, err = domain.ParseClock(in.EndTime)
	if err != nil {
		return time.Time{}, 0, 0, domain.ErrInvalidTimeRange
	}
	if startMin >= endMin {
		return time.Time{}, 0, 0, domain.ErrInvalidTimeRange
	}

	if in.RequiredRole != "" && !models.ValidRole(in.RequiredRole) {
		return time.Time{}, 0, 0, domain.ErrInvalidRole
	}

	staff, err := uc.repo.GetStaffMember(ctx, in.StaffID)
	if err != nil {
		return time.Time{}, 0, 0, err
	}
	if !staff.Active {
		return time.Time{}, 0, 0, domain.ErrStaffInactive
	}

	if _, err := uc.repo.GetBranch(ctx, in.BranchID); err != nil {
		return time.Time{}, 0, 0, err
	}

	return domain.DateOnly(date), startMin, endMin, nil
}

// Execute persists the shift and whatever conflicts the detector finds as
// one atomic unit: a shift row without its conflict rows is never
// observable.
func (uc *CreateShift) Execute(
	ctx context.Context,
	in CreateShiftInput,
) (*models.Shift, error) {

	date, startMin, endMin, err := uc.validateInput(ctx, in)
	if err != nil {
		return nil, err
	}

	breaksJSON, err := domain.EncodeBreaks(in.Breaks)
	if err != nil {
		return nil, domain.ErrInvalidTimeRange
	}

	shift := &models.Shift{
		Reference:    uuid.NewString(),
		StaffID:      in.StaffID,
		BranchID:     in.BranchID,
		Date:         date,
		StartTime:    domain.FormatClock(startMin),
		EndTime:      domain.FormatClock(endMin),
		Status:       models.ShiftScheduled,
		RequiredRole: in.RequiredRole,
		Breaks:       breaksJSON,
		TotalHours:   domain.TotalHours(startMin, endMin, in.Breaks),
	}

	err = uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		if err := tx.CreateShift(ctx, shift); err != nil {
			return err
		}

		cand, err := domain.CandidateFromShift(shift)
		if err != nil {
			return err
		}

		conflicts, err := domain.NewDetector(tx, uc.rules).Detect(ctx, cand)
		if err != nil {
			return err
		}
		if err := tx.CreateConflicts(ctx, conflicts); err != nil {
			return err
		}

		shift.Conflicts = conflicts
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.BumpBranch(ctx, shift.BranchID)

	uc.audit.Dispatch(audit.Event{
		BranchID: shift.BranchID,
		UserID:   in.ActorID,
		Action:   "shift_created",
		Entity:   "shift",
		EntityID: &shift.ID,
		Metadata: map[string]any{
			"staff_id":  shift.StaffID,
			"date":      in.Date,
			"conflicts": len(shift.Conflicts),
		},
	})

	return shift, nil
}
