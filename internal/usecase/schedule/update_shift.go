package schedule

import (
	"context"
	"time"

	"github.com/platefleet/scheduling/internal/audit"
	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/infra/cache"
	"github.com/platefleet/scheduling/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateShiftInput carries the mutable shift attributes; nil fields are left
// untouched. Any change to staff, branch or times triggers a full conflict
// re-evaluation.
type UpdateShiftInput struct {
	ShiftID uint

	StaffID   *uint
	BranchID  *uint
	Date      *string
	StartTime *string
	EndTime   *string

	RequiredRole *string
	Breaks       *[]domain.BreakInterval

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type UpdateShift struct {
	repo  domain.Repository
	rules domain.Rules
	audit *audit.Dispatcher
	cache cache.StatisticsCache
}

func NewUpdateShift(
	repo domain.Repository,
	rules domain.Rules,
	auditDispatcher *audit.Dispatcher,
	statsCache cache.StatisticsCache,
) *UpdateShift {
	return &UpdateShift{
		repo:  repo,
		rules: rules,
		audit: auditDispatcher,
		cache: statsCache,
	}
}

// Execute applies the changes, drops the previously recorded unresolved
// conflicts and re-runs detection, all inside one transaction. Resolved
// conflicts are history: they stay untouched and are never flipped back.
// When the same condition recurs the detector records a fresh unresolved
// conflict instead.
func (uc *UpdateShift) Execute(
	ctx context.Context,
	in UpdateShiftInput,
) (*models.Shift, error) {

	var updated *models.Shift

	err := uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		shift, err := tx.GetShift(ctx, in.ShiftID)
		if err != nil {
			return err
		}
		if shift.Status == models.ShiftCancelled || shift.Status == models.ShiftCompleted {
			return domain.ErrInvalidState
		}

		if err := uc.apply(ctx, tx, shift, in); err != nil {
			return err
		}
		if err := tx.SaveShift(ctx, shift); err != nil {
			return err
		}

		if err := tx.DeleteUnresolvedConflicts(ctx, shift.ID); err != nil {
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
		updated = shift
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.BumpBranch(ctx, updated.BranchID)

	uc.audit.Dispatch(audit.Event{
		BranchID: updated.BranchID,
		UserID:   in.ActorID,
		Action:   "shift_updated",
		Entity:   "shift",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"conflicts": len(updated.Conflicts),
		},
	})

	return updated, nil
}

func (uc *UpdateShift) apply(
	ctx context.Context,
	tx domain.Repository,
	shift *models.Shift,
	in UpdateShiftInput,
) error {

	if in.StaffID != nil {
		staff, err := tx.GetStaffMember(ctx, *in.StaffID)
		if err != nil {
			return err
		}
		if !staff.Active {
			return domain.ErrStaffInactive
		}
		shift.StaffID = staff.ID
	}

	if in.BranchID != nil {
		if _, err := tx.GetBranch(ctx, *in.BranchID); err != nil {
			return err
		}
		shift.BranchID = *in.BranchID
	}

	if in.Date != nil {
		date, err := time.Parse("2006-01-02", *in.Date)
		if err != nil {
			return domain.ErrInvalidTimeRange
		}
		shift.Date = domain.DateOnly(date)
	}

	if in.StartTime != nil {
		if _, err := domain.ParseClock(*in.StartTime); err != nil {
			return domain.ErrInvalidTimeRange
		}
		shift.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		if _, err := domain.ParseClock(*in.EndTime); err != nil {
			return domain.ErrInvalidTimeRange
		}
		shift.EndTime = *in.EndTime
	}

	if in.RequiredRole != nil {
		if *in.RequiredRole != "" && !models.ValidRole(*in.RequiredRole) {
			return domain.ErrInvalidRole
		}
		shift.RequiredRole = *in.RequiredRole
	}

	if in.Breaks != nil {
		breaksJSON, err := domain.EncodeBreaks(*in.Breaks)
		if err != nil {
			return domain.ErrInvalidTimeRange
		}
		shift.Breaks = breaksJSON
	}

	startMin, err := domain.ParseClock(shift.StartTime)
	if err != nil {
		return domain.ErrInvalidTimeRange
	}
	endMin, err := domain.ParseClock(shift.EndTime)
	if err != nil {
		return domain.ErrInvalidTimeRange
	}
	if startMin >= endMin {
		return domain.ErrInvalidTimeRange
	}

	breaks, err := domain.ParseBreaks(shift.Breaks)
	if err != nil {
		return domain.ErrInvalidTimeRange
	}
	shift.TotalHours = domain.TotalHours(startMin, endMin, breaks)

	return nil
}
