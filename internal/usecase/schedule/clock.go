package schedule

import (
	"context"
	"time"

	"github.com/platefleet/scheduling/internal/audit"
	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/models"
	"github.com/platefleet/scheduling/internal/timezone"
)

// Clock-in/out transitions. Timestamps are taken in the branch's timezone;
// scheduling rule arithmetic elsewhere stays wall-clock.

type ClockShift struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewClockShift(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *ClockShift {
	return &ClockShift{repo: repo, audit: auditDispatcher}
}

func (uc *ClockShift) In(
	ctx context.Context,
	shiftID uint,
	actorID *uint,
) (*models.Shift, error) {

	shift, err := uc.repo.GetShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != models.ShiftScheduled {
		return nil, domain.ErrInvalidState
	}

	branch, err := uc.repo.GetBranch(ctx, shift.BranchID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(branch.Timezone)
	shift.Status = models.ShiftActive
	shift.ClockInAt = &now

	if err := uc.repo.SaveShift(ctx, shift); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: shift.BranchID,
		UserID:   actorID,
		Action:   "shift_clock_in",
		Entity:   "shift",
		EntityID: &shift.ID,
	})

	return shift, nil
}

// Out completes an active shift and recomputes total hours from the actual
// clocked interval net of recorded breaks.
func (uc *ClockShift) Out(
	ctx context.Context,
	shiftID uint,
	actorID *uint,
) (*models.Shift, error) {

	shift, err := uc.repo.GetShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != models.ShiftActive || shift.ClockInAt == nil {
		return nil, domain.ErrInvalidState
	}

	branch, err := uc.repo.GetBranch(ctx, shift.BranchID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(branch.Timezone)
	shift.Status = models.ShiftCompleted
	shift.ClockOutAt = &now

	breaks, err := domain.ParseBreaks(shift.Breaks)
	if err != nil {
		breaks = nil
	}
	worked := int(now.Sub(*shift.ClockInAt)/time.Minute) - domain.BreakMinutes(breaks)
	if worked < 0 {
		worked = 0
	}
	shift.TotalHours = float64(worked) / 60.0

	if err := uc.repo.SaveShift(ctx, shift); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: shift.BranchID,
		UserID:   actorID,
		Action:   "shift_clock_out",
		Entity:   "shift",
		EntityID: &shift.ID,
	})

	return shift, nil
}
