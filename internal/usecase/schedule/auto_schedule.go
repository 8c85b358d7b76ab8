package schedule

import (
	"context"
	"time"

	"github.com/platefleet/scheduling/internal/audit"
	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/httperr"
	"github.com/platefleet/scheduling/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// Requirement is one role quota to fill. Requirements are a slice, not a
// map, so the fill order is exactly the order the caller supplied.
type Requirement struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

type AutoScheduleInput struct {
	BranchID uint
	Date     string // "2006-01-02"

	Requirements []Requirement

	// Optional override of the default shift window from the rules.
	WindowStart string
	WindowEnd   string

	ActorID *uint
}

// UnmetRequirement reports a quota the auto-scheduler could not fill from
// eligible candidates. It never forces a conflicted assignment to close the
// gap.
type UnmetRequirement struct {
	Role      string `json:"role"`
	Requested int    `json:"requested"`
	Fulfilled int    `json:"fulfilled"`
}

type AutoScheduleResult struct {
	ScheduledShifts []*models.Shift    `json:"scheduled_shifts"`
	Unmet           []UnmetRequirement `json:"unmet_requirements"`
}

// ======================================================
// USE CASE
// ======================================================

type AutoSchedule struct {
	repo        domain.Repository
	rules       domain.Rules
	createShift *CreateShift
	audit       *audit.Dispatcher
}

func NewAutoSchedule(
	repo domain.Repository,
	rules domain.Rules,
	createShift *CreateShift,
	auditDispatcher *audit.Dispatcher,
) *AutoSchedule {
	return &AutoSchedule{
		repo:        repo,
		rules:       rules,
		createShift: createShift,
		audit:       auditDispatcher,
	}
}

// Execute fills each role quota greedily from eligible candidates in
// ascending staff-id order. Candidates are pre-filtered on branch,
// availability and same-day overlap; the authoritative detection still runs
// inside each createShift transaction, so returned shifts may carry
// conflicts the pre-filter cannot see (weekly caps from other dates, rest
// gaps). Assignment is sequential on purpose: weekly-hour accounting for one
// person must observe the shifts this very call just created.
func (uc *AutoSchedule) Execute(
	ctx context.Context,
	in AutoScheduleInput,
) (*AutoScheduleResult, error) {

	if _, err := uc.repo.GetBranch(ctx, in.BranchID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, domain.ErrInvalidTimeRange
	}
	date = domain.DateOnly(date)

	windowStart, windowEnd, err := uc.window(in)
	if err != nil {
		return nil, err
	}

	result := &AutoScheduleResult{}

	for _, req := range in.Requirements {
		if !models.ValidRole(req.Role) {
			return nil, domain.ErrInvalidRole
		}
		if req.Count <= 0 {
			continue
		}

		candidates, err := uc.repo.ListActiveStaffByRole(ctx, req.Role)
		if err != nil {
			return nil, err
		}

		fulfilled := 0
		for _, staff := range candidates {
			if fulfilled >= req.Count {
				break
			}

			eligible, err := uc.eligible(ctx, staff, in.BranchID, date, windowStart, windowEnd)
			if err != nil {
				return nil, err
			}
			if !eligible {
				continue
			}

			shift, err := uc.createShift.Execute(ctx, CreateShiftInput{
				StaffID:      staff.ID,
				BranchID:     in.BranchID,
				Date:         in.Date,
				StartTime:    domain.FormatClock(windowStart),
				EndTime:      domain.FormatClock(windowEnd),
				RequiredRole: req.Role,
				ActorID:      in.ActorID,
			})
			if err != nil {
				// A business rejection for one candidate (raced into an
				// invalid state) skips that candidate; storage failures
				// abort the whole run.
				if _, ok := httperr.IsAnyBusiness(err); ok {
					continue
				}
				return nil, err
			}

			result.ScheduledShifts = append(result.ScheduledShifts, shift)
			fulfilled++
		}

		if fulfilled < req.Count {
			result.Unmet = append(result.Unmet, UnmetRequirement{
				Role:      req.Role,
				Requested: req.Count,
				Fulfilled: fulfilled,
			})
		}
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: in.BranchID,
		UserID:   in.ActorID,
		Action:   "auto_schedule_run",
		Entity:   "branch",
		EntityID: &in.BranchID,
		Metadata: map[string]any{
			"date":      in.Date,
			"scheduled": len(result.ScheduledShifts),
			"unmet":     len(result.Unmet),
		},
	})

	return result, nil
}

func (uc *AutoSchedule) window(in AutoScheduleInput) (int, int, error) {
	start := uc.rules.DefaultShiftStartMin
	end := uc.rules.DefaultShiftEndMin

	if in.WindowStart != "" {
		s, err := domain.ParseClock(in.WindowStart)
		if err != nil {
			return 0, 0, domain.ErrInvalidTimeRange
		}
		start = s
	}
	if in.WindowEnd != "" {
		e, err := domain.ParseClock(in.WindowEnd)
		if err != nil {
			return 0, 0, domain.ErrInvalidTimeRange
		}
		end = e
	}
	if start >= end {
		return 0, 0, domain.ErrInvalidTimeRange
	}
	return start, end, nil
}

// eligible applies the candidate pre-filter: home branch (or branch-
// agnostic), an availability window covering the whole default window, and
// no existing shift that day overlapping it.
func (uc *AutoSchedule) eligible(
	ctx context.Context,
	staff models.StaffMember,
	branchID uint,
	date time.Time,
	windowStart, windowEnd int,
) (bool, error) {

	if staff.BranchID != nil && *staff.BranchID != branchID {
		return false, nil
	}

	windows, err := uc.repo.ListWindows(ctx, staff.ID)
	if err != nil {
		return false, err
	}
	if !domain.CoversRange(domain.WindowsFor(windows, date), windowStart, windowEnd) {
		return false, nil
	}

	dayShifts, err := uc.repo.ListShiftsForDate(ctx, staff.ID, date, 0)
	if err != nil {
		return false, err
	}
	for _, s := range dayShifts {
		ss, err := domain.ParseClock(s.StartTime)
		if err != nil {
			continue
		}
		se, err := domain.ParseClock(s.EndTime)
		if err != nil {
			continue
		}
		if domain.Overlaps(windowStart, windowEnd, ss, se) {
			return false, nil
		}
	}

	return true, nil
}
