package schedule

import (
	"context"

	"github.com/platefleet/scheduling/internal/audit"
	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/infra/cache"
	"github.com/platefleet/scheduling/internal/models"
	"github.com/platefleet/scheduling/internal/timezone"
)

type CancelShift struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.StatisticsCache
}

func NewCancelShift(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	statsCache cache.StatisticsCache,
) *CancelShift {
	return &CancelShift{
		repo:  repo,
		audit: auditDispatcher,
		cache: statsCache,
	}
}

// Execute cancels a scheduled shift. Its unresolved conflicts are dropped in
// the same transaction, since an unresolved conflict must always point at a
// live, non-cancelled shift. Resolved ones stay as history.
func (uc *CancelShift) Execute(
	ctx context.Context,
	shiftID uint,
	actorID *uint,
) (*models.Shift, error) {

	var cancelled *models.Shift

	err := uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		shift, err := tx.GetShift(ctx, shiftID)
		if err != nil {
			return err
		}
		if shift.Status != models.ShiftScheduled {
			return domain.ErrInvalidState
		}

		branch, err := tx.GetBranch(ctx, shift.BranchID)
		if err != nil {
			return err
		}

		now := timezone.NowIn(branch.Timezone)
		shift.Status = models.ShiftCancelled
		shift.UpdatedAt = now

		if err := tx.SaveShift(ctx, shift); err != nil {
			return err
		}
		if err := tx.DeleteUnresolvedConflicts(ctx, shift.ID); err != nil {
			return err
		}

		cancelled = shift
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.BumpBranch(ctx, cancelled.BranchID)

	uc.audit.Dispatch(audit.Event{
		BranchID: cancelled.BranchID,
		UserID:   actorID,
		Action:   "shift_cancelled",
		Entity:   "shift",
		EntityID: &cancelled.ID,
	})

	return cancelled, nil
}
