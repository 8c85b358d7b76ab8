package schedule

import (
	"context"

	"github.com/platefleet/scheduling/internal/audit"
	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/infra/cache"
)

type DeleteShift struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.StatisticsCache
}

func NewDeleteShift(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	statsCache cache.StatisticsCache,
) *DeleteShift {
	return &DeleteShift{
		repo:  repo,
		audit: auditDispatcher,
		cache: statsCache,
	}
}

// Execute removes the shift and every conflict attached to it, resolved or
// not. Conflicts never outlive their shift.
func (uc *DeleteShift) Execute(
	ctx context.Context,
	shiftID uint,
	actorID *uint,
) error {

	var branchID uint

	err := uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		shift, err := tx.GetShift(ctx, shiftID)
		if err != nil {
			return err
		}
		branchID = shift.BranchID

		if err := tx.DeleteConflicts(ctx, shift.ID); err != nil {
			return err
		}
		return tx.DeleteShift(ctx, shift)
	})
	if err != nil {
		return err
	}

	uc.cache.BumpBranch(ctx, branchID)

	uc.audit.Dispatch(audit.Event{
		BranchID: branchID,
		UserID:   actorID,
		Action:   "shift_deleted",
		Entity:   "shift",
		EntityID: &shiftID,
	})

	return nil
}
