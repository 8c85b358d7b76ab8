package schedule

import (
	"context"

	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/models"
)

// InspectConflicts answers the two questions external collaborators ask
// before acting on a shift: which conflicts does it carry, and does it still
// have unresolved ones.
type InspectConflicts struct {
	repo domain.Repository
}

func NewInspectConflicts(repo domain.Repository) *InspectConflicts {
	return &InspectConflicts{repo: repo}
}

func (uc *InspectConflicts) List(
	ctx context.Context,
	shiftID uint,
	unresolvedOnly bool,
) ([]models.Conflict, error) {

	if _, err := uc.repo.GetShift(ctx, shiftID); err != nil {
		return nil, err
	}
	return uc.repo.ListConflicts(ctx, shiftID, unresolvedOnly)
}

func (uc *InspectConflicts) HasUnresolved(
	ctx context.Context,
	shiftID uint,
) (bool, error) {

	conflicts, err := uc.List(ctx, shiftID, true)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}
