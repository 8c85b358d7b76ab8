package schedule

import (
	"context"
	"time"

	"github.com/platefleet/scheduling/internal/audit"
	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/models"
)

type ResolveConflictInput struct {
	ConflictID uint
	ActorID    uint
	Notes      string
}

type ResolveConflict struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewResolveConflict(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *ResolveConflict {
	return &ResolveConflict{repo: repo, audit: auditDispatcher}
}

// Execute marks a conflict resolved. Resolution is the only path that flips
// the flag; scheduling changes never resolve conflicts implicitly.
func (uc *ResolveConflict) Execute(
	ctx context.Context,
	in ResolveConflictInput,
) (*models.Conflict, error) {

	conflict, err := uc.repo.GetConflict(ctx, in.ConflictID)
	if err != nil {
		return nil, err
	}
	if conflict.Resolved {
		return nil, domain.ErrConflictResolved
	}

	shift, err := uc.repo.GetShift(ctx, conflict.ShiftID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	conflict.Resolved = true
	conflict.ResolvedAt = &now
	conflict.ResolvedBy = &in.ActorID
	conflict.ResolutionNotes = in.Notes

	if err := uc.repo.SaveConflict(ctx, conflict); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: shift.BranchID,
		UserID:   &in.ActorID,
		Action:   "conflict_resolved",
		Entity:   "conflict",
		EntityID: &conflict.ID,
		Metadata: map[string]any{
			"type":     conflict.Type,
			"shift_id": conflict.ShiftID,
		},
	})

	return conflict, nil
}
