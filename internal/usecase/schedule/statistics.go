package schedule

import (
	"context"
	"time"

	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/infra/cache"
	"github.com/platefleet/scheduling/internal/models"
)

type ShiftStatistics struct {
	repo  domain.Repository
	cache cache.StatisticsCache
}

func NewShiftStatistics(
	repo domain.Repository,
	statsCache cache.StatisticsCache,
) *ShiftStatistics {
	return &ShiftStatistics{repo: repo, cache: statsCache}
}

// Execute aggregates shift counts and hours for a branch over an inclusive
// date range. Pure read-side reporting: no rule logic, no writes.
func (uc *ShiftStatistics) Execute(
	ctx context.Context,
	branchID uint,
	from, to time.Time,
) (*domain.Statistics, error) {

	if _, err := uc.repo.GetBranch(ctx, branchID); err != nil {
		return nil, err
	}

	from = domain.DateOnly(from)
	to = domain.DateOnly(to)
	if to.Before(from) {
		return nil, domain.ErrInvalidTimeRange
	}

	if stats, ok := uc.cache.Get(ctx, branchID, from, to); ok {
		return stats, nil
	}

	shifts, err := uc.repo.ListShiftsForBranch(ctx, branchID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &domain.Statistics{
		TotalShifts: len(shifts),
		ByStatus:    map[string]int{},
	}
	for _, s := range shifts {
		stats.ByStatus[s.Status]++
		if s.Status != models.ShiftCancelled {
			stats.TotalHours += s.TotalHours
		}
	}

	uc.cache.Set(ctx, branchID, from, to, stats)
	return stats, nil
}
