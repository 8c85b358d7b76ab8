package schedule

import (
	"context"
	"errors"
	"testing"

	domain "github.com/platefleet/scheduling/internal/domain/schedule"
	"github.com/platefleet/scheduling/internal/models"
)

func seedOverlappingPair(t *testing.T, env *testEnv) (branch models.Branch, staff models.StaffMember, conflicted *models.Shift) {
	t.Helper()

	branch = seedBranch(t, env.db, "centro")
	staff = seedStaff(t, env.db, &branch.ID, models.RoleCashier)
	seedWeekAvailability(t, env.db, staff.ID)

	if _, err := env.create.Execute(context.Background(), CreateShiftInput{
		StaffID:   staff.ID,
		BranchID:  branch.ID,
		Date:      "2026-03-02",
		StartTime: "09:00",
		EndTime:   "17:00",
	}); err != nil {
		t.Fatalf("failed to seed first shift: %v", err)
	}

	conflicted, err := env.create.Execute(context.Background(), CreateShiftInput{
		StaffID:   staff.ID,
		BranchID:  branch.ID,
		Date:      "2026-03-02",
		StartTime: "16:00",
		EndTime:   "20:00",
	})
	if err != nil {
		t.Fatalf("failed to seed overlapping shift: %v", err)
	}
	if len(conflicted.Conflicts) != 1 {
		t.Fatalf("expected seeded overlap conflict, got %d", len(conflicted.Conflicts))
	}
	return branch, staff, conflicted
}

func TestUpdateShiftClearsStaleConflicts(t *testing.T) {
	env := newTestEnv(t)
	_, _, conflicted := seedOverlappingPair(t, env)

	// Moving the shift to the next day clears the overlap and leaves a rest
	// gap well above the minimum.
	updated, err := env.update.Execute(context.Background(), UpdateShiftInput{
		ShiftID: conflicted.ID,
		Date:    strPtr("2026-03-03"),
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if len(updated.Conflicts) != 0 {
		t.Errorf("Expected no conflicts after move, got %d", len(updated.Conflicts))
	}
	if n := countConflicts(t, env.db, conflicted.ID, nil); n != 0 {
		t.Errorf("Expected stale conflicts deleted, found %d", n)
	}
	if !updated.Date.Equal(testMonday.AddDate(0, 0, 1)) {
		t.Errorf("Date not applied: %s", updated.Date.Format("2006-01-02"))
	}
}

func TestUpdateShiftMoveLeavesShortRest(t *testing.T) {
	env := newTestEnv(t)
	_, _, conflicted := seedOverlappingPair(t, env)

	// 18:00 is only an hour after the other shift ends at 17:00: the overlap
	// is gone but the move trades it for a rest violation.
	updated, err := env.update.Execute(context.Background(), UpdateShiftInput{
		ShiftID:   conflicted.ID,
		StartTime: strPtr("18:00"),
		EndTime:   strPtr("22:00"),
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if len(updated.Conflicts) != 1 || updated.Conflicts[0].Type != domain.ConflictMinRest {
		t.Fatalf("Expected a single min_rest conflict, got %v", updated.Conflicts)
	}
	if updated.Conflicts[0].Severity != domain.SeverityMedium {
		t.Errorf("Expected medium severity, got %s", updated.Conflicts[0].Severity)
	}
}

func TestUpdateShiftKeepsResolvedHistory(t *testing.T) {
	env := newTestEnv(t)
	_, _, conflicted := seedOverlappingPair(t, env)

	actor := uint(7)
	if _, err := env.resolve.Execute(context.Background(), ResolveConflictInput{
		ConflictID: conflicted.Conflicts[0].ID,
		ActorID:    actor,
		Notes:      "approved double booking",
	}); err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}

	// An update that still overlaps records a fresh unresolved conflict; the
	// resolved one stays as history and is never reopened.
	updated, err := env.update.Execute(context.Background(), UpdateShiftInput{
		ShiftID:   conflicted.ID,
		StartTime: strPtr("15:00"),
	})
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}

	if len(updated.Conflicts) != 1 || updated.Conflicts[0].Type != domain.ConflictOverlap {
		t.Fatalf("Expected one fresh overlap conflict, got %v", updated.Conflicts)
	}
	if updated.Conflicts[0].Resolved {
		t.Errorf("Fresh conflict must start unresolved")
	}

	if n := countConflicts(t, env.db, conflicted.ID, boolPtr(true)); n != 1 {
		t.Errorf("Expected resolved conflict kept, found %d", n)
	}
	if n := countConflicts(t, env.db, conflicted.ID, boolPtr(false)); n != 1 {
		t.Errorf("Expected exactly one unresolved conflict, found %d", n)
	}
}

func TestUpdateShiftIdempotentDetection(t *testing.T) {
	env := newTestEnv(t)
	_, _, conflicted := seedOverlappingPair(t, env)

	// Re-running the same update must not pile up duplicate conflicts.
	for i := 0; i < 3; i++ {
		if _, err := env.update.Execute(context.Background(), UpdateShiftInput{
			ShiftID: conflicted.ID,
		}); err != nil {
			t.Fatalf("update %d returned error: %v", i, err)
		}
	}

	if n := countConflicts(t, env.db, conflicted.ID, nil); n != 1 {
		t.Errorf("Expected exactly 1 conflict after repeated updates, found %d", n)
	}
}

func TestUpdateShiftTerminalStatesRejected(t *testing.T) {
	env := newTestEnv(t)
	branch := seedBranch(t, env.db, "centro")
	staff := seedStaff(t, env.db, &branch.ID, models.RoleCashier)
	seedWeekAvailability(t, env.db, staff.ID)

	shift, err := env.create.Execute(context.Background(), CreateShiftInput{
		StaffID:   staff.ID,
		BranchID:  branch.ID,
		Date:      "2026-03-02",
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	if _, err := env.cancel.Execute(context.Background(), shift.ID, nil); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}

	_, err = env.update.Execute(context.Background(), UpdateShiftInput{
		ShiftID:   shift.ID,
		StartTime: strPtr("10:00"),
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for cancelled shift, got %v", err)
	}
}

func TestUpdateShiftUnknownShift(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.update.Execute(context.Background(), UpdateShiftInput{ShiftID: 999})
	if !errors.Is(err, domain.ErrShiftNotFound) {
		t.Errorf("Expected ErrShiftNotFound, got %v", err)
	}
}
