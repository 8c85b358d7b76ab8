package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/platefleet/scheduling/internal/models"
)

// ===============================
// In-memory Reader
// ===============================

type fakeReader struct {
	staff   map[uint]*models.StaffMember
	windows map[uint][]models.AvailabilityWindow
	shifts  []models.Shift
}

func (f *fakeReader) GetStaffMember(_ context.Context, id uint) (*models.StaffMember, error) {
	if s, ok := f.staff[id]; ok {
		return s, nil
	}
	return nil, ErrStaffNotFound
}

func (f *fakeReader) ListActiveStaffByRole(_ context.Context, role string) ([]models.StaffMember, error) {
	var out []models.StaffMember
	for _, s := range f.staff {
		if s.Active && s.Role == role {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeReader) ListWindows(_ context.Context, staffID uint) ([]models.AvailabilityWindow, error) {
	return f.windows[staffID], nil
}

func (f *fakeReader) GetShift(_ context.Context, id uint) (*models.Shift, error) {
	for i := range f.shifts {
		if f.shifts[i].ID == id {
			return &f.shifts[i], nil
		}
	}
	return nil, ErrShiftNotFound
}

func (f *fakeReader) relevant(s models.Shift, staffID, excludeID uint) bool {
	return s.StaffID == staffID && s.ID != excludeID && s.Status != models.ShiftCancelled
}

func (f *fakeReader) ListShiftsForDate(_ context.Context, staffID uint, date time.Time, excludeID uint) ([]models.Shift, error) {
	day := DateOnly(date)
	var out []models.Shift
	for _, s := range f.shifts {
		if f.relevant(s, staffID, excludeID) && DateOnly(s.Date).Equal(day) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeReader) ListShiftsForRange(_ context.Context, staffID uint, from, to time.Time, excludeID uint) ([]models.Shift, error) {
	var out []models.Shift
	for _, s := range f.shifts {
		d := DateOnly(s.Date)
		if f.relevant(s, staffID, excludeID) && !d.Before(from) && d.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeReader) PrecedingShift(_ context.Context, staffID uint, date time.Time, startMin int, excludeID uint) (*models.Shift, error) {
	anchor := At(date, startMin)
	var best *models.Shift
	var bestAt time.Time
	for i := range f.shifts {
		s := f.shifts[i]
		if !f.relevant(s, staffID, excludeID) {
			continue
		}
		sm, err := ParseClock(s.StartTime)
		if err != nil {
			continue
		}
		at := At(s.Date, sm)
		if at.Before(anchor) && (best == nil || at.After(bestAt)) {
			best = &f.shifts[i]
			bestAt = at
		}
	}
	return best, nil
}

func (f *fakeReader) FollowingShift(_ context.Context, staffID uint, date time.Time, startMin int, excludeID uint) (*models.Shift, error) {
	anchor := At(date, startMin)
	var best *models.Shift
	var bestAt time.Time
	for i := range f.shifts {
		s := f.shifts[i]
		if !f.relevant(s, staffID, excludeID) {
			continue
		}
		sm, err := ParseClock(s.StartTime)
		if err != nil {
			continue
		}
		at := At(s.Date, sm)
		if at.After(anchor) && (best == nil || at.Before(bestAt)) {
			best = &f.shifts[i]
			bestAt = at
		}
	}
	return best, nil
}

func (f *fakeReader) ListShiftsForBranch(_ context.Context, branchID uint, from, to time.Time) ([]models.Shift, error) {
	var out []models.Shift
	for _, s := range f.shifts {
		d := DateOnly(s.Date)
		if s.BranchID == branchID && !d.Before(from) && !d.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeReader) GetBranch(_ context.Context, id uint) (*models.Branch, error) {
	return &models.Branch{ID: id, Timezone: "UTC"}, nil
}

func (f *fakeReader) GetConflict(context.Context, uint) (*models.Conflict, error) {
	return nil, ErrConflictNotFound
}

func (f *fakeReader) ListConflicts(context.Context, uint, bool) ([]models.Conflict, error) {
	return nil, nil
}

// ===============================
// Fixtures
// ===============================

var mondayDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func fullWeekWindows() []models.AvailabilityWindow {
	windows := make([]models.AvailabilityWindow, 0, 7)
	for wd := 1; wd <= 7; wd++ {
		windows = append(windows, models.AvailabilityWindow{
			Weekday:     wd,
			StartTime:   "06:00",
			EndTime:     "23:00",
			IsAvailable: true,
		})
	}
	return windows
}

func newFakeReader() *fakeReader {
	home := uint(1)
	return &fakeReader{
		staff: map[uint]*models.StaffMember{
			1: {ID: 1, BranchID: &home, Role: models.RoleCashier, Active: true},
		},
		windows: map[uint][]models.AvailabilityWindow{
			1: fullWeekWindows(),
		},
	}
}

func detect(t *testing.T, reader *fakeReader, cand Candidate) []models.Conflict {
	t.Helper()
	conflicts, err := NewDetector(reader, DefaultRules()).Detect(context.Background(), cand)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	return conflicts
}

func conflictTypes(conflicts []models.Conflict) []string {
	types := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		types = append(types, c.Type)
	}
	return types
}

// ===============================
// Tests
// ===============================

func TestDetectCleanShift(t *testing.T) {
	reader := newFakeReader()

	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate,
		StartMin: 9 * 60,
		EndMin:   17 * 60,
	})

	if len(conflicts) != 0 {
		t.Errorf("Expected no conflicts, got %v", conflictTypes(conflicts))
	}
}

func TestDetectOverlap(t *testing.T) {
	reader := newFakeReader()
	reader.shifts = []models.Shift{
		{ID: 10, StaffID: 1, BranchID: 1, Date: mondayDate, StartTime: "09:00", EndTime: "17:00", Status: models.ShiftScheduled},
	}

	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate,
		StartMin: 16 * 60,
		EndMin:   20 * 60,
	})

	if len(conflicts) != 1 {
		t.Fatalf("Expected 1 conflict, got %v", conflictTypes(conflicts))
	}
	if conflicts[0].Type != ConflictOverlap {
		t.Errorf("Expected overlap, got %s", conflicts[0].Type)
	}
	if conflicts[0].Severity != SeverityHigh {
		t.Errorf("Expected high severity, got %s", conflicts[0].Severity)
	}
}

func TestDetectBackToBackShiftsAllowed(t *testing.T) {
	reader := newFakeReader()
	reader.shifts = []models.Shift{
		{ID: 10, StaffID: 1, BranchID: 1, Date: mondayDate, StartTime: "09:00", EndTime: "12:00", Status: models.ShiftScheduled},
	}

	// Touching endpoints: no overlap, and a zero gap is not a rest violation.
	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate,
		StartMin: 12 * 60,
		EndMin:   16 * 60,
	})

	if len(conflicts) != 0 {
		t.Errorf("Expected no conflicts for back-to-back shifts, got %v", conflictTypes(conflicts))
	}
}

func TestDetectCancelledShiftsIgnored(t *testing.T) {
	reader := newFakeReader()
	reader.shifts = []models.Shift{
		{ID: 10, StaffID: 1, BranchID: 1, Date: mondayDate, StartTime: "09:00", EndTime: "17:00", Status: models.ShiftCancelled},
	}

	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate,
		StartMin: 9 * 60,
		EndMin:   17 * 60,
	})

	if len(conflicts) != 0 {
		t.Errorf("Expected cancelled shifts to be ignored, got %v", conflictTypes(conflicts))
	}
}

func TestDetectUnavailableNoWindows(t *testing.T) {
	reader := newFakeReader()
	reader.windows[1] = nil

	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate,
		StartMin: 9 * 60,
		EndMin:   17 * 60,
	})

	if len(conflicts) != 1 || conflicts[0].Type != ConflictUnavailable {
		t.Fatalf("Expected a single unavailable conflict, got %v", conflictTypes(conflicts))
	}
	if conflicts[0].Severity != SeverityHigh {
		t.Errorf("Expected high severity, got %s", conflicts[0].Severity)
	}
}

func TestDetectUnavailableAcrossAdjacentWindows(t *testing.T) {
	reader := newFakeReader()
	reader.windows[1] = []models.AvailabilityWindow{
		{Weekday: 1, StartTime: "08:00", EndTime: "12:00", IsAvailable: true},
		{Weekday: 1, StartTime: "12:00", EndTime: "18:00", IsAvailable: true},
	}

	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate,
		StartMin: 10 * 60,
		EndMin:   14 * 60,
	})

	if len(conflicts) != 1 || conflicts[0].Type != ConflictUnavailable {
		t.Errorf("Expected unavailable across adjacent windows, got %v", conflictTypes(conflicts))
	}
}

func TestDetectWeeklyCap(t *testing.T) {
	reader := newFakeReader()
	// Monday through Friday, 8 hours each: 40 hours already scheduled.
	for i := 0; i < 5; i++ {
		reader.shifts = append(reader.shifts, models.Shift{
			ID:        uint(10 + i),
			StaffID:   1,
			BranchID:  1,
			Date:      mondayDate.AddDate(0, 0, i),
			StartTime: "09:00",
			EndTime:   "17:00",
			Status:    models.ShiftScheduled,
		})
	}

	// A 5 hour Saturday shift pushes the week to 45 hours.
	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate.AddDate(0, 0, 5),
		StartMin: 9 * 60,
		EndMin:   14 * 60,
	})

	if len(conflicts) != 1 || conflicts[0].Type != ConflictMaxHours {
		t.Fatalf("Expected a single max_hours conflict, got %v", conflictTypes(conflicts))
	}
	if conflicts[0].Severity != SeverityMedium {
		t.Errorf("Expected medium severity, got %s", conflicts[0].Severity)
	}
}

func TestDetectWeeklyCapNextWeekUnaffected(t *testing.T) {
	reader := newFakeReader()
	for i := 0; i < 5; i++ {
		reader.shifts = append(reader.shifts, models.Shift{
			ID:        uint(10 + i),
			StaffID:   1,
			BranchID:  1,
			Date:      mondayDate.AddDate(0, 0, i),
			StartTime: "09:00",
			EndTime:   "17:00",
			Status:    models.ShiftScheduled,
		})
	}

	// The following Monday starts a fresh week.
	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate.AddDate(0, 0, 7),
		StartMin: 9 * 60,
		EndMin:   17 * 60,
	})

	for _, c := range conflicts {
		if c.Type == ConflictMaxHours {
			t.Errorf("Weekly cap leaked into the next week")
		}
	}
}

func TestDetectMinRestCrossDay(t *testing.T) {
	reader := newFakeReader()
	reader.shifts = []models.Shift{
		{ID: 10, StaffID: 1, BranchID: 1, Date: mondayDate, StartTime: "14:00", EndTime: "22:00", Status: models.ShiftScheduled},
	}

	// 22:00 Monday to 06:00 Tuesday is 8 hours of rest, under the 10 hour
	// minimum.
	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate.AddDate(0, 0, 1),
		StartMin: 6 * 60,
		EndMin:   12 * 60,
	})

	if len(conflicts) != 1 || conflicts[0].Type != ConflictMinRest {
		t.Fatalf("Expected a single min_rest conflict, got %v", conflictTypes(conflicts))
	}
	if conflicts[0].Severity != SeverityMedium {
		t.Errorf("Expected medium severity, got %s", conflicts[0].Severity)
	}
}

func TestDetectOverlapSuppressesMinRest(t *testing.T) {
	reader := newFakeReader()
	reader.shifts = []models.Shift{
		{ID: 10, StaffID: 1, BranchID: 1, Date: mondayDate, StartTime: "09:00", EndTime: "17:00", Status: models.ShiftScheduled},
	}

	// The candidate starts before the other shift ends: the negative gap is
	// an overlap, never an additional rest violation.
	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate,
		StartMin: 16 * 60,
		EndMin:   20 * 60,
	})

	for _, c := range conflicts {
		if c.Type == ConflictMinRest {
			t.Errorf("Negative gap reported as min_rest")
		}
	}
}

func TestDetectBranchMismatch(t *testing.T) {
	reader := newFakeReader()

	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 2,
		Date:     mondayDate,
		StartMin: 9 * 60,
		EndMin:   17 * 60,
	})

	if len(conflicts) != 1 || conflicts[0].Type != ConflictBranchMismatch {
		t.Fatalf("Expected a single branch_mismatch conflict, got %v", conflictTypes(conflicts))
	}
	if conflicts[0].Severity != SeverityHigh {
		t.Errorf("Expected high severity, got %s", conflicts[0].Severity)
	}
}

func TestDetectBranchAgnosticStaffExempt(t *testing.T) {
	reader := newFakeReader()
	reader.staff[1].BranchID = nil

	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 2,
		Date:     mondayDate,
		StartMin: 9 * 60,
		EndMin:   17 * 60,
	})

	if len(conflicts) != 0 {
		t.Errorf("Expected no conflicts for branch-agnostic staff, got %v", conflictTypes(conflicts))
	}
}

func TestDetectRoleMismatch(t *testing.T) {
	reader := newFakeReader()

	conflicts := detect(t, reader, Candidate{
		StaffID:      1,
		BranchID:     1,
		Date:         mondayDate,
		StartMin:     9 * 60,
		EndMin:       17 * 60,
		RequiredRole: models.RoleKitchenStaff,
	})

	if len(conflicts) != 1 || conflicts[0].Type != ConflictRoleMismatch {
		t.Fatalf("Expected a single role_mismatch conflict, got %v", conflictTypes(conflicts))
	}
	if conflicts[0].Severity != SeverityMedium {
		t.Errorf("Expected medium severity, got %s", conflicts[0].Severity)
	}
}

func TestDetectNoRequiredRoleSkipsRoleRule(t *testing.T) {
	reader := newFakeReader()

	conflicts := detect(t, reader, Candidate{
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate,
		StartMin: 9 * 60,
		EndMin:   17 * 60,
	})

	for _, c := range conflicts {
		if c.Type == ConflictRoleMismatch {
			t.Errorf("Role rule fired without a required role")
		}
	}
}

func TestDetectMultipleConflicts(t *testing.T) {
	reader := newFakeReader()
	reader.windows[1] = nil
	reader.shifts = []models.Shift{
		{ID: 10, StaffID: 1, BranchID: 1, Date: mondayDate, StartTime: "09:00", EndTime: "17:00", Status: models.ShiftScheduled},
	}

	conflicts := detect(t, reader, Candidate{
		ShiftID:  42,
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate,
		StartMin: 10 * 60,
		EndMin:   14 * 60,
	})

	types := conflictTypes(conflicts)
	if len(types) != 2 || types[0] != ConflictOverlap || types[1] != ConflictUnavailable {
		t.Fatalf("Expected [overlap unavailable], got %v", types)
	}

	for _, c := range conflicts {
		if c.ShiftID != 42 {
			t.Errorf("Conflict not stamped with shift id: %d", c.ShiftID)
		}
	}
}

func TestDetectExcludesOwnShift(t *testing.T) {
	reader := newFakeReader()
	reader.shifts = []models.Shift{
		{ID: 42, StaffID: 1, BranchID: 1, Date: mondayDate, StartTime: "09:00", EndTime: "17:00", Status: models.ShiftScheduled},
	}

	// Re-evaluating shift 42 against itself must not self-conflict.
	conflicts := detect(t, reader, Candidate{
		ShiftID:  42,
		StaffID:  1,
		BranchID: 1,
		Date:     mondayDate,
		StartMin: 9 * 60,
		EndMin:   17 * 60,
	})

	if len(conflicts) != 0 {
		t.Errorf("Expected no self-conflicts, got %v", conflictTypes(conflicts))
	}
}
