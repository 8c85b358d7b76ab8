package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/platefleet/scheduling/internal/models"
)

// Candidate is the shift being evaluated: a not-yet-persisted new shift or
// an existing shift under re-evaluation (ShiftID > 0 excludes it from the
// "other shifts" reads so it never conflicts with itself).
type Candidate struct {
	ShiftID      uint
	StaffID      uint
	BranchID     uint
	Date         time.Time
	StartMin     int
	EndMin       int
	RequiredRole string
}

// CandidateFromShift builds a Candidate from a persisted shift record.
func CandidateFromShift(s *models.Shift) (Candidate, error) {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return Candidate{}, err
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{
		ShiftID:      s.ID,
		StaffID:      s.StaffID,
		BranchID:     s.BranchID,
		Date:         DateOnly(s.Date),
		StartMin:     start,
		EndMin:       end,
		RequiredRole: s.RequiredRole,
	}, nil
}

// Detector runs every scheduling rule against a candidate shift. Rules are
// independent and never short-circuit: one shift can carry several conflicts
// at once. The detector only classifies; it returns an error solely when a
// store read fails.
type Detector struct {
	reader Reader
	rules  Rules
}

func NewDetector(reader Reader, rules Rules) *Detector {
	return &Detector{reader: reader, rules: rules}
}

// Detect evaluates the rules in a fixed order (overlap, unavailable,
// max_hours, min_rest, branch_mismatch, role_mismatch). Ordering affects
// only the position of conflicts in the result, never their presence.
func (d *Detector) Detect(ctx context.Context, cand Candidate) ([]models.Conflict, error) {
	staff, err := d.reader.GetStaffMember(ctx, cand.StaffID)
	if err != nil {
		return nil, fmt.Errorf("detector: load staff %d: %w", cand.StaffID, err)
	}

	var conflicts []models.Conflict

	overlaps, err := d.checkOverlap(ctx, cand)
	if err != nil {
		return nil, err
	}
	conflicts = append(conflicts, overlaps...)

	unavailable, err := d.checkAvailability(ctx, cand)
	if err != nil {
		return nil, err
	}
	conflicts = append(conflicts, unavailable...)

	maxHours, err := d.checkWeeklyHours(ctx, cand)
	if err != nil {
		return nil, err
	}
	conflicts = append(conflicts, maxHours...)

	rest, err := d.checkRest(ctx, cand)
	if err != nil {
		return nil, err
	}
	conflicts = append(conflicts, rest...)

	conflicts = append(conflicts, d.checkBranch(cand, staff)...)
	conflicts = append(conflicts, d.checkRole(cand, staff)...)

	for i := range conflicts {
		conflicts[i].ShiftID = cand.ShiftID
	}
	return conflicts, nil
}

// Rule 1: every other same-day shift intersecting the candidate produces its
// own overlap conflict.
func (d *Detector) checkOverlap(ctx context.Context, cand Candidate) ([]models.Conflict, error) {
	others, err := d.reader.ListShiftsForDate(ctx, cand.StaffID, cand.Date, cand.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("detector: list shifts for date: %w", err)
	}

	var out []models.Conflict
	for _, other := range others {
		os, err := ParseClock(other.StartTime)
		if err != nil {
			continue
		}
		oe, err := ParseClock(other.EndTime)
		if err != nil {
			continue
		}
		if Overlaps(cand.StartMin, cand.EndMin, os, oe) {
			out = append(out, newConflict(ConflictOverlap, SeverityHigh, OverlapDetails{
				OverlappingShiftID: other.ID,
				OtherStart:         other.StartTime,
				OtherEnd:           other.EndTime,
			}))
		}
	}
	return out, nil
}

// Rule 2: the candidate must fit entirely inside one effective availability
// window for that weekday. No windows means fully unavailable.
func (d *Detector) checkAvailability(ctx context.Context, cand Candidate) ([]models.Conflict, error) {
	windows, err := d.reader.ListWindows(ctx, cand.StaffID)
	if err != nil {
		return nil, fmt.Errorf("detector: list availability windows: %w", err)
	}

	effective := WindowsFor(windows, cand.Date)
	if CoversRange(effective, cand.StartMin, cand.EndMin) {
		return nil, nil
	}

	return []models.Conflict{newConflict(ConflictUnavailable, SeverityHigh, UnavailableDetails{
		ShiftStart:     FormatClock(cand.StartMin),
		ShiftEnd:       FormatClock(cand.EndMin),
		WindowsMatched: len(effective),
	})}, nil
}

// Rule 3: total scheduled minutes in the candidate's ISO week, candidate
// included, must not exceed the weekly cap. The total is recomputed from the
// store on every call; nothing is cached across detections.
func (d *Detector) checkWeeklyHours(ctx context.Context, cand Candidate) ([]models.Conflict, error) {
	weekStart := WeekStart(cand.Date)
	weekEnd := weekStart.AddDate(0, 0, 7)

	shifts, err := d.reader.ListShiftsForRange(ctx, cand.StaffID, weekStart, weekEnd, cand.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("detector: list shifts for week: %w", err)
	}

	total := DurationMinutes(cand.StartMin, cand.EndMin)
	for _, s := range shifts {
		ss, err := ParseClock(s.StartTime)
		if err != nil {
			continue
		}
		se, err := ParseClock(s.EndTime)
		if err != nil {
			continue
		}
		total += DurationMinutes(ss, se)
	}

	if total <= d.rules.WeeklyCapMinutes {
		return nil, nil
	}
	return []models.Conflict{newConflict(ConflictMaxHours, SeverityMedium, MaxHoursDetails{
		TotalMinutes: total,
		CapMinutes:   d.rules.WeeklyCapMinutes,
	})}, nil
}

// Rule 4: the gaps to the immediately preceding and following shifts must be
// at least the configured minimum. A negative gap is an overlap and is
// reported by rule 1 only; a zero gap (back-to-back) is allowed.
func (d *Detector) checkRest(ctx context.Context, cand Candidate) ([]models.Conflict, error) {
	var out []models.Conflict

	prev, err := d.reader.PrecedingShift(ctx, cand.StaffID, cand.Date, cand.StartMin, cand.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("detector: preceding shift: %w", err)
	}
	if prev != nil {
		if prevEnd, err := ParseClock(prev.EndTime); err == nil {
			gap := GapMinutes(At(prev.Date, prevEnd), At(cand.Date, cand.StartMin))
			if gap > 0 && gap < d.rules.MinRestMinutes {
				out = append(out, newConflict(ConflictMinRest, SeverityMedium, MinRestDetails{
					AdjacentShiftID: prev.ID,
					GapMinutes:      gap,
					RequiredMinutes: d.rules.MinRestMinutes,
				}))
			}
		}
	}

	next, err := d.reader.FollowingShift(ctx, cand.StaffID, cand.Date, cand.StartMin, cand.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("detector: following shift: %w", err)
	}
	if next != nil {
		if nextStart, err := ParseClock(next.StartTime); err == nil {
			gap := GapMinutes(At(cand.Date, cand.EndMin), At(next.Date, nextStart))
			if gap > 0 && gap < d.rules.MinRestMinutes {
				out = append(out, newConflict(ConflictMinRest, SeverityMedium, MinRestDetails{
					AdjacentShiftID: next.ID,
					GapMinutes:      gap,
					RequiredMinutes: d.rules.MinRestMinutes,
				}))
			}
		}
	}
	return out, nil
}

// Rule 5: the shift branch must match the staff member's home branch. Staff
// without a fixed home branch are exempt.
func (d *Detector) checkBranch(cand Candidate, staff *models.StaffMember) []models.Conflict {
	if staff.BranchID == nil || *staff.BranchID == cand.BranchID {
		return nil
	}
	return []models.Conflict{newConflict(ConflictBranchMismatch, SeverityHigh, BranchMismatchDetails{
		ShiftBranchID: cand.BranchID,
		HomeBranchID:  *staff.BranchID,
	})}
}

// Rule 6: when the shift carries a required role (role-quota fills), the
// staff member's role must match it.
func (d *Detector) checkRole(cand Candidate, staff *models.StaffMember) []models.Conflict {
	if cand.RequiredRole == "" || cand.RequiredRole == staff.Role {
		return nil
	}
	return []models.Conflict{newConflict(ConflictRoleMismatch, SeverityMedium, RoleMismatchDetails{
		RequiredRole: cand.RequiredRole,
		StaffRole:    staff.Role,
	})}
}
