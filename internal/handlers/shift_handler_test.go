package handlers

import "testing"

func TestToBreakIntervals(t *testing.T) {
	breaks, err := toBreakIntervals([]BreakRequest{
		{Start: "12:00", End: "12:30"},
		{Start: "16:00", End: "16:15"},
	})
	if err != nil {
		t.Fatalf("toBreakIntervals returned error: %v", err)
	}

	if len(breaks) != 2 {
		t.Fatalf("Expected 2 intervals, got %d", len(breaks))
	}
	if breaks[0].Start != "12:00" || breaks[0].End != "12:30" {
		t.Errorf("Wall-clock strings not carried through: %+v", breaks[0])
	}
}

func TestToBreakIntervalsInvalidClock(t *testing.T) {
	if _, err := toBreakIntervals([]BreakRequest{{Start: "noon", End: "12:30"}}); err == nil {
		t.Errorf("Expected error for invalid start time")
	}
	if _, err := toBreakIntervals([]BreakRequest{{Start: "12:00", End: "24:30"}}); err == nil {
		t.Errorf("Expected error for invalid end time")
	}
}
