package schedule

import "testing"

func TestParseBreaksEmpty(t *testing.T) {
	breaks, err := ParseBreaks("")
	if err != nil {
		t.Fatalf("ParseBreaks returned error: %v", err)
	}
	if breaks != nil {
		t.Errorf("Expected nil breaks for empty string, got %v", breaks)
	}
}

func TestEncodeParseBreaks(t *testing.T) {
	in := []BreakInterval{{Start: "12:00", End: "12:30"}}

	raw, err := EncodeBreaks(in)
	if err != nil {
		t.Fatalf("EncodeBreaks returned error: %v", err)
	}

	out, err := ParseBreaks(raw)
	if err != nil {
		t.Fatalf("ParseBreaks returned error: %v", err)
	}
	if len(out) != 1 || out[0].Start != "12:00" || out[0].End != "12:30" {
		t.Errorf("Round-tripped breaks mismatch: %v", out)
	}
}

func TestBreakMinutes(t *testing.T) {
	breaks := []BreakInterval{
		{Start: "12:00", End: "12:30"},
		{Start: "16:00", End: "16:15"},
		{Start: "18:00", End: "17:00"}, // backwards, counts as zero
	}
	if got := BreakMinutes(breaks); got != 45 {
		t.Errorf("Expected 45 break minutes, got %d", got)
	}
}

func TestTotalHours(t *testing.T) {
	// 09:00-17:00 with a 30 minute break is 7.5 hours.
	got := TotalHours(9*60, 17*60, []BreakInterval{{Start: "12:00", End: "12:30"}})
	if got != 7.5 {
		t.Errorf("Expected 7.5 hours, got %f", got)
	}

	// No breaks.
	if got := TotalHours(9*60, 17*60, nil); got != 8.0 {
		t.Errorf("Expected 8.0 hours, got %f", got)
	}

	// Breaks longer than the shift floor at zero.
	if got := TotalHours(9*60, 10*60, []BreakInterval{{Start: "08:00", End: "12:00"}}); got != 0 {
		t.Errorf("Expected 0 hours, got %f", got)
	}
}
