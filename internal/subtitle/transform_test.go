package subtitle

import (
	"testing"

	"lyrebird/internal/timecode"
)

func tc(t *testing.T, text string) timecode.Timecode {
	t.Helper()
	parsed, err := timecode.ParseClock(text)
	if err != nil {
		t.Fatalf("ParseClock(%q): %v", text, err)
	}
	return parsed
}

func tcPtr(t *testing.T, text string) *timecode.Timecode {
	t.Helper()
	parsed := tc(t, text)
	return &parsed
}

func TestNewWindowRejectsInvertedBounds(t *testing.T) {
	from := timecode.FromMillis(10000)
	to := timecode.FromMillis(5000)
	if _, err := NewWindow(&from, &to); err == nil {
		t.Fatal("expected error for from > to")
	}
	if _, err := NewWindow(&to, &from); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}
	if _, err := NewWindow(nil, nil); err != nil {
		t.Fatalf("unbounded window rejected: %v", err)
	}
}

func TestTransformRebasesAndFilters(t *testing.T) {
	cues := []Cue{
		{Start: tc(t, "00:00:10,000"), End: tc(t, "00:00:12,000"), Lines: []string{"Hello"}},
		{Start: tc(t, "00:00:20,000"), End: tc(t, "00:00:22,000"), Lines: []string{"World"}},
	}
	window, err := NewWindow(tcPtr(t, "00:00:00,000"), tcPtr(t, "00:00:15,000"))
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}

	out := Transform(cues, tc(t, "00:00:10,000"), window)
	if len(out) != 1 {
		t.Fatalf("expected 1 surviving cue, got %d", len(out))
	}
	if out[0].Start.Millis() != 0 {
		t.Errorf("re-based start = %dms, want 0", out[0].Start.Millis())
	}
	if out[0].End.Millis() != 2000 {
		t.Errorf("re-based end = %dms, want 2000", out[0].End.Millis())
	}
	if out[0].Text() != "Hello" {
		t.Errorf("surviving cue = %q", out[0].Text())
	}
}

func TestTransformWindowBoundaries(t *testing.T) {
	from := timecode.FromMillis(10000)
	to := timecode.FromMillis(20000)
	window, err := NewWindow(&from, &to)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}

	tests := []struct {
		name    string
		startMS int64
		kept    bool
	}{
		{"exactly at from is kept", 10000, true},
		{"one millisecond before from is dropped", 9999, false},
		{"inside window is kept", 15000, true},
		{"exactly at to is kept", 20000, true},
		{"one millisecond after to is dropped", 20001, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cues := []Cue{{
				Start: timecode.FromMillis(tt.startMS),
				End:   timecode.FromMillis(tt.startMS + 1000),
				Lines: []string{"x"},
			}}
			out := Transform(cues, timecode.Timecode{}, window)
			if kept := len(out) == 1; kept != tt.kept {
				t.Errorf("start %dms kept = %v, want %v", tt.startMS, kept, tt.kept)
			}
		})
	}
}

func TestTransformFiltersOnOriginalTimeline(t *testing.T) {
	// The window applies to pre-offset starts. A cue at 10s with a 10s
	// offset still matches a 10s..15s window even though it re-bases to 0.
	from := timecode.FromMillis(10000)
	to := timecode.FromMillis(15000)
	window, err := NewWindow(&from, &to)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	cues := []Cue{{
		Start: timecode.FromMillis(10000),
		End:   timecode.FromMillis(11000),
		Lines: []string{"kept"},
	}}
	out := Transform(cues, timecode.FromMillis(10000), window)
	if len(out) != 1 {
		t.Fatalf("expected cue kept via original timeline, got %d cues", len(out))
	}
	if out[0].Start.Millis() != 0 {
		t.Errorf("re-based start = %dms, want 0", out[0].Start.Millis())
	}
}

func TestTransformClampsEarlyStarts(t *testing.T) {
	// A cue starting before the offset is pulled to zero, not discarded.
	cues := []Cue{{
		Start: timecode.FromMillis(4000),
		End:   timecode.FromMillis(6000),
		Lines: []string{"early"},
	}}
	out := Transform(cues, timecode.FromMillis(5000), Window{})
	if len(out) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(out))
	}
	if out[0].Start.Millis() != 0 {
		t.Errorf("clamped start = %dms, want 0", out[0].Start.Millis())
	}
	if out[0].End.Millis() != 1000 {
		t.Errorf("end = %dms, want 1000", out[0].End.Millis())
	}
}

func TestTransformUnboundedWindowPassesEverything(t *testing.T) {
	cues := []Cue{
		{Start: timecode.FromMillis(0), End: timecode.FromMillis(1000), Lines: []string{"a"}},
		{Start: timecode.FromMillis(3600000), End: timecode.FromMillis(3601000), Lines: []string{"b"}},
	}
	out := Transform(cues, timecode.Timecode{}, Window{})
	if len(out) != 2 {
		t.Fatalf("expected all cues kept, got %d", len(out))
	}
}

func TestTransformPreservesOrder(t *testing.T) {
	cues := []Cue{
		{Start: timecode.FromMillis(20000), End: timecode.FromMillis(21000), Lines: []string{"later"}},
		{Start: timecode.FromMillis(5000), End: timecode.FromMillis(6000), Lines: []string{"earlier"}},
	}
	out := Transform(cues, timecode.Timecode{}, Window{})
	if len(out) != 2 || out[0].Text() != "later" || out[1].Text() != "earlier" {
		t.Fatalf("order not preserved: %+v", out)
	}
}
