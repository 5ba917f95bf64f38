package subtitle

import (
	"errors"

	"lyrebird/internal/timecode"
)

// Window is an optional sub-range of the original media timeline. A nil
// bound leaves that side unbounded. Bounds are inclusive.
type Window struct {
	From *timecode.Timecode
	To   *timecode.Timecode
}

// NewWindow validates a window. Both bounds may be nil.
func NewWindow(from, to *timecode.Timecode) (Window, error) {
	if from != nil && to != nil && from.After(*to) {
		return Window{}, errors.New("window start is after window end")
	}
	return Window{From: from, To: to}, nil
}

// Contains reports whether t falls inside the window. Unbounded sides
// always pass.
func (w Window) Contains(t timecode.Timecode) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && t.After(*w.To) {
		return false
	}
	return true
}

// Bounded reports whether either side of the window is set.
func (w Window) Bounded() bool {
	return w.From != nil || w.To != nil
}

// Transform re-bases cues against the start of the extracted segment and
// drops cues outside the window.
//
// Filtering looks at the original, pre-offset start time: the window names
// the slice of the source media the caller wants, independent of how the
// surviving cues are re-timed. Re-basing subtracts offset and clamps at
// zero, so a cue beginning just before the cut lands at time zero instead
// of vanishing. Source order is preserved.
func Transform(cues []Cue, offset timecode.Timecode, window Window) []Cue {
	delta := -offset.Millis()
	out := make([]Cue, 0, len(cues))
	for _, cue := range cues {
		if !window.Contains(cue.Start) {
			continue
		}
		out = append(out, Cue{
			Start: cue.Start.Offset(delta),
			End:   cue.End.Offset(delta),
			Lines: cue.Lines,
		})
	}
	return out
}
