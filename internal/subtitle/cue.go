package subtitle

import (
	"strings"

	"lyrebird/internal/timecode"
)

// Cue is one timed subtitle entry. Start never exceeds End and Lines holds
// at least one non-empty line; the parser discards anything else.
type Cue struct {
	Start timecode.Timecode
	End   timecode.Timecode
	Lines []string
}

// Text flattens the cue's lines into one logical line separated by single
// spaces. Lyric formats carry one timestamp per line, so multi-line cues
// collapse here.
func (c Cue) Text() string {
	return strings.Join(c.Lines, " ")
}
