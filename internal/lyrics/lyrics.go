// Package lyrics serializes cues into the LRC lyric format consumed by
// music players and ID3 lyric tags.
package lyrics

import (
	"strings"

	"lyrebird/internal/subtitle"
)

// Encode renders one "[MM:SS.xx]text" line per cue, in input order.
// Multi-line cues flatten to a single lyric line; LRC carries one
// timestamp per line. An empty cue list encodes to an empty string --
// whether empty lyrics are worth embedding is the caller's decision.
func Encode(cues []subtitle.Cue) string {
	if len(cues) == 0 {
		return ""
	}
	var b strings.Builder
	for i, cue := range cues {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(cue.Start.Lyric())
		b.WriteString(cue.Text())
	}
	return b.String()
}

// EncodeWithByline prepends an LRC "[by:...]" attribution header to the
// encoded cues. The header is emitted even when no cues survive so the
// output file still identifies its producer.
func EncodeWithByline(cues []subtitle.Cue, byline string) string {
	header := "[by:" + strings.TrimSpace(byline) + "]"
	body := Encode(cues)
	if body == "" {
		return header
	}
	return header + "\n" + body
}
