package ytdlp

import (
	"regexp"
	"strings"

	"lyrebird/internal/tracks"
)

const (
	manualHeader = "Available subtitles for"
	autoHeader   = "Available automatic captions for"
)

// listingRow matches one language row: code, display name, then the
// format list (yt-dlp prints vtt/srt/ttml/srv variants).
var listingRow = regexp.MustCompile(`^([a-zA-Z0-9._-]+)\s+(.+?)\s+(?:vtt|srt|ttml|srv3|srv2|srv1|json3)`)

// parseListing scrapes yt-dlp --list-subs output into ordered entries.
// Section headers partition manual tracks from automatic captions; rows
// before any header are ignored.
func parseListing(output string) []tracks.Entry {
	var entries []tracks.Entry
	kind := tracks.Kind("")

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, manualHeader) {
			kind = tracks.KindManual
			continue
		}
		if strings.Contains(line, autoHeader) {
			kind = tracks.KindAuto
			continue
		}
		if kind == "" {
			continue
		}

		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "language") || strings.HasPrefix(lower, "id") || strings.HasPrefix(line, "---") {
			continue
		}

		match := listingRow.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		entries = append(entries, tracks.Entry{
			Lang: strings.ToLower(match[1]),
			Kind: kind,
			Name: strings.TrimSpace(match[2]),
		})
	}
	return entries
}
