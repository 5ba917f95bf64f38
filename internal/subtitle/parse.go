package subtitle

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"lyrebird/internal/timecode"
)

// ErrEmptyInput reports that an entire track yielded zero usable cues.
// Individual malformed blocks are dropped silently; only a track with
// nothing left is an error.
var ErrEmptyInput = errors.New("no usable cues")

const arrowToken = "-->"

// markupPattern matches inline style decoration: tag-like markup, ASS
// override blocks, and bracketed stage directions such as [Music].
var markupPattern = regexp.MustCompile(`<[^<>]*>|\{[^{}]*\}|\[[^\[\]]*\]`)

type blockState int

const (
	stateAwaitingIndex blockState = iota
	stateAwaitingArrow
	stateCollectingText
	stateDiscarding
)

// blockParser accumulates one cue block at a time. Each block optionally
// opens with a numeric index line, must carry a "start --> end" line, and
// closes with one or more text lines. Any violation moves the block to
// stateDiscarding so the rest of the input is unaffected.
type blockParser struct {
	state blockState
	start timecode.Timecode
	end   timecode.Timecode
	lines []string
}

func (p *blockParser) reset() {
	p.state = stateAwaitingIndex
	p.lines = nil
}

func (p *blockParser) feed(line string) {
	switch p.state {
	case stateAwaitingIndex:
		if isIndexLine(line) {
			p.state = stateAwaitingArrow
			return
		}
		p.acceptArrow(line)
	case stateAwaitingArrow:
		p.acceptArrow(line)
	case stateCollectingText:
		if text := stripMarkup(line); text != "" {
			p.lines = append(p.lines, text)
		}
	case stateDiscarding:
	}
}

func (p *blockParser) acceptArrow(line string) {
	start, end, ok := parseArrowLine(line)
	if !ok {
		p.state = stateDiscarding
		return
	}
	p.start = start
	p.end = end
	p.state = stateCollectingText
}

// cue returns the finished cue for the current block, if the block reached
// the text state and kept at least one line after markup stripping.
func (p *blockParser) cue() (Cue, bool) {
	if p.state != stateCollectingText || len(p.lines) == 0 {
		return Cue{}, false
	}
	return Cue{Start: p.start, End: p.end, Lines: p.lines}, true
}

// Parse scans SRT-style input into cues, in source order. Blocks without a
// parseable arrow line and blocks whose text is empty after stripping are
// skipped. Cues are not re-sorted even when the source is non-monotonic.
func Parse(input string) ([]Cue, error) {
	input = strings.TrimPrefix(input, "\ufeff")

	var cues []Cue
	parser := &blockParser{}

	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if cue, ok := parser.cue(); ok {
				cues = append(cues, cue)
			}
			parser.reset()
			continue
		}
		parser.feed(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan subtitle input: %w", err)
	}
	if cue, ok := parser.cue(); ok {
		cues = append(cues, cue)
	}

	if len(cues) == 0 {
		return nil, ErrEmptyInput
	}
	return cues, nil
}

// parseArrowLine parses "start --> end", tolerating trailing cue settings
// after the end timecode. A start later than its end is malformed.
func parseArrowLine(line string) (timecode.Timecode, timecode.Timecode, bool) {
	left, right, found := strings.Cut(line, arrowToken)
	if !found {
		return timecode.Timecode{}, timecode.Timecode{}, false
	}
	start, err := timecode.ParseClock(left)
	if err != nil {
		return timecode.Timecode{}, timecode.Timecode{}, false
	}
	fields := strings.Fields(right)
	if len(fields) == 0 {
		return timecode.Timecode{}, timecode.Timecode{}, false
	}
	end, err := timecode.ParseClock(fields[0])
	if err != nil {
		return timecode.Timecode{}, timecode.Timecode{}, false
	}
	if start.After(end) {
		return timecode.Timecode{}, timecode.Timecode{}, false
	}
	return start, end, true
}

func stripMarkup(line string) string {
	cleaned := markupPattern.ReplaceAllString(line, "")
	return strings.Join(strings.Fields(cleaned), " ")
}

func isIndexLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
