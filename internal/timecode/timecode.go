package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedTimecode reports a clock-form timestamp that does not match
// H+:MM:SS,mmm (or the dot-fraction variant) or carries out-of-range fields.
var ErrMalformedTimecode = errors.New("malformed timecode")

// ErrInvalidTimeFormat reports a user-supplied MM:SS or HH:MM:SS bound that
// does not parse. Bad trim bounds are always surfaced; silently defaulting
// them would extract the wrong segment.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// Timecode is an immutable offset from media start. The zero value is the
// start of the media. Values are never negative.
type Timecode struct {
	ms int64
}

// FromMillis builds a Timecode from a millisecond count, clamping negative
// input to zero.
func FromMillis(ms int64) Timecode {
	if ms < 0 {
		ms = 0
	}
	return Timecode{ms: ms}
}

// Millis returns the total elapsed milliseconds.
func (t Timecode) Millis() int64 {
	return t.ms
}

// Seconds returns the offset as fractional seconds.
func (t Timecode) Seconds() float64 {
	return float64(t.ms) / 1000
}

// Before reports whether t is strictly earlier than u.
func (t Timecode) Before(u Timecode) bool {
	return t.ms < u.ms
}

// After reports whether t is strictly later than u.
func (t Timecode) After(u Timecode) bool {
	return t.ms > u.ms
}

// Offset shifts t by a signed millisecond delta. Results that would land
// before media start clamp to zero: cues beginning before a trim point are
// pulled to time zero here, and dropping them is the transformer's call.
func (t Timecode) Offset(deltaMS int64) Timecode {
	return FromMillis(t.ms + deltaMS)
}

// ParseClock parses a cue-boundary timestamp of the form H+:MM:SS,mmm.
// A dot may stand in for the comma; some exporters emit either. The
// fraction must be exactly three digits and minutes/seconds must fall in
// [0,59].
func ParseClock(text string) (Timecode, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Timecode{}, fmt.Errorf("%w: empty input", ErrMalformedTimecode)
	}

	sep := strings.IndexAny(trimmed, ",.")
	if sep < 0 {
		return Timecode{}, fmt.Errorf("%w: %q has no fraction separator", ErrMalformedTimecode, trimmed)
	}
	clock, fraction := trimmed[:sep], trimmed[sep+1:]
	if len(fraction) != 3 || !allDigits(fraction) {
		return Timecode{}, fmt.Errorf("%w: %q fraction must be three digits", ErrMalformedTimecode, trimmed)
	}

	fields := strings.Split(clock, ":")
	if len(fields) != 3 {
		return Timecode{}, fmt.Errorf("%w: %q", ErrMalformedTimecode, trimmed)
	}
	hours, errH := parseField(fields[0])
	minutes, errM := parseField(fields[1])
	seconds, errS := parseField(fields[2])
	if errH != nil || errM != nil || errS != nil {
		return Timecode{}, fmt.Errorf("%w: %q", ErrMalformedTimecode, trimmed)
	}
	if minutes > 59 || seconds > 59 {
		return Timecode{}, fmt.Errorf("%w: %q field out of range", ErrMalformedTimecode, trimmed)
	}
	millis, _ := strconv.ParseInt(fraction, 10, 64)

	return Timecode{ms: hours*3600000 + minutes*60000 + seconds*1000 + millis}, nil
}

// ParseHuman parses a caller-supplied trim bound: MM:SS or HH:MM:SS, no
// fractional part. The leading field is unbounded so inputs like "75:30"
// address points past the hour.
func ParseHuman(text string) (Timecode, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Timecode{}, fmt.Errorf("%w: empty input", ErrInvalidTimeFormat)
	}

	fields := strings.Split(trimmed, ":")
	if len(fields) != 2 && len(fields) != 3 {
		return Timecode{}, fmt.Errorf("%w: %q (want MM:SS or HH:MM:SS)", ErrInvalidTimeFormat, trimmed)
	}

	parsed := make([]int64, 0, len(fields))
	for _, field := range fields {
		value, err := parseField(field)
		if err != nil {
			return Timecode{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, trimmed)
		}
		parsed = append(parsed, value)
	}

	var hours, minutes, seconds int64
	if len(parsed) == 3 {
		hours, minutes, seconds = parsed[0], parsed[1], parsed[2]
		if minutes > 59 {
			return Timecode{}, fmt.Errorf("%w: %q minutes out of range", ErrInvalidTimeFormat, trimmed)
		}
	} else {
		minutes, seconds = parsed[0], parsed[1]
	}
	if seconds > 59 {
		return Timecode{}, fmt.Errorf("%w: %q seconds out of range", ErrInvalidTimeFormat, trimmed)
	}

	return Timecode{ms: hours*3600000 + minutes*60000 + seconds*1000}, nil
}

// Clock renders the SRT clock form HH:MM:SS,mmm.
func (t Timecode) Clock() string {
	hours := t.ms / 3600000
	minutes := t.ms % 3600000 / 60000
	seconds := t.ms % 60000 / 1000
	millis := t.ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// Lyric renders the LRC form [MM:SS.xx]. Minutes are unbounded; the
// fraction truncates to centiseconds, so the conversion is lossy past that
// precision.
func (t Timecode) Lyric() string {
	minutes := t.ms / 60000
	seconds := t.ms % 60000 / 1000
	centis := t.ms % 1000 / 10
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, seconds, centis)
}

func (t Timecode) String() string {
	return t.Clock()
}

func parseField(field string) (int64, error) {
	if field == "" || !allDigits(field) {
		return 0, fmt.Errorf("non-numeric field %q", field)
	}
	return strconv.ParseInt(field, 10, 64)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
