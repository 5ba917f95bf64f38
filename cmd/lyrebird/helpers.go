package main

import (
	"errors"
	"fmt"
	"strings"

	"lyrebird/internal/subtitle"
	"lyrebird/internal/timecode"
)

// parseWindow turns the --start/--end flag values into a cue window.
// Trimming needs both ends; a single bound is almost always a typo.
func parseWindow(start, end string) (subtitle.Window, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	if (start == "") != (end == "") {
		return subtitle.Window{}, errors.New("--start and --end must be given together")
	}
	if start == "" {
		return subtitle.Window{}, nil
	}

	from, err := timecode.ParseHuman(start)
	if err != nil {
		return subtitle.Window{}, fmt.Errorf("parse --start: %w", err)
	}
	to, err := timecode.ParseHuman(end)
	if err != nil {
		return subtitle.Window{}, fmt.Errorf("parse --end: %w", err)
	}

	window, err := subtitle.NewWindow(&from, &to)
	if err != nil {
		return subtitle.Window{}, fmt.Errorf("invalid range: %w", err)
	}
	return window, nil
}
