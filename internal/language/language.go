// Package language normalizes subtitle language codes and renders
// human-readable names for catalog listings.
package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Normalize lowercases and trims a language code. yt-dlp emits codes like
// "en", "en-US", or "pt-BR"; they pass through with case folded only, so
// catalog keys stay exactly what the lister reported.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// DisplayName returns an English display name for any BCP 47-ish code.
// Unrecognized codes fall back to their uppercased form; empty input reads
// as "Unknown".
func DisplayName(code string) string {
	normalized := Normalize(code)
	if normalized == "" {
		return "Unknown"
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return strings.ToUpper(normalized)
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return strings.ToUpper(normalized)
	}
	return name
}
