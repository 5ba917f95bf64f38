package ytdlp

import (
	"testing"

	"lyrebird/internal/tracks"
)

const sampleListing = `[youtube] Extracting URL: https://www.youtube.com/watch?v=abc123
[info] Available automatic captions for abc123:
Language Name                 Formats
af       Afrikaans            vtt, ttml, srv3, srv2, srv1, json3
en       English              vtt, ttml, srv3, srv2, srv1, json3
ja       Japanese             vtt, ttml, srv3, srv2, srv1, json3
[info] Available subtitles for abc123:
Language Name                 Formats
en       English              vtt, ttml, srv3
ko       Korean               vtt, ttml, srv3
`

func TestParseListing(t *testing.T) {
	entries := parseListing(sampleListing)
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d: %+v", len(entries), entries)
	}

	catalog := tracks.NewCatalog(entries)
	manual, auto := catalog.Lookup("en")
	if manual == nil {
		t.Fatal("expected manual en track")
	}
	if manual.Name != "English" {
		t.Errorf("manual en name = %q", manual.Name)
	}
	if auto == nil {
		t.Fatal("expected auto en track")
	}

	if manual, _ := catalog.Lookup("af"); manual != nil {
		t.Error("af should only have an automatic track")
	}
	if _, auto := catalog.Lookup("ko"); auto != nil {
		t.Error("ko should only have a manual track")
	}
}

func TestParseListingIgnoresPreamble(t *testing.T) {
	output := `[youtube] abc: Downloading webpage
en       English              vtt
`
	if entries := parseListing(output); len(entries) != 0 {
		t.Errorf("rows before any section header must be ignored, got %+v", entries)
	}
}

func TestParseListingEmpty(t *testing.T) {
	for _, output := range []string{"", "no captions here", "[info] There are no subtitles for the requested languages"} {
		if entries := parseListing(output); len(entries) != 0 {
			t.Errorf("parseListing(%q) = %+v, want none", output, entries)
		}
	}
}

func TestParseListingDottedCodes(t *testing.T) {
	output := `[info] Available automatic captions for abc123:
Language Name                 Formats
en-orig  English (Original)   vtt, ttml
pt-BR    Portuguese (Brazil)  vtt, ttml
`
	entries := parseListing(output)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Lang != "en-orig" {
		t.Errorf("first code = %q", entries[0].Lang)
	}
	if entries[1].Lang != "pt-br" {
		t.Errorf("second code = %q (codes are lowercased)", entries[1].Lang)
	}
	if entries[1].Name != "Portuguese (Brazil)" {
		t.Errorf("second name = %q", entries[1].Name)
	}
}
