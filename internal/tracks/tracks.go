package tracks

import (
	"sort"
	"strings"
)

// Kind records a track's provenance.
type Kind string

const (
	// KindManual marks a track authored by the content owner.
	KindManual Kind = "manual"
	// KindAuto marks an automatically generated caption track.
	KindAuto Kind = "auto"
)

// Track is one immutable subtitle stream: a lowercase language code, its
// provenance, and the raw cue text once it has been materialized.
type Track struct {
	Lang    string
	Kind    Kind
	Name    string
	Content string
}

// Entry is one row of an external track listing.
type Entry struct {
	Lang    string
	Kind    Kind
	Name    string
	Content string
}

type languageTracks struct {
	manual *Track
	auto   *Track
}

// Catalog is the set of tracks available for one media item, partitioned
// by language and provenance. Built once, read-only afterwards.
type Catalog struct {
	byLang map[string]languageTracks
}

// NewCatalog builds a catalog from an ordered listing. Language codes are
// lowercased. A duplicate (language, provenance) pair keeps the entry the
// lister returned last, so a redundant listing degrades instead of failing.
func NewCatalog(entries []Entry) Catalog {
	byLang := make(map[string]languageTracks, len(entries))
	for _, entry := range entries {
		lang := strings.ToLower(strings.TrimSpace(entry.Lang))
		if lang == "" {
			continue
		}
		track := &Track{Lang: lang, Kind: entry.Kind, Name: entry.Name, Content: entry.Content}
		lt := byLang[lang]
		switch entry.Kind {
		case KindManual:
			lt.manual = track
		case KindAuto:
			lt.auto = track
		default:
			continue
		}
		byLang[lang] = lt
	}
	return Catalog{byLang: byLang}
}

// Lookup returns the manual and automatic tracks for a language; either
// may be nil.
func (c Catalog) Lookup(lang string) (manual, auto *Track) {
	lt := c.byLang[strings.ToLower(strings.TrimSpace(lang))]
	return lt.manual, lt.auto
}

// Languages returns the sorted language codes that have a track of the
// given provenance.
func (c Catalog) Languages(kind Kind) []string {
	var langs []string
	for lang, lt := range c.byLang {
		switch kind {
		case KindManual:
			if lt.manual != nil {
				langs = append(langs, lang)
			}
		case KindAuto:
			if lt.auto != nil {
				langs = append(langs, lang)
			}
		}
	}
	sort.Strings(langs)
	return langs
}

// Empty reports whether the catalog holds no tracks at all.
func (c Catalog) Empty() bool {
	return len(c.byLang) == 0
}
