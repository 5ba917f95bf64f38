package tracks

import (
	"fmt"
	"strings"
)

// Selection is the outcome of picking a track. Fallback is set when the
// requested language only had an automatic caption track, so callers can
// tell the user a manual track was not available.
type Selection struct {
	Track    Track
	Fallback bool
}

// NotFoundError reports that no track exists for the requested language.
// It carries the full catalog partitioned by provenance so the caller can
// present every available option. It is an expected outcome, not a fault.
type NotFoundError struct {
	Requested string
	Manual    []string
	Auto      []string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no subtitle track for language %q", e.Requested)
	if len(e.Manual) == 0 && len(e.Auto) == 0 {
		b.WriteString(" (no tracks listed at all)")
		return b.String()
	}
	if len(e.Manual) > 0 {
		fmt.Fprintf(&b, "; manual: %s", strings.Join(e.Manual, ", "))
	}
	if len(e.Auto) > 0 {
		fmt.Fprintf(&b, "; automatic: %s", strings.Join(e.Auto, ", "))
	}
	return b.String()
}

// Select picks the track for the requested language. Manual tracks win;
// an automatic track is returned flagged as a fallback. When neither
// exists the returned error is a *NotFoundError.
func Select(catalog Catalog, lang string) (Selection, error) {
	manual, auto := catalog.Lookup(lang)
	if manual != nil {
		return Selection{Track: *manual}, nil
	}
	if auto != nil {
		return Selection{Track: *auto, Fallback: true}, nil
	}
	return Selection{}, &NotFoundError{
		Requested: strings.ToLower(strings.TrimSpace(lang)),
		Manual:    catalog.Languages(KindManual),
		Auto:      catalog.Languages(KindAuto),
	}
}
