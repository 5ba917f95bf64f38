// Package tracks models the subtitle tracks available for a media item and
// picks the best one for a requested language.
//
// Selection is a ranked policy, not a scatter of existence checks: a manual
// track beats an automatic caption for the same language, and an automatic
// track is returned flagged as a fallback so callers can warn. A missing
// language is an expected outcome carried by NotFoundError together with
// the full catalog, so the caller can show the user what is available.
package tracks
