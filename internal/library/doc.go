// Package library persists the history of processing runs in SQLite.
// Each fetch or merge records a run keyed by video ID and language, which
// lets repeated requests for the same video reuse the finished output
// instead of downloading and converting again.
package library
