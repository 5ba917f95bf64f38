package library

import "time"

// Status represents the lifecycle of a processing run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run records one fetch or merge through the pipeline.
type Run struct {
	ID           int64
	RunID        string
	VideoID      string
	Title        string
	Lang         string
	Provenance   string
	Fallback     bool
	Status       Status
	OutputPath   string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Succeeded reports whether the run finished with a usable output.
func (r *Run) Succeeded() bool {
	return r != nil && r.Status == StatusCompleted && r.OutputPath != ""
}
