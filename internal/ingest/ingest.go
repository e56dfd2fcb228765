package ingest

import (
	"time"
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Run is the bookkeeping row of one sync pass.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   *time.Time
	Status       string
	StartCursor  string
	LastCursor   string // cursor of the page being processed
	PagesFetched int
	BooksSynced  int
	NewBooks     int
	ImagesStored int
	ImagesFailed int
	Error        string
}
