package interfaces

import (
	"github.com/ternarybob/sitesmith/internal/models"
)

// JobStore is the process-wide store for generation jobs and their logs.
//
// The interface exists so job retention and the storage backend are an
// explicit, pluggable policy; the shipped implementation is in-memory with
// unbounded job retention and a bounded per-job log ring.
type JobStore interface {
	// CreateJob registers a new job and returns it.
	CreateJob(job *models.GenerationJob) *models.GenerationJob

	// GetJob returns a copy of the job, or false when unknown.
	GetJob(id string) (*models.GenerationJob, bool)

	// UpdateJob replaces the stored job state. Only the orchestrator
	// goroutine owning the job may call this.
	UpdateJob(job *models.GenerationJob)

	// ListJobs returns copies of all jobs, newest first.
	ListJobs() []*models.GenerationJob

	// AppendLog appends one log entry to the job's bounded ring.
	AppendLog(jobID string, entry models.LogEntry)

	// GetLogs returns the job's accumulated log entries, oldest first.
	GetLogs(jobID string) []models.LogEntry
}
