// -----------------------------------------------------------------------
// Generation Job - per-request state for the website generation pipeline
// -----------------------------------------------------------------------

package models

import (
	"time"
)

// JobStatus represents the lifecycle state of a generation job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// GenerationJob represents one end-to-end request to turn an intent into a
// generated (and optionally deployed) website.
//
// Jobs are created when a generation request is accepted and are mutated only
// by the orchestrator goroutine that owns them, always through the job store.
// Jobs are never deleted; retention is bounded by process lifetime.
type GenerationJob struct {
	ID          string     `json:"id"`
	Status      JobStatus  `json:"status"`
	Message     string     `json:"message"`
	OutputDir   string     `json:"output_dir,omitempty"`
	ProjectURL  string     `json:"project_url,omitempty"`
	DeployedURL string     `json:"deployed_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// IsTerminal returns true if the job is in a final state.
// Terminal states are final; a job is never retried or reopened.
func (j *GenerationJob) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// MarkCompleted transitions the job to completed with a user-visible message.
func (j *GenerationJob) MarkCompleted(message string) {
	j.Status = JobStatusCompleted
	j.Message = message
	now := time.Now()
	j.CompletedAt = &now
}

// MarkFailed transitions the job to failed with the failure reason.
func (j *GenerationJob) MarkFailed(reason string) {
	j.Status = JobStatusFailed
	j.Message = reason
	now := time.Now()
	j.CompletedAt = &now
}
