// Package jobs holds the in-memory job store, the per-job logger, and the
// orchestrator that runs the generation pipeline.
package jobs

import (
	"sort"
	"sync"

	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/models"
)

// Store is the in-memory JobStore implementation. Jobs live for the process
// lifetime; each job's logs are a bounded ring that evicts oldest entries at
// the cap.
type Store struct {
	mu     sync.RWMutex
	jobs   map[string]*models.GenerationJob
	logs   map[string][]models.LogEntry
	logCap int
}

// NewStore creates a store with the given per-job log cap
func NewStore(logCap int) *Store {
	if logCap <= 0 {
		logCap = 1000
	}
	return &Store{
		jobs:   make(map[string]*models.GenerationJob),
		logs:   make(map[string][]models.LogEntry),
		logCap: logCap,
	}
}

var _ interfaces.JobStore = (*Store)(nil)

// CreateJob registers a new job
func (s *Store) CreateJob(job *models.GenerationJob) *models.GenerationJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *job
	s.jobs[job.ID] = &stored
	return job
}

// GetJob returns a copy of the job, or false when unknown
func (s *Store) GetJob(id string) (*models.GenerationJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, false
	}
	out := *job
	return &out, true
}

// UpdateJob replaces the stored job state
func (s *Store) UpdateJob(job *models.GenerationJob) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *job
	s.jobs[job.ID] = &stored
}

// ListJobs returns copies of all jobs, newest first
func (s *Store) ListJobs() []*models.GenerationJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.GenerationJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		j := *job
		out = append(out, &j)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// AppendLog appends one entry to the job's log ring, evicting the oldest
// entry at the cap
func (s *Store) AppendLog(jobID string, entry models.LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ring := s.logs[jobID]
	ring = append(ring, entry)
	if len(ring) > s.logCap {
		ring = ring[len(ring)-s.logCap:]
	}
	s.logs[jobID] = ring
}

// GetLogs returns the job's log entries, oldest first
func (s *Store) GetLogs(jobID string) []models.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ring := s.logs[jobID]
	out := make([]models.LogEntry, len(ring))
	copy(out, ring)
	return out
}
