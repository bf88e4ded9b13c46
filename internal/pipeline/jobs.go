package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the state of a batch export job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusExporting JobStatus = "exporting"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusPartial   JobStatus = "partial"
)

// Job tracks the export of alternate outlines for a batch of documents.
type Job struct {
	mu sync.Mutex

	ID        string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Paths     []string  `json:"paths"`
	Overwrite bool      `json:"overwrite"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	errors []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalDocs     int      `json:"total_docs"`
	DocsProcessed int      `json:"docs_processed"`
	Exported      int      `json:"exported"`
	Skipped       int      `json:"skipped"`
	Errors        []string `json:"errors"`
}

// NewJob creates a queued job for paths.
func NewJob(paths []string, overwrite bool) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Status:    StatusQueued,
		Phase:     "queued",
		Paths:     paths,
		Overwrite: overwrite,
		Progress:  Progress{TotalDocs: len(paths)},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.updatedAt()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

func (j *Job) updatedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error for a document.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// RecordExported counts a document whose outline was written.
func (j *Job) RecordExported() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.DocsProcessed++
	j.Progress.Exported++
	j.UpdatedAt = time.Now()
}

// RecordSkipped counts a document left alone, e.g. because its .bkm file
// already exists.
func (j *Job) RecordSkipped() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.DocsProcessed++
	j.Progress.Skipped++
	j.UpdatedAt = time.Now()
}

// RecordFailed counts a document that could not be exported.
func (j *Job) RecordFailed(err string) {
	j.mu.Lock()
	j.Progress.DocsProcessed++
	j.mu.Unlock()
	j.AddError(err)
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.Progress.Errors))
	copy(errs, j.Progress.Errors)
	return JobSnapshot{
		ID:     j.ID,
		Status: j.Status,
		Phase:  j.Phase,
		Progress: Progress{
			TotalDocs:     j.Progress.TotalDocs,
			DocsProcessed: j.Progress.DocsProcessed,
			Exported:      j.Progress.Exported,
			Skipped:       j.Progress.Skipped,
			Errors:        errs,
		},
	}
}
