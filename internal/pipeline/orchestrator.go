package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docoutline/internal/config"
)

var (
	// ErrQueueFull is returned by Submit when no queue slot is free.
	ErrQueueFull = errors.New("job queue is full")
	// ErrStopped is returned by Submit after Stop.
	ErrStopped = errors.New("export pipeline stopped")
)

// Orchestrator runs batch export jobs on a pool of workers.
type Orchestrator struct {
	jobs     *JobStore
	exporter Exporter
	log      *slog.Logger
	cfg      config.Config

	mu      sync.Mutex
	queue   chan *Job
	stopped bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, exporter Exporter, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		exporter: exporter,
		log:      log,
		cfg:      cfg,
	}
}

// Start launches cfg.WorkerCount workers and the job store janitor.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := range o.cfg.WorkerCount {
		o.wg.Add(1)
		go o.runWorker(workerCtx, o.log.With("worker", i))
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(cleanupInterval(o.cfg.JobTTL))
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

func (o *Orchestrator) runWorker(ctx context.Context, log *slog.Logger) {
	defer o.wg.Done()
	w := NewWorker(o.exporter, log, o.cfg.MaxConcurrentExport)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-o.queue:
			if !ok {
				return
			}
			w.Process(ctx, job)
		}
	}
}

// cleanupInterval sweeps expired jobs a few times per TTL, at most every
// five minutes.
func cleanupInterval(ttl time.Duration) time.Duration {
	d := ttl / 4
	switch {
	case d <= 0:
		return 5 * time.Minute
	case d < time.Second:
		return time.Second
	case d > 5*time.Minute:
		return 5 * time.Minute
	}
	return d
}

// Stop cancels running jobs and waits for the workers to exit. Jobs still
// queued are left in the queued state.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	close(o.queue)
	o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Submit registers job and queues it for processing. A job that cannot be
// queued is marked failed but stays visible through GetJob.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		job.SetStatus(StatusFailed, "stopped")
		return ErrStopped
	}
	select {
	case o.queue <- job:
		o.log.Info("job queued", "job_id", job.ID, "docs", len(job.Paths))
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("%w (%d)", ErrQueueFull, o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID, or nil once it is unknown or expired.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns the number of jobs waiting for a worker.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
