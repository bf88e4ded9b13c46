package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgallion1/docoutline/internal/outline"
)

// Exporter writes the alternate outline for one document.
type Exporter interface {
	Export(docPath string, overwrite bool) (string, error)
}

// Worker processes a single batch export job.
type Worker struct {
	exporter Exporter
	log      *slog.Logger

	maxConcurrentExport int
}

func NewWorker(exporter Exporter, log *slog.Logger, maxExport int) *Worker {
	if maxExport <= 0 {
		maxExport = 1
	}
	return &Worker{
		exporter:            exporter,
		log:                 log,
		maxConcurrentExport: maxExport,
	}
}

// Process exports every document in the job with bounded concurrency.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)
	job.SetStatus(StatusExporting, "exporting")

	sem := make(chan struct{}, w.maxConcurrentExport)
	var wg sync.WaitGroup

loop:
	for _, path := range job.Paths {
		select {
		case <-ctx.Done():
			break loop
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()

			out, err := w.exporter.Export(path, job.Overwrite)
			switch {
			case err == nil:
				log.Debug("exported", "path", out)
				job.RecordExported()
			case errors.Is(err, outline.ErrExists):
				log.Debug("skipped existing outline", "path", path)
				job.RecordSkipped()
			default:
				log.Warn("export failed", "path", path, "error", err)
				job.RecordFailed(fmt.Sprintf("%s: %s", path, err))
			}
		}(path)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		job.AddError(fmt.Sprintf("cancelled: %s", err))
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	snap := job.Snapshot()
	failed := len(snap.Progress.Errors)
	switch {
	case failed == 0:
		job.SetStatus(StatusCompleted, "done")
	case failed == snap.Progress.TotalDocs:
		job.SetStatus(StatusFailed, "exporting")
	default:
		job.SetStatus(StatusPartial, "done")
	}
	log.Info("export job finished",
		"exported", snap.Progress.Exported,
		"skipped", snap.Progress.Skipped,
		"failed", failed,
	)
}
