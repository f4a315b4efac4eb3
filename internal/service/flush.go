// Package service contains stuff related to the background maintenance
// of the application
package service

import (
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/model"
	"bitwise74/file-api/internal/registry"
	"bitwise74/file-api/storage"
	"context"
	"errors"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultFlushConcurrency = 8

// Outcome is the result of reclaiming one orphan
type Outcome struct {
	ID  string `json:"id"`
	Err string `json:"error,omitempty"`
}

// Report aggregates one flush run. Per-file failures never fail the run
// itself; re-running only re-attempts files still orphaned.
type Report struct {
	RunID     string    `json:"run_id"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Results   []Outcome `json:"results"`
}

// Flush reclaims blobs whose owning references have been removed. An
// orphaned record is structurally valid but unreferenced, so deleting it
// is always safe.
type Flush struct {
	Registry    registry.Registry
	Backend     storage.Backend
	Concurrency int
}

// Run lists all orphans and deletes each one's blob and registry row,
// bounded-parallel. The blob goes first: if the registry delete then
// fails the record stays listed as an orphan and the next run retries it.
func (j *Flush) Run(ctx context.Context) (*Report, error) {
	runID, err := gonanoid.New(8)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err)
	}

	orphans, err := j.Registry.ListOrphans(ctx)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Storage flush started",
		zap.String("run_id", runID),
		zap.Int("orphans", len(orphans)),
	)

	concurrency := j.Concurrency
	if concurrency <= 0 {
		concurrency = defaultFlushConcurrency
	}

	var mu sync.Mutex
	report := &Report{RunID: runID, Results: make([]Outcome, 0, len(orphans))}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, orphan := range orphans {
		g.Go(func() error {
			outcome := Outcome{ID: orphan.ID}

			if err := j.reclaim(ctx, &orphan); err != nil {
				outcome.Err = err.Error()

				zap.L().Warn("Failed to reclaim orphan",
					zap.String("run_id", runID),
					zap.String("file_id", orphan.ID),
					zap.Error(err),
				)
			}

			mu.Lock()
			report.Results = append(report.Results, outcome)
			if outcome.Err == "" {
				report.Succeeded++
			} else {
				report.Failed++
			}
			mu.Unlock()

			// Failures are isolated per file, never abort the batch
			return nil
		})
	}

	g.Wait()

	zap.L().Info("Storage flush finished",
		zap.String("run_id", runID),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)

	return report, nil
}

func (j *Flush) reclaim(ctx context.Context, f *model.File) error {
	// The listing may be stale by the time the worker gets here, so
	// re-check that nothing picked up ownership in the meantime
	links, err := j.Registry.CountOwnershipLinks(ctx, f.ID)
	if err != nil {
		return err
	}

	if links > 0 {
		return nil
	}

	err = j.Backend.DeleteFile(ctx, f)
	if err != nil && !errors.Is(err, apperr.New(apperr.FileNotFound)) {
		// A blob that's already gone still has its record reclaimed
		return err
	}

	return j.Registry.Delete(ctx, f.ID)
}
