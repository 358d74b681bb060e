package exporter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-index-exporter/internal/config"
	"go-index-exporter/internal/es"
	"go-index-exporter/internal/model"
	"go-index-exporter/internal/store"
	"go-index-exporter/pkg/utils"
)

// Store is what the coordinator needs from the document store: a catalog
// listing and a full scan per index. *es.Client satisfies it.
type Store interface {
	ListIndices(pattern string) ([]string, error)
	ScanIndex(ctx context.Context, index string) ([]model.Document, error)
}

// ------------------- Export Runner -------------------

// Run exports every index of the store to one JSON artifact each.
//
// The catalog is listed once; the names are a snapshot, indices created or
// deleted afterwards are not reconciled. One task per index is fed to a pool
// of cfg.Workers goroutines; each task scans its index page by page, writes
// the artifact, and reports an outcome. Failures stay scoped to their index.
// Run blocks until every task finished and only returns an error when no work
// could be scheduled at all (catalog listing or output directory failed).
func Run(ctx context.Context, runID string, cfg *config.Config, client Store) ([]model.IndexExportResult, error) {
	start := time.Now()
	fmt.Printf("🚀 Starting export run %s against %s\n", runID, cfg.Addr())
	store.UpdateRunStatus(runID, "running")

	// Catalog first: if the store is unreachable nothing is scheduled and no
	// directories are created.
	indices, err := client.ListIndices(es.MatchAllPattern)
	if err != nil {
		store.UpdateRunStatus(runID, "failed")
		store.SaveRunError(runID, err)
		return nil, err
	}
	fmt.Printf("📇 Catalog: %d indices to export\n", len(indices))

	outDir := filepath.Join(cfg.Directory, utils.SanitizeHost(cfg.Host))
	if err := ensureDir(outDir); err != nil {
		store.UpdateRunStatus(runID, "failed")
		store.SaveRunError(runID, err)
		return nil, err
	}

	tasks := make(chan string)
	results := make(chan model.IndexExportResult)

	var wg sync.WaitGroup
	wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go func(workerID int) {
			defer wg.Done()
			done := 0
			for index := range tasks {
				results <- exportIndex(ctx, client, outDir, index)
				done++
			}
			fmt.Printf("🔄 Export Worker %d completed: %d indices processed\n", workerID, done)
		}(i)
	}

	go func() {
		for _, index := range indices {
			tasks <- index
		}
		close(tasks)

		// Close the results channel only AFTER all workers finish
		wg.Wait()
		close(results)
	}()

	outcomes := make([]model.IndexExportResult, 0, len(indices))
	docTotal := 0
	failed := 0
	for res := range results {
		if res.Status == model.StatusExported {
			fmt.Printf("✅ Index: %s, documents: %d\n", res.Index, res.DocCount)
			docTotal += res.DocCount
		} else {
			failed++
			fmt.Printf("❌ Index: %s failed (%s): %s\n", res.Index, res.Kind, res.Error)
		}
		store.SaveIndexResult(runID, res)
		outcomes = append(outcomes, res)
	}

	status := "completed"
	if failed > 0 {
		status = "partial"
	}
	store.UpdateRunStatus(runID, status)

	fmt.Printf("🏁 Export Summary: %d/%d indices exported, %d documents in %v\n",
		len(outcomes)-failed, len(outcomes), docTotal, time.Since(start))
	return outcomes, nil
}

// exportIndex runs one task: scan the index, write the artifact. Any failure
// is converted into the outcome record here, at the task boundary.
func exportIndex(ctx context.Context, client Store, outDir, index string) model.IndexExportResult {
	docs, err := client.ScanIndex(ctx, index)
	if err != nil {
		return failure(index, err)
	}

	path, err := WriteArtifact(docs, outDir, index, time.Now().Unix())
	if err != nil {
		return failure(index, err)
	}

	return model.IndexExportResult{
		Index:       index,
		Status:      model.StatusExported,
		DocCount:    len(docs),
		Artifact:    path,
		CompletedAt: time.Now().UTC(),
	}
}

func failure(index string, err error) model.IndexExportResult {
	return model.IndexExportResult{
		Index:       index,
		Status:      model.StatusFailed,
		Kind:        failureKind(err),
		Error:       err.Error(),
		CompletedAt: time.Now().UTC(),
	}
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, es.ErrCursorExpired):
		return model.KindCursorExpired
	case errors.Is(err, ErrWriteFailure):
		return model.KindWriteFailure
	default:
		return model.KindScanFailure
	}
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// Summarize folds per-index outcomes into one run summary.
func Summarize(runID string, outcomes []model.IndexExportResult, start, finish time.Time) model.RunSummary {
	summary := model.RunSummary{
		RunID:      runID,
		Indices:    len(outcomes),
		StartedAt:  start.UTC(),
		FinishedAt: finish.UTC(),
	}
	for _, res := range outcomes {
		if res.Status == model.StatusExported {
			summary.Exported++
			summary.Documents += res.DocCount
		} else {
			summary.Failed++
		}
	}
	return summary
}
