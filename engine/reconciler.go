package engine

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/meysamhadeli/timekeep/engine/contracts"
	"github.com/meysamhadeli/timekeep/engine/models"
)

// ReconcileResult aggregates the outcome of one reconciliation pass.
type ReconcileResult struct {
	// Fresh counts files whose content and size match the old snapshot.
	Fresh int64
	// Dirty counts new files plus files whose content or size changed.
	Dirty int64
	// Restored counts fresh files whose mtime actually had to be rewritten.
	Restored int64
	// Failed counts fresh files whose mtime could not be rewritten.
	Failed int64
}

// Reconciler compares a fresh snapshot against the previous one and restores
// recorded mtimes for files judged unchanged. It mutates mtimes only; file
// content is never touched and files are never created or deleted.
type Reconciler struct {
	workers     int
	sampleLimit int64
	reporter    contracts.IReporter
}

// NewReconciler creates a reconciler. workers <= 0 falls back to NumCPU;
// sampleLimit caps how many per-file events are reported for each of the
// fresh and dirty streams.
func NewReconciler(workers int, sampleLimit int, reporter contracts.IReporter) *Reconciler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Reconciler{workers: workers, sampleLimit: int64(sampleLimit), reporter: reporter}
}

// classify derives the change state of a scanned record against the old
// snapshot. The size check is defensive: it only fires when two different
// contents collide on the 64-bit fingerprint, and the file is then simply
// treated as changed.
func classify(old *models.Snapshot, record models.FileRecord) contracts.FileState {
	oldRecord, ok := old.Entries[record.Path]
	if !ok {
		return contracts.StateNew
	}
	if record.Hash != oldRecord.Hash {
		return contracts.StateContentChanged
	}
	if record.Size != oldRecord.Size {
		return contracts.StateSizeChanged
	}
	return contracts.StateFresh
}

// Reconcile walks every entry of newSnapshot, classifies it against
// oldSnapshot and resets the mtime of unchanged files whose on-disk mtime
// drifted from the recorded one. Paths are handled independently across a
// worker pool; each touches a disjoint filesystem object, so no ordering is
// needed. A single file that cannot be restored (deleted mid-run, permission
// denied) is reported and skipped, never failing the run.
func (r *Reconciler) Reconcile(oldSnapshot, newSnapshot *models.Snapshot, sourceRoot string) ReconcileResult {
	var result ReconcileResult

	paths := newSnapshot.SortedPaths()
	jobs := make(chan models.RelativePath, r.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				record := newSnapshot.Entries[path]
				state := classify(oldSnapshot, record)

				if state != contracts.StateFresh {
					if atomic.AddInt64(&result.Dirty, 1) <= r.sampleLimit {
						r.reporter.FileEvent(record, state)
					}
					continue
				}

				oldRecord := oldSnapshot.Entries[path]
				if !record.ModTime.Equal(oldRecord.ModTime) {
					absolutePath := path.Absolute(sourceRoot)
					// Zero atime leaves the access time untouched.
					if err := os.Chtimes(absolutePath, time.Time{}, oldRecord.ModTime); err != nil {
						atomic.AddInt64(&result.Failed, 1)
						r.reporter.Warning(fmt.Sprintf("failed to restore mtime for %s: %v", absolutePath, err))
					} else {
						atomic.AddInt64(&result.Restored, 1)
					}
				}
				if atomic.AddInt64(&result.Fresh, 1) <= r.sampleLimit {
					r.reporter.FileEvent(record, state)
				}
			}
		}()
	}

	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	return result
}
