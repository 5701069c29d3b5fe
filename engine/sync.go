package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/meysamhadeli/timekeep/engine/contracts"
	"github.com/meysamhadeli/timekeep/engine/models"
)

// Engine wires the scanner, cache store and reconciler together under one
// reporter. It is the entry point the CLI talks to.
type Engine struct {
	scanner    *Scanner
	cacheStore *CacheStore
	reconciler *Reconciler
	reporter   contracts.IReporter
}

// NewEngine creates a fully wired engine. workers and sampleLimit follow the
// defaults of the individual components when <= 0.
func NewEngine(workers int, sampleLimit int, reporter contracts.IReporter) *Engine {
	return &Engine{
		scanner:    NewScanner(workers, reporter),
		cacheStore: NewCacheStore(reporter),
		reconciler: NewReconciler(workers, sampleLimit, reporter),
		reporter:   reporter,
	}
}

// Sync runs the full two-stage flow:
//
//	Stage 1: load the old snapshot and scan the live tree, in parallel.
//	Stage 2: restore mtimes and persist the new snapshot, in parallel.
//
// Persisting never waits on restoration: it writes the snapshot exactly as
// scanned, and both stage-2 tasks only read the in-memory snapshots. The
// cache file on disk is only replaced at the end, so a killed run is
// equivalent to not having run at all.
func (e *Engine) Sync(sourceDir string, cacheDir string) (ReconcileResult, error) {
	start := time.Now()
	cachePath := filepath.Join(cacheDir, CacheFileName)

	if _, err := os.Stat(sourceDir); err != nil {
		return ReconcileResult{}, fmt.Errorf("source directory is not accessible: %w", err)
	}

	// Stage 1: cache load and tree scan are independent and both I/O bound.
	var oldSnapshot, newSnapshot *models.Snapshot
	var scanErr error
	var stage1 sync.WaitGroup
	stage1.Add(2)
	go func() {
		defer stage1.Done()
		e.reporter.PhaseStarted("load cache")
		loadStart := time.Now()
		// A degraded cache already raised its disclaimer; syncing from an
		// empty baseline is still the right move.
		oldSnapshot, _ = e.cacheStore.Load(cachePath)
		e.reporter.PhaseCompleted("load cache", time.Since(loadStart))
	}()
	go func() {
		defer stage1.Done()
		e.reporter.PhaseStarted("scan source")
		scanStart := time.Now()
		newSnapshot, scanErr = e.scanner.Scan(sourceDir)
		e.reporter.PhaseCompleted("scan source", time.Since(scanStart))
	}()
	stage1.Wait()

	if scanErr != nil {
		return ReconcileResult{}, scanErr
	}

	// Stage 2: both tasks depend only on stage 1 and not on each other.
	var result ReconcileResult
	var saveErr error
	var stage2 sync.WaitGroup
	stage2.Add(2)
	go func() {
		defer stage2.Done()
		e.reporter.PhaseStarted("restore timestamps")
		restoreStart := time.Now()
		result = e.reconciler.Reconcile(oldSnapshot, newSnapshot, newSnapshot.AbsolutePath)
		e.reporter.PhaseCompleted("restore timestamps", time.Since(restoreStart))
	}()
	go func() {
		defer stage2.Done()
		e.reporter.PhaseStarted("save cache")
		saveStart := time.Now()
		saveErr = e.cacheStore.Save(newSnapshot, cachePath)
		e.reporter.PhaseCompleted("save cache", time.Since(saveStart))
	}()
	stage2.Wait()

	if saveErr != nil {
		return result, saveErr
	}

	e.reporter.Summary(len(newSnapshot.Entries), int(result.Restored), int(result.Dirty), time.Since(start))
	return result, nil
}

// CacheReport is the read-only view produced by CacheInfo.
type CacheReport struct {
	Snapshot  *models.Snapshot
	CacheSize uint64
	Root      *DirectoryInfo
}

// CacheInfo loads the snapshot from cacheDir without touching the source
// tree and returns it together with a per-directory breakdown of file counts
// and byte totals. Unlike Sync, a cache that cannot be decoded is an error
// here: there is no real crawl to report on, and rendering the empty
// fallback snapshot would present fabricated provenance as fact.
func (e *Engine) CacheInfo(cacheDir string) (*CacheReport, error) {
	cachePath := filepath.Join(cacheDir, CacheFileName)

	info, err := os.Stat(cachePath)
	if err != nil {
		return nil, fmt.Errorf("cache file not found: %w", err)
	}

	snapshot, degraded := e.cacheStore.Load(cachePath)
	if degraded {
		return nil, fmt.Errorf("cache file %s is unusable", cachePath)
	}

	return &CacheReport{
		Snapshot:  snapshot,
		CacheSize: uint64(info.Size()),
		Root:      BuildDirectoryInfo(snapshot),
	}, nil
}
