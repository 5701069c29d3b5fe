package engine

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/meysamhadeli/timekeep/engine/contracts"
	"github.com/meysamhadeli/timekeep/engine/models"
)

// Scanner walks a source tree and builds a Snapshot of every regular file
// reachable from the root. Hashing is spread across a fixed pool of workers;
// the only shared mutable state is the entries map, guarded by a mutex held
// for the duration of a single insert.
type Scanner struct {
	workers  int
	reporter contracts.IReporter
}

// NewScanner creates a scanner. workers <= 0 falls back to NumCPU.
func NewScanner(workers int, reporter contracts.IReporter) *Scanner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scanner{workers: workers, reporter: reporter}
}

// Scan produces a snapshot of rootDir. Each record's mtime is the live mtime
// observed during this scan, so it becomes the baseline for the next run.
//
// A file that disappears or turns unreadable mid-scan loses its entry and is
// reported as a warning; the scan itself keeps going. A path that is not
// valid UTF-8 is fatal instead: path identity is what reconciliation is keyed
// on, and a mangled key would silently break it.
func (s *Scanner) Scan(rootDir string) (*models.Snapshot, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory %s: %w", rootDir, err)
	}

	snapshot := models.NewSnapshot(absRoot)

	type fileJob struct {
		absPath string
		relPath models.RelativePath
	}

	jobs := make(chan fileJob, s.workers*2)

	var mutex sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				hash, size, modTime, err := HashFile(job.absPath)
				if err != nil {
					s.reporter.Warning(fmt.Sprintf("skipping %s: %v", job.relPath, err))
					continue
				}
				record := models.FileRecord{
					Path:    job.relPath,
					Hash:    hash,
					Size:    size,
					ModTime: modTime,
				}
				mutex.Lock()
				snapshot.Entries[job.relPath] = record
				mutex.Unlock()
			}
		}()
	}

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			// Directories, symlinks and devices are not tracked.
			return nil
		}
		if !utf8.ValidString(path) {
			return fmt.Errorf("non-UTF-8 filepath encountered: %q", path)
		}
		relativePath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}
		jobs <- fileJob{
			absPath: path,
			relPath: models.RelativePath(strings.ReplaceAll(relativePath, "\\", "/")),
		}
		return nil
	})

	close(jobs)
	wg.Wait()

	if walkErr != nil {
		return nil, fmt.Errorf("failed to scan source directory %s: %w", absRoot, walkErr)
	}

	return snapshot, nil
}
