package engine

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meysamhadeli/timekeep/engine/contracts"
	"github.com/meysamhadeli/timekeep/engine/models"
)

// CacheFileName is the fixed name of the snapshot file inside the cache
// directory.
const CacheFileName = "timekeep.db"

// CacheStore serializes snapshots to a single gob-encoded binary file.
// Losing the cache only costs one run's worth of restoration opportunity,
// so every load problem degrades to an empty snapshot instead of failing.
type CacheStore struct {
	reporter contracts.IReporter
}

func NewCacheStore(reporter contracts.IReporter) *CacheStore {
	return &CacheStore{reporter: reporter}
}

// Load reads the snapshot at cachePath. A missing file is the expected state
// on first run and returns an empty snapshot silently. An unreadable or
// undecodable file, or one with a different format version, triggers a loud
// disclaimer and also returns an empty snapshot with degraded set; corruption
// is never fatal here, callers decide whether a degraded baseline is usable.
func (cs *CacheStore) Load(cachePath string) (snapshot *models.Snapshot, degraded bool) {
	if _, err := os.Stat(cachePath); os.IsNotExist(err) {
		return models.NewSnapshot(""), false
	}

	data, err := os.ReadFile(cachePath)
	if err != nil {
		cs.reporter.CacheDisclaimer(fmt.Sprintf("Failed to read cache file: %v", err))
		return models.NewSnapshot(""), true
	}

	var loaded models.Snapshot
	decoder := gob.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&loaded); err != nil {
		cs.reporter.CacheDisclaimer(fmt.Sprintf("Failed to decode cache file: %v", err))
		return models.NewSnapshot(""), true
	}

	if loaded.Version != models.CacheVersion {
		cs.reporter.CacheDisclaimer(fmt.Sprintf("Cache file has version %d, want %d, starting fresh", loaded.Version, models.CacheVersion))
		return models.NewSnapshot(""), true
	}

	if loaded.Entries == nil {
		loaded.Entries = make(map[models.RelativePath]models.FileRecord)
	}
	return &loaded, false
}

// Save writes the snapshot to cachePath, creating parent directories as
// needed and fully overwriting any previous content. A write failure is
// returned to the caller: the new baseline did not persist and the run must
// surface that loudly.
func (cs *CacheStore) Save(snapshot *models.Snapshot, cachePath string) error {
	var buffer bytes.Buffer
	encoder := gob.NewEncoder(&buffer)
	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := os.WriteFile(cachePath, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}
