package engine

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meysamhadeli/timekeep/engine/contracts"
	"github.com/meysamhadeli/timekeep/engine/models"
)

func snapshotOf(records ...models.FileRecord) *models.Snapshot {
	snapshot := models.NewSnapshot("/tmp/source")
	for _, record := range records {
		snapshot.Entries[record.Path] = record
	}
	return snapshot
}

// Classification covers all four branches of the diff
func TestClassify(t *testing.T) {
	old := snapshotOf(
		models.FileRecord{Path: "same.txt", Hash: 1, Size: 10},
		models.FileRecord{Path: "edited.txt", Hash: 2, Size: 10},
		models.FileRecord{Path: "collided.txt", Hash: 3, Size: 10},
	)

	assert.Equal(t, contracts.StateFresh,
		classify(old, models.FileRecord{Path: "same.txt", Hash: 1, Size: 10}))
	assert.Equal(t, contracts.StateNew,
		classify(old, models.FileRecord{Path: "added.txt", Hash: 9, Size: 1}))
	assert.Equal(t, contracts.StateContentChanged,
		classify(old, models.FileRecord{Path: "edited.txt", Hash: 7, Size: 10}))
	assert.Equal(t, contracts.StateSizeChanged,
		classify(old, models.FileRecord{Path: "collided.txt", Hash: 3, Size: 11}))
}

// An unchanged file with drifted mtime gets its recorded mtime back, exactly
func TestReconciler_RestoresModTime(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "reconciler_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	file := filepath.Join(tempDir, "a.txt")
	require.NoError(t, ioutil.WriteFile(file, []byte("hello"), 0644))

	oldTime := time.Now().Add(-2 * time.Hour).Truncate(time.Second)
	hash, size, modTime, err := HashFile(file)
	require.NoError(t, err)

	old := snapshotOf(models.FileRecord{Path: "a.txt", Hash: hash, Size: size, ModTime: oldTime})
	fresh := snapshotOf(models.FileRecord{Path: "a.txt", Hash: hash, Size: size, ModTime: modTime})

	reporter := newRecordingReporter()
	result := NewReconciler(4, 5, reporter).Reconcile(old, fresh, tempDir)

	assert.Equal(t, int64(1), result.Fresh)
	assert.Equal(t, int64(1), result.Restored)
	assert.Equal(t, int64(0), result.Dirty)
	assert.Equal(t, int64(0), result.Failed)

	restored, err := os.Stat(file)
	require.NoError(t, err)
	assert.True(t, restored.ModTime().Equal(oldTime))
}

// A file already at its recorded mtime is counted fresh without a rewrite
func TestReconciler_NoRewriteWhenModTimeMatches(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "reconciler_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	file := filepath.Join(tempDir, "a.txt")
	require.NoError(t, ioutil.WriteFile(file, []byte("hello"), 0644))
	hash, size, modTime, err := HashFile(file)
	require.NoError(t, err)

	record := models.FileRecord{Path: "a.txt", Hash: hash, Size: size, ModTime: modTime}
	result := NewReconciler(2, 5, newRecordingReporter()).Reconcile(snapshotOf(record), snapshotOf(record), tempDir)

	assert.Equal(t, int64(1), result.Fresh)
	assert.Equal(t, int64(0), result.Restored)
}

// New and changed files keep their fresh mtimes
func TestReconciler_LeavesDirtyFilesAlone(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "reconciler_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	file := filepath.Join(tempDir, "changed.txt")
	require.NoError(t, ioutil.WriteFile(file, []byte("new content"), 0644))
	hash, size, modTime, err := HashFile(file)
	require.NoError(t, err)

	oldTime := time.Now().Add(-3 * time.Hour).Truncate(time.Second)
	old := snapshotOf(models.FileRecord{Path: "changed.txt", Hash: hash + 1, Size: size, ModTime: oldTime})
	fresh := snapshotOf(
		models.FileRecord{Path: "changed.txt", Hash: hash, Size: size, ModTime: modTime},
		models.FileRecord{Path: "brand-new.txt", Hash: 5, Size: 3, ModTime: modTime},
	)

	result := NewReconciler(2, 5, newRecordingReporter()).Reconcile(old, fresh, tempDir)

	assert.Equal(t, int64(0), result.Fresh)
	assert.Equal(t, int64(2), result.Dirty)
	assert.Equal(t, int64(0), result.Restored)

	after, err := os.Stat(file)
	require.NoError(t, err)
	assert.True(t, after.ModTime().Equal(modTime))
}

// A file that vanished between scan and restore is a soft per-file failure
func TestReconciler_SoftFailureOnMissingFile(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "reconciler_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	oldTime := time.Now().Add(-1 * time.Hour).Truncate(time.Second)
	newTime := time.Now().Truncate(time.Second)
	old := snapshotOf(models.FileRecord{Path: "ghost.txt", Hash: 1, Size: 2, ModTime: oldTime})
	fresh := snapshotOf(models.FileRecord{Path: "ghost.txt", Hash: 1, Size: 2, ModTime: newTime})

	reporter := newRecordingReporter()
	result := NewReconciler(2, 5, reporter).Reconcile(old, fresh, tempDir)

	assert.Equal(t, int64(1), result.Fresh)
	assert.Equal(t, int64(1), result.Failed)
	assert.Equal(t, int64(0), result.Restored)
	assert.Equal(t, 1, reporter.warningCount())
}

// Per-file events are capped at the sample limit for each stream
func TestReconciler_SampleLimit(t *testing.T) {
	oldTime := time.Now().Add(-time.Hour)
	old := models.NewSnapshot("/tmp/source")
	fresh := models.NewSnapshot("/tmp/source")
	for i := 0; i < 20; i++ {
		path := models.RelativePath(string(rune('a'+i)) + ".txt")
		// All entries classify as new: absent from the old snapshot.
		fresh.Entries[path] = models.FileRecord{Path: path, Hash: models.Fingerprint(i), Size: 1, ModTime: oldTime}
	}

	reporter := newRecordingReporter()
	result := NewReconciler(4, 5, reporter).Reconcile(old, fresh, "/tmp/source")

	assert.Equal(t, int64(20), result.Dirty)
	assert.Len(t, reporter.fileEvents[contracts.StateNew], 5)
}
