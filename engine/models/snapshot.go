package models

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// CacheVersion is the current on-disk snapshot format version. Any mismatch
// (older or newer) invalidates the whole cache; there is no migration path.
const CacheVersion uint32 = 3

// RelativePath is a slash-separated file path relative to the source tree
// root. It is the stable identity key across runs, so the same tree checked
// out under a different absolute path still matches its cached records.
type RelativePath string

// Absolute joins the relative path onto the given source root.
func (p RelativePath) Absolute(root string) string {
	return filepath.Join(root, filepath.FromSlash(string(p)))
}

// Fingerprint is a 64-bit non-cryptographic hash of a file's content
type Fingerprint uint64

func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// FileRecord holds everything tracked about one file. Records are produced
// during a scan and never mutated afterwards.
type FileRecord struct {
	Path    RelativePath
	Hash    Fingerprint
	Size    uint64
	ModTime time.Time
}

// Snapshot represents the complete recorded state of a source tree at one
// point in time, plus provenance metadata for inspection.
type Snapshot struct {
	Entries      map[RelativePath]FileRecord
	Version      uint32
	CrawlTime    time.Time
	AbsolutePath string
	Hostname     string
}

// NewSnapshot creates an empty snapshot stamped with the current format
// version, crawl time and hostname.
func NewSnapshot(absolutePath string) *Snapshot {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return &Snapshot{
		Entries:      make(map[RelativePath]FileRecord),
		Version:      CacheVersion,
		CrawlTime:    time.Now(),
		AbsolutePath: absolutePath,
		Hostname:     hostname,
	}
}

// SortedPaths returns the entry keys in lexical order for deterministic
// iteration and reporting.
func (s *Snapshot) SortedPaths() []RelativePath {
	paths := make([]RelativePath, 0, len(s.Entries))
	for path := range s.Entries {
		paths = append(paths, path)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
	return paths
}
