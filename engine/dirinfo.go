package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/meysamhadeli/timekeep/engine/models"
)

// DirectoryInfo aggregates file counts and byte totals along the path
// components of a snapshot, for the cache-info breakdown.
type DirectoryInfo struct {
	Files          int
	TotalSize      uint64
	Subdirectories map[string]*DirectoryInfo
}

func newDirectoryInfo() *DirectoryInfo {
	return &DirectoryInfo{Subdirectories: make(map[string]*DirectoryInfo)}
}

// BuildDirectoryInfo groups the snapshot's records by their directory
// prefixes. Files are counted in the directory that directly contains them.
func BuildDirectoryInfo(snapshot *models.Snapshot) *DirectoryInfo {
	root := newDirectoryInfo()
	for _, path := range snapshot.SortedPaths() {
		record := snapshot.Entries[path]
		current := root
		components := strings.Split(string(path), "/")
		for _, name := range components[:len(components)-1] {
			next, ok := current.Subdirectories[name]
			if !ok {
				next = newDirectoryInfo()
				current.Subdirectories[name] = next
			}
			current = next
		}
		current.Files++
		current.TotalSize += record.Size
	}
	return root
}

// Render returns an indented, lexically ordered listing of the tree, one
// line per directory.
func (di *DirectoryInfo) Render() []string {
	return di.render("  ", ".")
}

func (di *DirectoryInfo) render(prefix string, name string) []string {
	var line string
	if di.Files == 0 && len(di.Subdirectories) == 0 {
		line = fmt.Sprintf("%s%s/ (empty)", prefix, name)
	} else {
		line = fmt.Sprintf("%s%s/ (%d files, %s)", prefix, name, di.Files, humanize.Bytes(di.TotalSize))
	}
	lines := []string{line}

	names := make([]string, 0, len(di.Subdirectories))
	for subdir := range di.Subdirectories {
		names = append(names, subdir)
	}
	sort.Strings(names)
	for _, subdir := range names {
		lines = append(lines, di.Subdirectories[subdir].render(prefix+"  ", subdir)...)
	}
	return lines
}
