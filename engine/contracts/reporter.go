package contracts

import (
	"time"

	"github.com/meysamhadeli/timekeep/engine/models"
)

// FileState describes how a scanned file compares to the previous snapshot.
type FileState int

const (
	// StateFresh means content and size match the previous snapshot.
	StateFresh FileState = iota
	// StateNew means the path was not present in the previous snapshot.
	StateNew
	// StateContentChanged means the content fingerprint differs.
	StateContentChanged
	// StateSizeChanged means the fingerprint matches but the size differs.
	StateSizeChanged
)

func (s FileState) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateNew:
		return "new"
	case StateContentChanged:
		return "content changed"
	case StateSizeChanged:
		return "size changed"
	default:
		return "unknown"
	}
}

// IReporter receives progress and diagnostic events from the engine. The
// engine never writes to the terminal itself, so runs are fully observable
// in tests without capturing stdout.
type IReporter interface {
	PhaseStarted(phase string)
	PhaseCompleted(phase string, elapsed time.Duration)
	FileEvent(record models.FileRecord, state FileState)
	Warning(message string)
	CacheDisclaimer(message string)
	Summary(entries int, restored int, dirty int, elapsed time.Duration)
}
