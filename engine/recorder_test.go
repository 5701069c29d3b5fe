package engine

import (
	"sync"
	"time"

	"github.com/meysamhadeli/timekeep/engine/contracts"
	"github.com/meysamhadeli/timekeep/engine/models"
)

// recordingReporter captures engine events for assertions.
type recordingReporter struct {
	mutex       sync.Mutex
	phases      []string
	fileEvents  map[contracts.FileState][]models.RelativePath
	warnings    []string
	disclaimers []string
	summaries   int
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{
		fileEvents: make(map[contracts.FileState][]models.RelativePath),
	}
}

func (r *recordingReporter) PhaseStarted(phase string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.phases = append(r.phases, phase)
}

func (r *recordingReporter) PhaseCompleted(phase string, elapsed time.Duration) {}

func (r *recordingReporter) FileEvent(record models.FileRecord, state contracts.FileState) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.fileEvents[state] = append(r.fileEvents[state], record.Path)
}

func (r *recordingReporter) Warning(message string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.warnings = append(r.warnings, message)
}

func (r *recordingReporter) CacheDisclaimer(message string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.disclaimers = append(r.disclaimers, message)
}

func (r *recordingReporter) Summary(entries int, restored int, dirty int, elapsed time.Duration) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.summaries++
}

func (r *recordingReporter) warningCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.warnings)
}

func (r *recordingReporter) disclaimerCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.disclaimers)
}
