package reporters

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/meysamhadeli/timekeep/constants/lipgloss"
	"github.com/meysamhadeli/timekeep/engine/contracts"
	"github.com/meysamhadeli/timekeep/engine/models"
)

// PtermReporter renders engine events to the terminal with pterm. Phase and
// per-file events only show up in verbose mode; warnings and the final
// summary always do.
type PtermReporter struct {
	verbose bool
}

var _ contracts.IReporter = (*PtermReporter)(nil)

func NewPtermReporter(verbose bool) *PtermReporter {
	if verbose {
		// pterm mutes Debug printers unless this is switched on.
		pterm.EnableDebugMessages()
	}
	return &PtermReporter{verbose: verbose}
}

func (r *PtermReporter) PhaseStarted(phase string) {
	if r.verbose {
		pterm.Debug.Println(lipgloss.Blue.Render(fmt.Sprintf("▶ %s", phase)))
	}
}

func (r *PtermReporter) PhaseCompleted(phase string, elapsed time.Duration) {
	if r.verbose {
		pterm.Debug.Println(lipgloss.Gray.Render(fmt.Sprintf("✔ %s took %v", phase, elapsed)))
	}
}

func (r *PtermReporter) FileEvent(record models.FileRecord, state contracts.FileState) {
	if !r.verbose {
		return
	}
	label := lipgloss.Green.Render("[fresh]")
	if state != contracts.StateFresh {
		label = lipgloss.Red.Render("[dirty]")
	}
	pterm.Debug.Println(fmt.Sprintf("  %s %s (%s, %s) - %s",
		label, record.Path, record.Hash, humanize.Bytes(record.Size), state))
}

func (r *PtermReporter) Warning(message string) {
	pterm.Warning.Println(lipgloss.Yellow.Render(message))
}

// CacheDisclaimer prints the loud banner used when the cache has to be
// thrown away.
func (r *PtermReporter) CacheDisclaimer(message string) {
	rule := lipgloss.Red.Render(strings.Repeat("=", 80))
	pterm.Warning.Println(rule)
	pterm.Warning.Println(lipgloss.BoldRed.Render(fmt.Sprintf("⚠️  %s ⚠️", message)))
	pterm.Warning.Println(rule)
}

func (r *PtermReporter) Summary(entries int, restored int, dirty int, elapsed time.Duration) {
	pterm.Success.Println(lipgloss.Green.Render(
		fmt.Sprintf("🎉 All done! %d entries (%d restored, %d dirty) in %v", entries, restored, dirty, elapsed)))
}
