// Package output provides adapters for writing application output.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// Writer prints run progress, one line per event.
// Styling is dropped automatically when the destination is not a terminal,
// so piped output stays plain text for callers that parse it.
type Writer struct {
	out io.Writer

	header  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	faint   lipgloss.Style
}

// NewWriter creates a new Writer that writes to stdout.
func NewWriter() *Writer {
	return NewWriterWithOutput(os.Stdout)
}

// NewWriterWithOutput creates a new Writer with a custom output destination.
// This is useful for testing.
func NewWriterWithOutput(out io.Writer) *Writer {
	r := lipgloss.NewRenderer(out)
	return &Writer{
		out:     out,
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		success: r.NewStyle().Foreground(lipgloss.Color("78")),
		failure: r.NewStyle().Foreground(lipgloss.Color("197")),
		faint:   r.NewStyle().Faint(true),
	}
}

// Banner prints the run banner.
func (w *Writer) Banner() {
	w.println(w.header.Render("Smart Commit: grouping changes by intent"))
}

// NoChanges reports a clean working tree.
func (w *Writer) NoChanges() {
	w.println("No changes found.")
}

// Found reports the number of changed files.
func (w *Writer) Found(count int) {
	w.printf("Found %d changed file(s).\n", count)
}

// Staging announces a group about to be staged.
func (w *Writer) Staging(group domain.CommitGroup, description string) {
	w.printf("Staging %d file(s) for '%s: %s'...\n", len(group.Paths), group.Key.Type, description)
}

// Planned prints a dry-run group and its paths.
func (w *Writer) Planned(header string, paths []string) {
	w.println("Planned: " + header)
	for _, p := range paths {
		w.println(w.faint.Render("  - " + p))
	}
}

// GroupDone prints the outcome of one group.
func (w *Writer) GroupDone(result domain.GroupResult) {
	if !result.Committed {
		w.println(w.failure.Render(fmt.Sprintf("FAILED: %s (%v)", result.Header, result.Err)))
		return
	}
	line := "Committed: " + result.Header
	if result.LogErr != nil {
		line += fmt.Sprintf(" (knowledge log not updated: %v)", result.LogErr)
	}
	w.println(w.success.Render(line))
}

// Summary prints the final tally.
func (w *Writer) Summary(summary *domain.RunSummary) {
	if summary.DryRun {
		w.printf("Dry run: %d group(s) planned, nothing committed.\n", len(summary.Groups))
		return
	}
	w.printf("All groups processed: %d committed, %d failed.\n", summary.Committed, summary.Failed)
}

// println and printf are best-effort: there is no recovery for a failed stdout write.
func (w *Writer) println(s string) {
	_, _ = fmt.Fprintln(w.out, s)
}

func (w *Writer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.out, format, args...)
}
