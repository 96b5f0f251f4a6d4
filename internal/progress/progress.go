// Package progress renders run progress for the terminal.
package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/migrate"
	"github.com/conn-castle/upshift/internal/runner"
	"github.com/conn-castle/upshift/internal/transform"
)

// Nop returns a reporter that prints nothing.
func Nop() migrate.Reporter {
	return migrate.NopReporter{}
}

// Line prints one line per event. Without verbose, only transform headers and
// errored files are printed.
type Line struct {
	out     io.Writer
	verbose bool
	mu      sync.Mutex
}

// NewLine returns a plain line reporter writing to out.
func NewLine(out io.Writer, verbose bool) *Line {
	return &Line{out: out, verbose: verbose}
}

// Started prints the run header.
func (l *Line) Started(transformCount int, fileCount int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, messages.ProgressStartedFmt, transformCount, fileCount)
}

// TransformStarted prints a header for id.
func (l *Line) TransformStarted(id transform.ID, fileCount int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, messages.ProgressTransformFmt, id, fileCount)
}

// FileCompleted prints the outcome of one file.
func (l *Line) FileCompleted(outcome runner.FileOutcome) {
	if !l.verbose && outcome.Kind != runner.KindErrored {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	label := kindLabel(outcome.Kind)
	switch {
	case outcome.Message != "":
		_, _ = fmt.Fprintf(l.out, messages.ProgressFileMessageFmt, label, outcome.RelPath, outcome.Message)
	case outcome.Reason != "":
		_, _ = fmt.Fprintf(l.out, messages.ProgressFileMessageFmt, label, outcome.RelPath, outcome.Reason)
	default:
		_, _ = fmt.Fprintf(l.out, messages.ProgressFileFmt, label, outcome.RelPath)
	}
}

// Finished is a no-op; the caller renders the report.
func (l *Line) Finished(*migrate.Report) {}

func kindLabel(kind runner.Kind) string {
	switch kind {
	case runner.KindChanged:
		return color.GreenString(string(kind))
	case runner.KindErrored:
		return color.RedString(string(kind))
	case runner.KindSkipped:
		return color.YellowString(string(kind))
	default:
		return color.New(color.Faint).Sprint(string(kind))
	}
}
