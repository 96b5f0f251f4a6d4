package migrate

import (
	"github.com/conn-castle/upshift/internal/runner"
	"github.com/conn-castle/upshift/internal/transform"
)

// Reporter receives progress events. FileCompleted may be called from
// several goroutines, but never concurrently with itself.
type Reporter interface {
	Started(transformCount int, fileCount int)
	TransformStarted(id transform.ID, fileCount int)
	FileCompleted(outcome runner.FileOutcome)
	Finished(report *Report)
}

// NopReporter discards every event.
type NopReporter struct{}

func (NopReporter) Started(int, int) {}
func (NopReporter) TransformStarted(transform.ID, int) {}
func (NopReporter) FileCompleted(runner.FileOutcome) {}
func (NopReporter) Finished(*Report) {}
