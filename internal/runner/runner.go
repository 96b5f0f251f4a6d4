// Package runner applies a single transform to a single file and classifies
// the result.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/conn-castle/upshift/internal/fsutil"
	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/selector"
	"github.com/conn-castle/upshift/internal/transform"
)

// Kind classifies what a transform did to a file.
type Kind string

const (
	// KindUnchanged means the transform ran and produced identical contents.
	KindUnchanged Kind = "unchanged"
	// KindChanged means the transform produced new contents.
	KindChanged Kind = "changed"
	// KindErrored means the transform or a write failed for the file.
	KindErrored Kind = "errored"
	// KindSkipped means the transform did not run for the file.
	KindSkipped Kind = "skipped"
)

// Reason codes attached to errored and skipped outcomes.
const (
	ReasonTransformFailure     = "transform_failure"
	ReasonPanic                = "panic"
	ReasonIOError              = "io_error"
	ReasonPriorTransformFailed = "prior_transform_failed"
)

// FileOutcome is the result of one transform against one file.
type FileOutcome struct {
	Transform transform.ID `json:"transform" yaml:"transform"`
	Path      string       `json:"path" yaml:"path"`
	RelPath   string       `json:"rel_path" yaml:"rel_path"`
	Kind      Kind         `json:"kind" yaml:"kind"`
	Reason    string       `json:"reason,omitempty" yaml:"reason,omitempty"`
	Message   string       `json:"message,omitempty" yaml:"message,omitempty"`

	// Contents holds the rewritten source for changed outcomes.
	Contents []byte `json:"-" yaml:"-"`
	// Err is the underlying cause for errored outcomes.
	Err error `json:"-" yaml:"-"`
}

// System is the filesystem surface the runner writes through.
type System interface {
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// WriteFileAtomic writes data to filename atomically.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}

// Runner applies transforms through an Engine.
type Runner struct {
	Engine transform.Engine
}

// New returns a Runner backed by engine.
func New(engine transform.Engine) *Runner {
	return &Runner{Engine: engine}
}

// Apply runs def against the task contents. It never returns an error: engine
// failures and panics are reported as errored outcomes.
func (r *Runner) Apply(def transform.Definition, task selector.FileTask) (outcome FileOutcome) {
	outcome = FileOutcome{Transform: def.ID, Path: task.Path, RelPath: task.RelPath}
	if r == nil || r.Engine == nil {
		return errored(outcome, ReasonTransformFailure, errors.New(messages.RunnerEngineRequired))
	}
	defer func() {
		if rec := recover(); rec != nil {
			outcome = errored(FileOutcome{Transform: def.ID, Path: task.Path, RelPath: task.RelPath},
				ReasonPanic, &transform.Failure{Transform: def.ID, Message: fmt.Sprintf(messages.TransformPanicFmt, rec)})
		}
	}()

	out, err := r.Engine.Rewrite(task.Contents, def)
	if err != nil {
		return errored(outcome, ReasonTransformFailure, err)
	}
	if bytes.Equal(out, task.Contents) {
		outcome.Kind = KindUnchanged
		return outcome
	}
	outcome.Kind = KindChanged
	outcome.Contents = out
	return outcome
}

// Skipped builds a skipped outcome for def on task.
func Skipped(id transform.ID, task selector.FileTask, reason string) FileOutcome {
	return FileOutcome{Transform: id, Path: task.Path, RelPath: task.RelPath, Kind: KindSkipped, Reason: reason}
}

// Write stores contents over task's file, keeping the mode it was selected with.
func Write(sys System, task selector.FileTask, contents []byte) error {
	perm := task.Mode.Perm()
	if perm == 0 {
		perm = 0o644
	}
	if err := sys.WriteFileAtomic(task.WritePath(), contents, perm); err != nil {
		return fmt.Errorf(messages.RunnerWriteFailedFmt, task.RelPath, err)
	}
	return nil
}

func errored(outcome FileOutcome, reason string, err error) FileOutcome {
	outcome.Kind = KindErrored
	outcome.Reason = reason
	outcome.Message = err.Error()
	outcome.Err = err
	return outcome
}
