// Package migrate coordinates a run: it resolves the codemods between two
// versions, previews them over the selected files, asks for confirmation and
// writes the results.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/conn-castle/upshift/internal/catalog"
	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/runner"
	"github.com/conn-castle/upshift/internal/selector"
	"github.com/conn-castle/upshift/internal/transform"
)

// Options configures a run.
type Options struct {
	// From is the installed version; empty means the earliest known.
	From string
	// To is the target version or "latest".
	To   string
	Root string

	DryRun      bool
	AutoConfirm bool
	// Jobs bounds the number of files previewed concurrently.
	Jobs         int
	Selection    selector.Options
	Diffs        bool
	DiffMaxLines int

	Catalog   *catalog.Catalog
	Engine    transform.Engine
	Confirmer Confirmer
	Reporter  Reporter

	SelectorSystem selector.System
	WriteSystem    runner.System
}

// fileState carries one file through every transform of the run.
type fileState struct {
	task     selector.FileTask
	current  []byte
	changed  []transform.ID
	failed   bool
	outcomes []runner.FileOutcome
}

type coordinator struct {
	opts     Options
	machine  *machine
	report   *Report
	runner   *runner.Runner
	reporter Reporter
	defs     []transform.Definition
	files    []*fileState
	// mu guards reporter calls made from preview workers.
	mu sync.Mutex
}

// Run executes a run end to end. The returned report is finalized. On a
// fatal error the partial report is returned together with the error; on
// cancellation the report has StatusCancelled and the context error is
// returned.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Catalog == nil {
		return nil, errors.New(messages.MigrateCatalogRequired)
	}
	if opts.Engine == nil {
		return nil, errors.New(messages.RunnerEngineRequired)
	}
	if opts.SelectorSystem == nil {
		opts.SelectorSystem = selector.RealSystem{}
	}
	if opts.WriteSystem == nil {
		opts.WriteSystem = runner.RealSystem{}
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	c := &coordinator{
		opts:     opts,
		machine:  newMachine(),
		report:   newReport(),
		runner:   runner.New(opts.Engine),
		reporter: reporter,
	}
	c.report.DryRun = opts.DryRun
	return c.run(ctx)
}

func (c *coordinator) run(ctx context.Context) (*Report, error) {
	status, err := c.execute(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return c.fail(err)
	}
	c.report.Status = status
	if tErr := c.transition(StateReporting); tErr != nil {
		return c.fail(tErr)
	}
	if fErr := c.finish(StateDone); fErr != nil {
		return c.fail(fErr)
	}
	return c.report, err
}

func (c *coordinator) execute(ctx context.Context) (Status, error) {
	if err := c.transition(StateResolving); err != nil {
		return "", err
	}
	if err := c.resolve(); err != nil {
		return "", err
	}
	if len(c.defs) == 0 {
		return StatusUpToDate, nil
	}

	if err := c.transition(StateSelecting); err != nil {
		return "", err
	}
	if err := c.selectFiles(ctx); err != nil {
		if ctx.Err() != nil {
			return StatusCancelled, ctx.Err()
		}
		return "", err
	}

	if err := c.transition(StatePreviewing); err != nil {
		return "", err
	}
	c.reporter.Started(len(c.defs), len(c.files))
	if err := c.preview(ctx); err != nil {
		if ctx.Err() != nil {
			return StatusCancelled, ctx.Err()
		}
		return "", err
	}
	c.collectResults()

	changed := c.report.Counts.Changed
	if changed == 0 {
		return StatusNoChanges, nil
	}
	if c.opts.DryRun {
		return StatusDryRun, nil
	}
	if !c.opts.AutoConfirm {
		if err := c.transition(StateAwaitingConfirmation); err != nil {
			return "", err
		}
		ok, err := c.confirm(ctx, changed)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return StatusCancelled, err
			}
			return "", err
		}
		if !ok {
			return StatusDeclined, nil
		}
	}

	if err := c.transition(StateApplying); err != nil {
		return "", err
	}
	c.apply()
	return StatusApplied, nil
}

func (c *coordinator) transition(to State) error {
	if err := c.machine.transition(to); err != nil {
		return err
	}
	c.report.State = c.machine.current
	c.report.States = append([]State(nil), c.machine.path...)
	return nil
}

func (c *coordinator) fail(cause error) (*Report, error) {
	c.report.Status = StatusFailed
	if err := c.finish(StateFailed); err != nil {
		return c.report, errors.Join(cause, err)
	}
	return c.report, cause
}

func (c *coordinator) finish(final State) error {
	if err := c.transition(final); err != nil {
		return err
	}
	if err := c.report.Finalize(); err != nil {
		return err
	}
	c.reporter.Finished(c.report)
	return nil
}

func (c *coordinator) resolve() error {
	plan, err := Resolve(c.opts.Catalog, c.opts.From, c.opts.To)
	if err != nil {
		return err
	}
	c.report.From = plan.From
	c.report.To = plan.To
	c.report.Transforms = append(c.report.Transforms, plan.Transforms...)
	c.defs = plan.defs
	return nil
}

func (c *coordinator) selectFiles(ctx context.Context) error {
	result, err := selector.Select(ctx, c.opts.SelectorSystem, c.opts.Root, c.opts.Selection)
	if err != nil {
		return err
	}
	c.files = make([]*fileState, 0, len(result.Tasks))
	for _, task := range result.Tasks {
		c.files = append(c.files, &fileState{task: task, current: task.Contents})
	}
	c.report.Skipped = append(c.report.Skipped, result.Skipped...)
	c.report.FilesScanned = len(result.Tasks) + len(result.Skipped)
	return nil
}

// preview runs each transform over every file. Transforms run one after
// another; within a transform, files are spread over the worker pool. Each
// file's contents flow from one transform to the next.
func (c *coordinator) preview(ctx context.Context) error {
	for _, def := range c.defs {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.reporter.TransformStarted(def.ID, len(c.files))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.opts.Jobs)
		for _, fs := range c.files {
			if fs.failed {
				c.record(fs, runner.Skipped(def.ID, fs.task, runner.ReasonPriorTransformFailed))
				continue
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				task := fs.task
				task.Contents = fs.current
				c.record(fs, c.runner.Apply(def, task))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// record stores outcome on the file that owns it. Only the goroutine working
// on fs writes its fields.
func (c *coordinator) record(fs *fileState, outcome runner.FileOutcome) {
	switch outcome.Kind {
	case runner.KindChanged:
		fs.current = outcome.Contents
		fs.changed = append(fs.changed, outcome.Transform)
	case runner.KindErrored:
		fs.failed = true
	}
	fs.outcomes = append(fs.outcomes, outcome)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reporter.FileCompleted(outcome)
}

// collectResults folds per-file state into the report in file order, then
// transform order.
func (c *coordinator) collectResults() {
	for _, fs := range c.files {
		c.report.Outcomes = append(c.report.Outcomes, fs.outcomes...)
		result := FileResult{Path: fs.task.Path, RelPath: fs.task.RelPath, Kind: runner.KindUnchanged}
		switch {
		case fs.failed:
			result.Kind = runner.KindErrored
			for _, o := range fs.outcomes {
				if o.Kind != runner.KindErrored {
					continue
				}
				result.Reason = o.Reason
				result.Message = o.Message
				c.report.Errored = append(c.report.Errored, ErroredFile{
					Path: o.Path, RelPath: o.RelPath, Transform: o.Transform, Reason: o.Reason, Message: o.Message,
				})
			}
		case len(fs.changed) > 0:
			result.Kind = runner.KindChanged
			result.ChangedBy = append([]transform.ID(nil), fs.changed...)
			if c.opts.Diffs {
				result.Diff = buildDiffPreview(fs.task.RelPath, fs.task.Contents, fs.current, c.opts.DiffMaxLines)
			}
		}
		c.report.Files = append(c.report.Files, result)
	}
	c.report.Counts = Counts{}
	for _, f := range c.report.Files {
		c.report.Counts.add(f.Kind)
	}
}

func (c *coordinator) confirm(ctx context.Context, changed int) (bool, error) {
	if c.opts.Confirmer == nil {
		return false, errors.New(messages.MigrateConfirmRequired)
	}
	summary := Summary{Files: c.report.ChangedFiles()}
	for _, def := range c.defs {
		summary.Transforms = append(summary.Transforms, def.ID)
	}
	prompt := fmt.Sprintf(messages.ConfirmApplyPromptFmt, changed)

	type answer struct {
		ok  bool
		err error
	}
	done := make(chan answer, 1)
	go func() {
		ok, err := c.opts.Confirmer.Confirm(ctx, prompt, summary)
		done <- answer{ok: ok, err: err}
	}()
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-done:
		if a.err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return false, fmt.Errorf(messages.MigrateConfirmFailedFmt, a.err)
		}
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return a.ok, nil
	}
}

// apply writes every changed file. A failed write marks that file errored and
// the run continues.
func (c *coordinator) apply() {
	for i, fs := range c.files {
		result := &c.report.Files[i]
		if result.Kind != runner.KindChanged {
			continue
		}
		if err := runner.Write(c.opts.WriteSystem, fs.task, fs.current); err != nil {
			result.Kind = runner.KindErrored
			result.Reason = runner.ReasonIOError
			result.Message = err.Error()
			c.report.Errored = append(c.report.Errored, ErroredFile{
				Path: fs.task.Path, RelPath: fs.task.RelPath, Reason: runner.ReasonIOError, Message: err.Error(),
			})
			continue
		}
		result.Written = true
	}
}
