package migrate

import (
	"errors"

	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/runner"
	"github.com/conn-castle/upshift/internal/selector"
	"github.com/conn-castle/upshift/internal/transform"
)

// Status summarizes how a run ended.
type Status string

const (
	// StatusUpToDate means no codemods lie between the two versions.
	StatusUpToDate Status = "up_to_date"
	// StatusNoChanges means codemods ran but no file changed.
	StatusNoChanges Status = "no_changes"
	// StatusDryRun means changes were computed and not written.
	StatusDryRun Status = "dry_run"
	// StatusApplied means changes were confirmed and written.
	StatusApplied Status = "applied"
	// StatusDeclined means the confirmation was declined.
	StatusDeclined Status = "declined"
	// StatusCancelled means the run was cancelled before writing.
	StatusCancelled Status = "cancelled"
	// StatusFailed means a fatal error stopped the run.
	StatusFailed Status = "failed"
)

// TransformSummary describes one resolved codemod.
type TransformSummary struct {
	ID          transform.ID `json:"id" yaml:"id"`
	Release     string       `json:"release" yaml:"release"`
	Description string       `json:"description" yaml:"description"`
}

// Counts tallies outcome kinds.
type Counts struct {
	Changed   int `json:"changed" yaml:"changed"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Errored   int `json:"errored" yaml:"errored"`
	Skipped   int `json:"skipped" yaml:"skipped"`
}

func (c *Counts) add(kind runner.Kind) {
	switch kind {
	case runner.KindChanged:
		c.Changed++
	case runner.KindUnchanged:
		c.Unchanged++
	case runner.KindErrored:
		c.Errored++
	case runner.KindSkipped:
		c.Skipped++
	}
}

// FileResult is the combined result of every transform on one file.
type FileResult struct {
	Path      string         `json:"path" yaml:"path"`
	RelPath   string         `json:"rel_path" yaml:"rel_path"`
	Kind      runner.Kind    `json:"kind" yaml:"kind"`
	ChangedBy []transform.ID `json:"changed_by,omitempty" yaml:"changed_by,omitempty"`
	Written   bool           `json:"written" yaml:"written"`
	Reason    string         `json:"reason,omitempty" yaml:"reason,omitempty"`
	Message   string         `json:"message,omitempty" yaml:"message,omitempty"`
	Diff      *DiffPreview   `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// ErroredFile records a per-file failure.
type ErroredFile struct {
	Path      string       `json:"path" yaml:"path"`
	RelPath   string       `json:"rel_path" yaml:"rel_path"`
	Transform transform.ID `json:"transform,omitempty" yaml:"transform,omitempty"`
	Reason    string       `json:"reason" yaml:"reason"`
	Message   string       `json:"message" yaml:"message"`
}

// Report is the result of a run. It must not be modified after Finalize.
type Report struct {
	From         string               `json:"from" yaml:"from"`
	To           string               `json:"to" yaml:"to"`
	Transforms   []TransformSummary   `json:"transforms" yaml:"transforms"`
	Status       Status               `json:"status" yaml:"status"`
	DryRun       bool                 `json:"dry_run" yaml:"dry_run"`
	Applied      bool                 `json:"applied" yaml:"applied"`
	State        State                `json:"state" yaml:"state"`
	States       []State              `json:"states" yaml:"states"`
	FilesScanned int                  `json:"files_scanned" yaml:"files_scanned"`
	Counts       Counts               `json:"counts" yaml:"counts"`
	Outcomes     []runner.FileOutcome `json:"outcomes" yaml:"outcomes"`

	// OutcomeCounts tallies Outcomes; Counts tallies Files plus selection skips.
	OutcomeCounts Counts          `json:"outcome_counts" yaml:"outcome_counts"`
	Files         []FileResult    `json:"files" yaml:"files"`
	Errored       []ErroredFile   `json:"errored" yaml:"errored"`
	Skipped       []selector.Skip `json:"skipped" yaml:"skipped"`
	Written       int             `json:"written" yaml:"written"`

	finalized bool
}

func newReport() *Report {
	return &Report{
		Transforms: []TransformSummary{},
		Outcomes:   []runner.FileOutcome{},
		Files:      []FileResult{},
		Errored:    []ErroredFile{},
		Skipped:    []selector.Skip{},
	}
}

// HasErrors reports whether any file errored.
func (r *Report) HasErrors() bool {
	return len(r.Errored) > 0
}

// Finalized reports whether Finalize has been called.
func (r *Report) Finalized() bool {
	return r.finalized
}

// ChangedFiles returns the files whose contents differ after the run.
func (r *Report) ChangedFiles() []FileResult {
	out := make([]FileResult, 0, r.Counts.Changed)
	for _, f := range r.Files {
		if f.Kind == runner.KindChanged {
			out = append(out, f)
		}
	}
	return out
}

// Finalize recomputes the counts and seals the report.
func (r *Report) Finalize() error {
	if r.finalized {
		return errors.New(messages.MigrateReportFinalized)
	}
	r.Counts = Counts{}
	r.OutcomeCounts = Counts{}
	for _, f := range r.Files {
		r.Counts.add(f.Kind)
	}
	r.Counts.Skipped += len(r.Skipped)
	for _, o := range r.Outcomes {
		r.OutcomeCounts.add(o.Kind)
	}
	r.Written = 0
	for _, f := range r.Files {
		if f.Written {
			r.Written++
		}
	}
	r.Applied = r.Status == StatusApplied
	r.finalized = true
	return nil
}
