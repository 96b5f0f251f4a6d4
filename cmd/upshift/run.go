package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/migrate"
	"github.com/conn-castle/upshift/internal/progress"
	"github.com/conn-castle/upshift/internal/transform"
)

type runFlags struct {
	to          string
	from        string
	dryRun      bool
	yes         bool
	diff        bool
	diffLines   int
	format      string
	jsonOut     bool
	jobs        int
	exclude     []string
	ext         []string
	noProgress  bool
	failOnError bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   messages.RunUse,
		Short: messages.RunShort,
		Long:  messages.RunLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpgrade(cmd, root, f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.to, "to", "", messages.RunFlagTo)
	flags.StringVar(&f.from, "from", "", messages.RunFlagFrom)
	flags.BoolVar(&f.dryRun, "dry-run", false, messages.RunFlagDryRun)
	flags.BoolVarP(&f.yes, "yes", "y", false, messages.RunFlagYes)
	flags.BoolVar(&f.diff, "diff", false, messages.RunFlagDiff)
	flags.IntVar(&f.diffLines, "diff-lines", 0, messages.RunFlagDiffLines)
	flags.StringVar(&f.format, "format", messages.FormatText, messages.RunFlagFormat)
	flags.BoolVar(&f.jsonOut, "json", false, messages.RunFlagJSON)
	flags.IntVarP(&f.jobs, "jobs", "j", 0, messages.RunFlagJobs)
	flags.StringArrayVar(&f.exclude, "exclude", nil, messages.RunFlagExclude)
	flags.StringArrayVar(&f.ext, "ext", nil, messages.RunFlagExt)
	flags.BoolVar(&f.noProgress, "no-progress", false, messages.RunFlagNoProgress)
	flags.BoolVar(&f.failOnError, "fail-on-error", false, messages.RunFlagFailOnError)
	return cmd
}

func runUpgrade(cmd *cobra.Command, root *rootOptions, f runFlags) error {
	format, err := outputFormat(f.format, f.jsonOut)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("jobs") && f.jobs <= 0 {
		return fmt.Errorf(messages.RunInvalidJobsFmt, f.jobs)
	}
	env, err := loadEnvironment(root)
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	selection := env.config.SelectorOptions()
	selection.Exclude = append(selection.Exclude, f.exclude...)
	if len(f.ext) > 0 {
		selection.Extensions = append([]string(nil), f.ext...)
	}
	jobs := f.jobs
	if jobs == 0 {
		jobs = env.config.Jobs
	}
	diffLines := f.diffLines
	if diffLines <= 0 {
		diffLines = env.config.DiffMaxLines
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	var spinner *progress.Spinner
	reporter := progress.Nop()
	switch {
	case f.noProgress:
	case root.verbose || !isTerminal(stderr):
		reporter = progress.NewLine(stderr, root.verbose)
	default:
		spinner = progress.NewSpinner(stderr)
		defer spinner.Stop()
		reporter = spinner
	}

	// Prompts go to stderr when stdout carries a structured report.
	promptOut := stdout
	if format != messages.FormatText {
		promptOut = stderr
	}
	var previewed atomic.Bool
	confirmer := migrate.ConfirmFunc(func(ctx context.Context, prompt string, summary migrate.Summary) (bool, error) {
		if spinner != nil {
			spinner.Stop()
		}
		paths := make([]string, 0, len(summary.Files))
		for _, file := range summary.Files {
			paths = append(paths, file.RelPath)
		}
		if err := printFilePaths(promptOut, messages.RunChangedFilesHeader, paths); err != nil {
			return false, err
		}
		if f.diff && format == messages.FormatText {
			if err := writeDiffs(promptOut, summary.Files); err != nil {
				return false, err
			}
			previewed.Store(true)
		}
		if isInteractive() {
			return confirmForm(ctx, prompt)
		}
		return confirmLine(cmd.InOrStdin(), promptOut, prompt)
	})

	report, runErr := migrate.Run(cmd.Context(), migrate.Options{
		From:         env.installedVersion(cmd, f.from),
		To:           env.targetVersion(f.to),
		Root:         env.root,
		DryRun:       f.dryRun,
		AutoConfirm:  f.yes,
		Jobs:         jobs,
		Selection:    selection,
		Diffs:        f.diff,
		DiffMaxLines: diffLines,
		Catalog:      cat,
		Engine:       transform.NewRuleEngine(),
		Confirmer:    confirmer,
		Reporter:     reporter,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if report == nil || report.Status == migrate.StatusFailed {
		return runErr
	}

	var renderErr error
	if format == messages.FormatText {
		renderErr = renderReportText(stdout, report, f.diff && !previewed.Load())
	} else {
		renderErr = writeStructured(stdout, format, report)
	}
	if runErr != nil || renderErr != nil {
		return errors.Join(runErr, renderErr)
	}
	if f.failOnError && report.HasErrors() {
		_, _ = color.New(color.FgRed).Fprintln(stderr, fmt.Sprintf(messages.RunFilesErroredFmt, len(report.Errored)))
		return &SilentExitError{Code: 2}
	}
	return nil
}
