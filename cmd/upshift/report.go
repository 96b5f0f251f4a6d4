package main

import (
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/migrate"
	"github.com/conn-castle/upshift/internal/transform"
)

var (
	changedColor = color.New(color.FgGreen)
	erroredColor = color.New(color.FgRed)
	skippedColor = color.New(color.FgYellow)
	faintColor   = color.New(color.Faint)
)

func displayVersion(v string) string {
	if v == "" {
		return messages.ReportEarliest
	}
	return v
}

func renderReportText(out io.Writer, report *migrate.Report, showDiffs bool) error {
	ew := &errWriter{w: out}
	ew.printf(messages.ReportHeaderFmt, displayVersion(report.From), displayVersion(report.To))
	writeTransformSection(ew, report.Transforms)

	switch report.Status {
	case migrate.StatusUpToDate:
		ew.println(messages.ReportUpToDate)
		return ew.err
	case migrate.StatusNoChanges:
		ew.println(messages.ReportNoChanges)
	case migrate.StatusDryRun:
		ew.println(messages.ReportDryRunHeader)
	case migrate.StatusDeclined:
		ew.println(messages.ReportDeclined)
	case migrate.StatusCancelled:
		ew.println(messages.ReportCancelled)
	case migrate.StatusApplied:
		ew.colorPrintf(changedColor, messages.ReportAppliedFmt+"\n", report.Written)
	}

	changed := report.ChangedFiles()
	if len(changed) > 0 || report.Status == migrate.StatusApplied {
		ew.println(messages.ReportChangedHeader)
		if len(changed) == 0 {
			ew.colorPrintf(faintColor, "%s\n", messages.ReportNone)
		}
		for _, file := range changed {
			ew.colorPrintf(changedColor, messages.ReportChangedLineFmt, file.RelPath, joinIDs(file.ChangedBy))
		}
	}
	if showDiffs && ew.err == nil {
		ew.err = writeDiffs(out, changed)
	}
	if len(report.Errored) > 0 {
		ew.println(messages.ReportErroredHeader)
		for _, e := range report.Errored {
			cause := string(e.Transform)
			if cause == "" {
				cause = e.Reason
			}
			ew.colorPrintf(erroredColor, messages.ReportErrorLineFmt, e.RelPath, cause, e.Message)
		}
	}
	if len(report.Skipped) > 0 {
		ew.println(messages.ReportSkippedHeader)
		for _, s := range report.Skipped {
			detail := string(s.Reason)
			if s.Message != "" {
				detail += " (" + s.Message + ")"
			}
			ew.colorPrintf(skippedColor, messages.ReportSkipLineFmt, s.RelPath, detail)
		}
	}
	c := report.Counts
	ew.printf(messages.ReportCountsFmt, report.FilesScanned, c.Changed, c.Unchanged, c.Errored, c.Skipped)
	return ew.err
}

func writeTransformSection(ew *errWriter, transforms []migrate.TransformSummary) {
	if len(transforms) == 0 {
		return
	}
	ew.println(messages.ReportTransformsHeader)
	for _, t := range transforms {
		ew.printf(messages.ReportTransformLineFmt, t.ID, t.Release, t.Description)
	}
}

// writeDiffs prints the diff preview of every file that carries one.
func writeDiffs(out io.Writer, files []migrate.FileResult) error {
	ew := &errWriter{w: out}
	for _, file := range files {
		if file.Diff == nil {
			continue
		}
		ew.println()
		ew.printf("%s", file.Diff.UnifiedDiff)
		if !strings.HasSuffix(file.Diff.UnifiedDiff, "\n") {
			ew.println()
		}
	}
	if len(files) > 0 {
		ew.println()
	}
	return ew.err
}

func joinIDs(ids []transform.ID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, string(id))
	}
	return strings.Join(parts, ", ")
}
