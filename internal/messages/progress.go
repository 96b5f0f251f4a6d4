package messages

// Progress output.
const (
	// ProgressStartedFmt announces the run.
	ProgressStartedFmt           = "Running %d codemod(s) over %d file(s)\n"
	ProgressTransformFmt         = "==> %s (%d file(s))\n"
	ProgressFileFmt              = "  %s %s\n"
	ProgressFileMessageFmt       = "  %s %s: %s\n"
	ProgressSpinnerFmt           = "%s %s (%d/%d)  %d/%d files"
	ProgressSpinnerPreparing     = "preparing"
	ProgressFileErroredSuffixFmt = "  %d errored"
)
