package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "upshift"
	// RootShort is the short description for the root command.
	RootShort       = "Upgrade a project's source tree across upshift releases"
	RootLong        = "upshift resolves the codemods required between the installed and target upshift versions and applies them to the project's JavaScript and TypeScript sources."
	RootVersionFlag = "Print version and exit"
	RootFlagRoot    = "Project root to migrate (defaults to the current directory)"
	RootFlagVerbose = "Print a line per processed file"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt  = "commit %s"
	VersionBuildFmt   = "built %s"
	VersionFullFmt    = "%s (%s)"
	VersionTemplate   = "{{.Version}}\n"
	VersionRequired   = "version is required"
	VersionInvalidFmt = "invalid %s version %q: must be in the form vX.Y.Z, X.Y.Z or X.Y.Z-pre"

	// RunUse is the run command name.
	RunUse   = "run"
	RunShort = "Apply the codemods required to reach the target version"
	RunLong  = "Resolve every codemod introduced after --from up to and including --to, preview the result across the project, then write the changed files once confirmed."

	RunFlagTo          = "Target version (X.Y.Z or \"latest\")"
	RunFlagFrom        = "Installed version (defaults to the version found in package.json)"
	RunFlagDryRun      = "Report the changes without writing any file"
	RunFlagYes         = "Apply changes without asking for confirmation"
	RunFlagDiff        = "Print a unified diff for every changed file"
	RunFlagDiffLines   = "Maximum diff lines shown per file"
	RunFlagFormat      = "Report format: text, json or yaml"
	RunFlagJSON        = "Shorthand for --format json"
	RunFlagJobs        = "Number of files processed in parallel"
	RunFlagExclude     = "Glob (relative to the root) of files to leave untouched; repeatable"
	RunFlagExt         = "Source file extension to include; repeatable (replaces the defaults)"
	RunFlagNoProgress  = "Disable the progress spinner"
	RunFlagFailOnError = "Exit with status 2 when any file failed to transform"

	RunUnknownFormatFmt    = "unknown report format %q (supported: text, json, yaml)"
	RunInvalidJobsFmt      = "--jobs must be positive, got %d"
	RunFromDetectedFmt     = "Detected installed version %s from %s\n"
	RunFromUnknownFmt      = "Warning: could not determine the installed %s version from %s; treating it as the earliest release\n"
	RunFromDetectFailedFmt = "Warning: %v; treating the installed version as the earliest release\n"
	RunFilesErroredFmt     = "%d file(s) failed to transform"

	// PlanUse is the plan command name.
	PlanUse   = "plan"
	PlanShort = "Show the codemods that would run, without reading any source file"

	// ListUse is the list command name.
	ListUse   = "list"
	ListShort = "List catalog releases and the codemods they introduce"

	// ConfirmApplyPromptFmt is shown before any file is written.
	ConfirmApplyPromptFmt = "Write changes to %d file(s)?"
	ConfirmApplyAffirm    = "Write files"
	ConfirmApplyNegative  = "Cancel"

	// PromptConfirmFmt formats yes/no prompts; an empty answer declines.
	PromptConfirmFmt = "%s [y/N]: "
	PromptRetryYesNo = "Please enter y or n."
)

// Output and environment messages for the CLI.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	ReportEarliest         = "(earliest)"
	RunChangedFilesHeader  = "Files to be changed:"
	RunInstalledSourceFmt  = "node_modules/%s/package.json"
	RunManifestSource      = "package.json"
	PlanHeaderFmt          = "Plan %s -> %s (no files are read or written)\n"
	ListReleaseFmt         = "%s\n"
	ListCodemodFmt         = "  - %s: %s\n"
	ListFlagRules          = "Include each codemod's rewrite rules"
	ListRuleFmt            = "      %s %s -> %s\n"
	OutputFormatFlagsClash = "--json cannot be combined with --format %s"
)
