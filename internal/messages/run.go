package messages

// Catalog, selection and run messages.
const (
	// CatalogDecodeFmt formats catalog decode errors.
	CatalogDecodeFmt            = "decode catalog: %w"
	CatalogEmpty                = "catalog has no releases"
	CatalogUnknownTransformFmt  = "release %s references unknown transform %q"
	CatalogDuplicateOwnerFmt    = "transform %q is listed by both %s and %s"
	CatalogDuplicateInEntryFmt  = "transform %q is listed twice in release %s"
	CatalogDuplicateVersionFmt  = "release %s is listed twice"
	CatalogInvalidVersionFmt    = "release version %q is invalid: %v"
	CatalogEmptyTransformIDFmt  = "release %s lists an empty transform id"
	CatalogIntegrityFmt         = "catalog integrity: %s"
	CatalogIntegrityReleaseFmt  = "catalog integrity (release %s): %s"
	TransformUnknownFmt         = "unknown transform %q"
	TransformDuplicateFmt       = "transform %q registered twice"
	TransformIDRequired         = "transform id is required"
	TransformDescriptionReqFmt  = "transform %s description is required"
	TransformRulesRequiredFmt   = "transform %s has no rules"
	TransformRuleFromToFmt      = "transform %s rule %d (%s) requires distinct from and to"
	TransformRuleKindFmt        = "transform %s rule %d has unsupported kind %q"
	TransformRuleIdentifierFmt  = "transform %s rule %d (%s): %q is not an identifier"
	TransformFailureFmt         = "%s: line %d: %s"
	TransformFailureNoLineFmt   = "%s: %s"
	TransformPanicFmt           = "transform panicked: %v"
	EngineUnterminatedString    = "unterminated string literal"
	EngineUnterminatedTemplate  = "unterminated template literal"
	EngineUnterminatedComment   = "unterminated block comment"
	EngineUnterminatedRegexp    = "unterminated regular expression literal"
	EngineUnbalancedTemplate    = "unbalanced braces in template expression"
	EngineInvalidUTF8           = "source is not valid UTF-8"
	SelectorRootRequired        = "root path is required"
	SelectorRootUnreadableFmt   = "cannot read project root %s: %w"
	SelectorRootNotDirFmt       = "project root %s is not a directory"
	SelectorSystemRequired      = "selector system is required"
	RunnerEngineRequired        = "transform engine is required"
	RunnerWriteFailedFmt        = "failed to write %s: %w"
	RunnerReadFailedFmt         = "failed to read %s: %w"
	MigrateCatalogRequired      = "catalog is required"
	MigrateRegistryRequired     = "transform registry is required"
	MigrateDisallowedTransition = "run coordinator: disallowed transition %s -> %s"
	MigrateReportFinalized      = "run report is already finalized"
	MigrateConfirmRequired      = "confirmation requires a confirmer; pass --yes or run in a terminal"
	MigrateConfirmFailedFmt     = "confirmation failed: %w"
	ProjectManifestInvalidFmt   = "invalid %s: %w"
	ProjectManifestReadFmt      = "failed to read %s: %w"
	ProjectVersionRangeFmt      = "%s lists %s at %q, which does not name a release version"

	// ReportHeaderFmt introduces the text report.
	ReportHeaderFmt        = "upshift %s -> %s\n"
	ReportDryRunHeader     = "Dry run: no files were written."
	ReportUpToDate         = "Nothing to do: no codemods are registered between these versions."
	ReportNoChanges        = "No files needed changes."
	ReportDeclined         = "Changes were not applied (confirmation declined)."
	ReportCancelled        = "Run cancelled before any file was written."
	ReportAppliedFmt       = "Wrote %d file(s)."
	ReportTransformsHeader = "Codemods:"
	ReportChangedHeader    = "Changed files:"
	ReportErroredHeader    = "Errors:"
	ReportSkippedHeader    = "Skipped files:"
	ReportCountsFmt        = "Files scanned: %d  changed: %d  unchanged: %d  errored: %d  skipped: %d\n"
	ReportLineFmt          = "  - %s\n"
	ReportTransformLineFmt = "  - %s (%s): %s\n"
	ReportErrorLineFmt     = "  - %s [%s]: %s\n"
	ReportSkipLineFmt      = "  - %s: %s\n"
	ReportChangedLineFmt   = "  - %s (%s)\n"
	ReportNone             = "  - (none)"
	DiffTruncatedFmt       = "... (truncated to %d lines; rerun with --diff-lines <n> to see more)"
)
