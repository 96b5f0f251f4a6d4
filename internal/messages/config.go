package messages

// Config messages for configuration loading and validation.
const (
	// ConfigInvalidConfigFmt formats TOML decode errors.
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigFailedReadFmt       = "failed to read config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s contains unrecognized keys: %v"
	ConfigValidationGuidance  = "(see `upshift run --help` for the supported settings)"
	ConfigResolveHomeFmt      = "resolve home dir: %w"

	ConfigExtensionInvalidFmt  = "%s: extensions entry %q must start with a dot"
	ConfigIgnoredDirInvalidFmt = "%s: ignored_dirs entry %q must be a directory name, not a path"
	ConfigExcludeInvalidFmt    = "%s: exclude pattern %q is not a valid glob"
	ConfigJobsInvalidFmt       = "%s: jobs must be positive, got %d"
	ConfigMaxBytesInvalidFmt   = "%s: max_file_bytes must be positive, got %d"
	ConfigDiffLinesInvalidFmt  = "%s: diff_max_lines must be positive, got %d"
	ConfigTargetInvalidFmt     = "%s: target %q must be \"latest\" or a version"
	ConfigPackageNameEmptyFmt  = "%s: package_name must not be empty"
)
