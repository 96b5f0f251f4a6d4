package config

import (
	"strings"

	"github.com/conn-castle/upshift/internal/selector"
)

const (
	// FileName is the config file name, used both at the project root and in
	// the user's home directory.
	FileName = ".upshift.toml"
	// DefaultPackageName is the dependency looked up in package.json.
	DefaultPackageName = "upshift"
)

// Config holds upshift settings. Zero values mean "not set" so that a project
// file can override only some of the user file's keys.
type Config struct {
	PackageName    string   `toml:"package_name"`
	Target         string   `toml:"target"`
	Extensions     []string `toml:"extensions"`
	IgnoredDirs    []string `toml:"ignored_dirs"`
	Exclude        []string `toml:"exclude"`
	FollowSymlinks *bool    `toml:"follow_symlinks"`
	MaxFileBytes   int64    `toml:"max_file_bytes"`
	Jobs           int      `toml:"jobs"`
	DiffMaxLines   int      `toml:"diff_max_lines"`
}

// Merge returns base with every key set in override replacing base's value.
func Merge(base Config, override Config) Config {
	out := base
	if override.PackageName != "" {
		out.PackageName = override.PackageName
	}
	if override.Target != "" {
		out.Target = override.Target
	}
	if override.Extensions != nil {
		out.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.IgnoredDirs != nil {
		out.IgnoredDirs = append([]string(nil), override.IgnoredDirs...)
	}
	if override.Exclude != nil {
		out.Exclude = append([]string(nil), override.Exclude...)
	}
	if override.FollowSymlinks != nil {
		v := *override.FollowSymlinks
		out.FollowSymlinks = &v
	}
	if override.MaxFileBytes != 0 {
		out.MaxFileBytes = override.MaxFileBytes
	}
	if override.Jobs != 0 {
		out.Jobs = override.Jobs
	}
	if override.DiffMaxLines != 0 {
		out.DiffMaxLines = override.DiffMaxLines
	}
	return out
}

// Package returns the configured package name or the default.
func (c Config) Package() string {
	if name := strings.TrimSpace(c.PackageName); name != "" {
		return name
	}
	return DefaultPackageName
}

// SelectorOptions returns file selection options with defaults filled in.
func (c Config) SelectorOptions() selector.Options {
	opts := selector.DefaultOptions()
	if c.Extensions != nil {
		opts.Extensions = append([]string(nil), c.Extensions...)
	}
	if c.IgnoredDirs != nil {
		opts.IgnoredDirs = append([]string(nil), c.IgnoredDirs...)
	}
	opts.Exclude = append([]string(nil), c.Exclude...)
	if c.FollowSymlinks != nil {
		opts.FollowSymlinks = *c.FollowSymlinks
	}
	if c.MaxFileBytes > 0 {
		opts.MaxFileBytes = c.MaxFileBytes
	}
	return opts
}
