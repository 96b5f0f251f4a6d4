package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/version"
)

// Validate ensures every set key holds a usable value.
func (c *Config) Validate(path string) error {
	if c.PackageName != "" && strings.TrimSpace(c.PackageName) == "" {
		return fmt.Errorf(messages.ConfigPackageNameEmptyFmt, path)
	}
	if target := strings.TrimSpace(c.Target); target != "" && !version.IsLatest(target) {
		if _, err := version.Parse("target", target); err != nil {
			return fmt.Errorf(messages.ConfigTargetInvalidFmt, path, c.Target)
		}
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf(messages.ConfigExtensionInvalidFmt, path, ext)
		}
	}
	for _, dir := range c.IgnoredDirs {
		if strings.TrimSpace(dir) == "" || strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf(messages.ConfigIgnoredDirInvalidFmt, path, dir)
		}
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf(messages.ConfigExcludeInvalidFmt, path, pattern)
		}
	}
	if c.Jobs < 0 {
		return fmt.Errorf(messages.ConfigJobsInvalidFmt, path, c.Jobs)
	}
	if c.MaxFileBytes < 0 {
		return fmt.Errorf(messages.ConfigMaxBytesInvalidFmt, path, c.MaxFileBytes)
	}
	if c.DiffMaxLines < 0 {
		return fmt.Errorf(messages.ConfigDiffLinesInvalidFmt, path, c.DiffMaxLines)
	}
	return nil
}
