// Package config loads upshift settings from .upshift.toml files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/upshift/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax, filesystem, or other loading errors).
// Callers can use errors.Is(err, ErrConfigValidation) to distinguish
// validation problems from other Load failure modes.
var ErrConfigValidation = errors.New("config validation failed")

// homeDir is replaced in tests.
var homeDir = homedir.Dir

// UserConfigPath returns the path of the per-user config file.
func UserConfigPath() (string, error) {
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveHomeFmt, err)
	}
	return filepath.Join(home, FileName), nil
}

// ProjectConfigPath returns the path of the project config file under root.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads the user config and the project config under root and merges
// them, project keys winning. Missing files are not an error.
func Load(root string) (*Config, error) {
	var merged Config
	userPath, err := UserConfigPath()
	if err != nil {
		return nil, err
	}
	paths := []string{userPath, ProjectConfigPath(root)}
	if sameFile(paths[0], paths[1]) {
		paths = paths[1:]
	}
	for _, path := range paths {
		cfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			merged = Merge(merged, *cfg)
		}
	}
	return &merged, nil
}

// LoadFile reads and validates a single config file. It returns nil, nil when
// the file does not exist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.ConfigFailedReadFmt, path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses and validates config TOML data from a source identifier.
// data is the TOML content; source is used in error messages.
func ParseConfig(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w "+messages.ConfigValidationGuidance, ErrConfigValidation, err)
	}
	return &cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

func sameFile(a string, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
