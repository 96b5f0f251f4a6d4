// Package version parses and orders release versions.
package version

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/conn-castle/upshift/internal/messages"
)

// Latest is the sentinel target meaning "the newest release in the catalog".
const Latest = "latest"

// ErrInvalidVersion is wrapped by every InvalidVersionError.
var ErrInvalidVersion = errors.New("invalid version")

// InvalidVersionError reports a malformed version string and which argument held it.
type InvalidVersionError struct {
	Arg   string
	Value string
	Err   error
}

func (e *InvalidVersionError) Error() string {
	arg := e.Arg
	if arg == "" {
		arg = "release"
	}
	return fmt.Sprintf(messages.VersionInvalidFmt, arg, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidVersion and the parse cause.
func (e *InvalidVersionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidVersion}
	}
	return []error{ErrInvalidVersion, e.Err}
}

// Version is an immutable semantic version.
type Version struct {
	v *semver.Version
}

// Parse parses raw as X.Y.Z or X.Y.Z-pre, with an optional leading "v".
// arg names the argument in the returned error.
func Parse(arg string, raw string) (Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Version{}, &InvalidVersionError{Arg: arg, Value: raw, Err: errors.New(messages.VersionRequired)}
	}
	parsed, err := semver.StrictNewVersion(strings.TrimPrefix(trimmed, "v"))
	if err != nil {
		return Version{}, &InvalidVersionError{Arg: arg, Value: raw, Err: err}
	}
	if parsed.Metadata() != "" {
		// Build metadata does not participate in ordering; reject it so two
		// distinct strings never compare equal.
		return Version{}, &InvalidVersionError{Arg: arg, Value: raw, Err: semver.ErrInvalidSemVer}
	}
	return Version{v: parsed}, nil
}

// MustParse is Parse for compile-time constants; it panics on error.
func MustParse(raw string) Version {
	v, err := Parse("", raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Normalize returns the canonical X.Y.Z[-pre] form of raw.
func Normalize(raw string) (string, error) {
	v, err := Parse("", raw)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// IsLatest reports whether raw is the "latest" sentinel.
func IsLatest(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), Latest)
}

// IsDev reports whether raw is a development build version.
func IsDev(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == "dev"
}

// IsZero reports whether v was never parsed.
func (v Version) IsZero() bool {
	return v.v == nil
}

// String returns the canonical form without a "v" prefix.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Compare returns -1, 0 or 1. The zero Version sorts before every release.
func (v Version) Compare(other Version) int {
	switch {
	case v.v == nil && other.v == nil:
		return 0
	case v.v == nil:
		return -1
	case other.v == nil:
		return 1
	}
	return v.v.Compare(other.v)
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Equal reports whether v and other denote the same release.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse("", string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
