// Package project inspects a JavaScript project to find the installed
// upshift version.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/version"
)

// ManifestName is the npm manifest file name.
const ManifestName = "package.json"

// ErrUnresolvableRange is returned when the package is listed with a range
// that does not name a single release, such as "2.x" or "workspace:*".
var ErrUnresolvableRange = errors.New("dependency range does not name a release")

// Source says where a detected version came from.
type Source string

const (
	// SourceInstalled is the version field of node_modules/<pkg>/package.json.
	SourceInstalled Source = "installed"
	// SourceManifest is the dependency range in the project's package.json.
	SourceManifest Source = "manifest"
)

// Detection is the result of looking up the installed version.
type Detection struct {
	Package string
	// Found is false when the package is not a dependency of the project.
	Found   bool
	Source  Source
	Raw     string
	Version version.Version
}

type manifest struct {
	Version          string            `json:"version"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

// Detect looks up pkg in the project at root.
func Detect(root string, pkg string) (Detection, error) {
	return DetectFS(os.DirFS(root), pkg)
}

// DetectFS looks up pkg in fsys. The installed copy under node_modules wins
// over the range declared in package.json.
func DetectFS(fsys fs.FS, pkg string) (Detection, error) {
	det := Detection{Package: pkg}

	installedPath := path.Join("node_modules", pkg, ManifestName)
	installed, ok, err := readManifest(fsys, installedPath)
	if err != nil {
		return det, err
	}
	if ok && strings.TrimSpace(installed.Version) != "" {
		v, err := version.Parse("installed", installed.Version)
		if err == nil {
			det.Found = true
			det.Source = SourceInstalled
			det.Raw = installed.Version
			det.Version = v
			return det, nil
		}
	}

	m, ok, err := readManifest(fsys, ManifestName)
	if err != nil || !ok {
		return det, err
	}
	raw, ok := lookupDependency(m, pkg)
	if !ok {
		return det, nil
	}
	det.Found = true
	det.Source = SourceManifest
	det.Raw = raw
	v, err := parseRange(raw)
	if err != nil {
		return det, fmt.Errorf("%w: "+messages.ProjectVersionRangeFmt, ErrUnresolvableRange, ManifestName, pkg, raw)
	}
	det.Version = v
	return det, nil
}

func readManifest(fsys fs.FS, name string) (manifest, bool, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return manifest{}, false, nil
		}
		return manifest{}, false, fmt.Errorf(messages.ProjectManifestReadFmt, name, err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return manifest{}, false, fmt.Errorf(messages.ProjectManifestInvalidFmt, name, err)
	}
	return m, true, nil
}

func lookupDependency(m manifest, pkg string) (string, bool) {
	for _, deps := range []map[string]string{m.Dependencies, m.DevDependencies, m.PeerDependencies} {
		if raw, ok := deps[pkg]; ok {
			return raw, true
		}
	}
	return "", false
}

// parseRange reduces a simple npm range to the lowest release it admits:
// "^2.4.0", "~2.4.0", ">=2.4.0", "=2.4.0" and "v2.4.0" all give 2.4.0.
func parseRange(raw string) (version.Version, error) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, "||") || strings.Contains(s, " - ") {
		return version.Version{}, ErrUnresolvableRange
	}
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}
	s = strings.TrimLeft(s, "^~>=")
	return version.Parse("package.json", s)
}
