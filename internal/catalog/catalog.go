// Package catalog maps releases to the codemods they introduce and resolves
// the codemods needed for an upgrade between two versions.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/upshift/internal/codemods"
	"github.com/conn-castle/upshift/internal/messages"
	"github.com/conn-castle/upshift/internal/transform"
	"github.com/conn-castle/upshift/internal/version"
)

//go:embed catalog.toml
var embeddedCatalog []byte

// ErrCatalogIntegrity is wrapped by every IntegrityError.
var ErrCatalogIntegrity = errors.New("catalog integrity error")

// IntegrityError reports a catalog that references unknown codemods or lists
// a codemod more than once. It is a build-time bug, never a per-run condition.
type IntegrityError struct {
	Version   string
	Transform transform.ID
	Reason    string
}

func (e *IntegrityError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf(messages.CatalogIntegrityFmt, e.Reason)
	}
	return fmt.Sprintf(messages.CatalogIntegrityReleaseFmt, e.Version, e.Reason)
}

// Unwrap returns ErrCatalogIntegrity.
func (e *IntegrityError) Unwrap() error {
	return ErrCatalogIntegrity
}

// Entry is one release and the codemods that must run when upgrading through it.
type Entry struct {
	Version    version.Version `json:"version" yaml:"version"`
	Transforms []transform.ID  `json:"transforms" yaml:"transforms"`
}

// Catalog is the validated, version-ordered release table. It is read-only.
type Catalog struct {
	entries  []Entry
	owners   map[transform.ID]version.Version
	registry *transform.Registry
}

type catalogFile struct {
	Releases []releaseFile `toml:"release"`
}

type releaseFile struct {
	Version    string   `toml:"version"`
	Transforms []string `toml:"transforms"`
}

// Default loads the embedded catalog against the built-in codemods.
func Default() (*Catalog, error) {
	registry, err := codemods.Registry()
	if err != nil {
		return nil, &IntegrityError{Reason: err.Error()}
	}
	return Load(embeddedCatalog, registry)
}

// Load decodes a TOML catalog and validates it against registry.
func Load(data []byte, registry *transform.Registry) (*Catalog, error) {
	var file catalogFile
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, &IntegrityError{Reason: fmt.Errorf(messages.CatalogDecodeFmt, err).Error()}
	}
	entries := make([]Entry, 0, len(file.Releases))
	for _, release := range file.Releases {
		v, err := version.Parse("", release.Version)
		if err != nil {
			return nil, &IntegrityError{Version: release.Version, Reason: fmt.Sprintf(messages.CatalogInvalidVersionFmt, release.Version, err)}
		}
		ids := make([]transform.ID, 0, len(release.Transforms))
		for _, id := range release.Transforms {
			ids = append(ids, transform.ID(id))
		}
		entries = append(entries, Entry{Version: v, Transforms: ids})
	}
	return New(entries, registry)
}

// New validates entries against registry and returns a catalog sorted by
// version. Every referenced ID must be registered and owned by exactly one
// entry.
func New(entries []Entry, registry *transform.Registry) (*Catalog, error) {
	if registry == nil {
		return nil, errors.New(messages.MigrateRegistryRequired)
	}
	if len(entries) == 0 {
		return nil, &IntegrityError{Reason: messages.CatalogEmpty}
	}
	sorted := make([]Entry, len(entries))
	for i, entry := range entries {
		sorted[i] = Entry{Version: entry.Version, Transforms: append([]transform.ID(nil), entry.Transforms...)}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Version.Less(sorted[j].Version)
	})

	owners := make(map[transform.ID]version.Version)
	for i, entry := range sorted {
		release := entry.Version.String()
		if i > 0 && sorted[i-1].Version.Equal(entry.Version) {
			return nil, &IntegrityError{Version: release, Reason: fmt.Sprintf(messages.CatalogDuplicateVersionFmt, release)}
		}
		seen := make(map[transform.ID]struct{}, len(entry.Transforms))
		for _, id := range entry.Transforms {
			if strings.TrimSpace(string(id)) == "" {
				return nil, &IntegrityError{Version: release, Reason: fmt.Sprintf(messages.CatalogEmptyTransformIDFmt, release)}
			}
			if _, dup := seen[id]; dup {
				return nil, &IntegrityError{Version: release, Transform: id, Reason: fmt.Sprintf(messages.CatalogDuplicateInEntryFmt, id, release)}
			}
			seen[id] = struct{}{}
			if owner, owned := owners[id]; owned {
				return nil, &IntegrityError{Version: release, Transform: id, Reason: fmt.Sprintf(messages.CatalogDuplicateOwnerFmt, id, owner, release)}
			}
			if !registry.Has(id) {
				return nil, &IntegrityError{Version: release, Transform: id, Reason: fmt.Sprintf(messages.CatalogUnknownTransformFmt, release, id)}
			}
			owners[id] = entry.Version
		}
	}
	return &Catalog{entries: sorted, owners: owners, registry: registry}, nil
}

// Entries returns a copy of the releases in ascending version order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, entry := range c.entries {
		out[i] = Entry{Version: entry.Version, Transforms: append([]transform.ID(nil), entry.Transforms...)}
	}
	return out
}

// Latest returns the newest release version.
func (c *Catalog) Latest() version.Version {
	return c.entries[len(c.entries)-1].Version
}

// Owner returns the release that introduced id.
func (c *Catalog) Owner(id transform.ID) (version.Version, bool) {
	v, ok := c.owners[id]
	return v, ok
}

// Registry returns the registry the catalog was validated against.
func (c *Catalog) Registry() *transform.Registry {
	return c.registry
}

// Definitions looks up every id in order.
func (c *Catalog) Definitions(ids []transform.ID) ([]transform.Definition, error) {
	defs := make([]transform.Definition, 0, len(ids))
	for _, id := range ids {
		def, err := c.registry.Lookup(id)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Release is a catalog entry with its codemods resolved, for display.
type Release struct {
	Version  string                 `json:"version" yaml:"version"`
	Codemods []transform.Definition `json:"codemods" yaml:"codemods"`
}

// Releases returns every release in ascending version order with the full
// definition of each codemod it introduces.
func (c *Catalog) Releases() []Release {
	out := make([]Release, 0, len(c.entries))
	for _, entry := range c.entries {
		defs, err := c.Definitions(entry.Transforms)
		if err != nil {
			// New rejects unregistered ids, so this is unreachable for a valid catalog.
			continue
		}
		out = append(out, Release{Version: entry.Version.String(), Codemods: defs})
	}
	return out
}
