package catalog

import (
	"strings"

	"github.com/conn-castle/upshift/internal/transform"
	"github.com/conn-castle/upshift/internal/version"
)

// Range is a resolved upgrade path.
type Range struct {
	// From is the zero Version when the installed version is unknown.
	From       version.Version `json:"from" yaml:"from"`
	To         version.Version `json:"to" yaml:"to"`
	Transforms []transform.ID  `json:"transforms" yaml:"transforms"`
}

// Resolve returns the codemods introduced by releases in (from, to], in
// ascending release order without duplicates. An empty from means the
// earliest known version; to may be "latest".
func (c *Catalog) Resolve(from string, to string) ([]transform.ID, error) {
	r, err := c.ResolveRange(from, to)
	if err != nil {
		return nil, err
	}
	return r.Transforms, nil
}

// ResolveRange is Resolve, also reporting the parsed bounds.
func (c *Catalog) ResolveRange(from string, to string) (Range, error) {
	fromVersion, err := c.parseBound("from", from, true)
	if err != nil {
		return Range{}, err
	}
	toVersion, err := c.parseBound("to", to, false)
	if err != nil {
		return Range{}, err
	}
	out := Range{From: fromVersion, To: toVersion, Transforms: []transform.ID{}}
	if fromVersion.Compare(toVersion) >= 0 {
		return out, nil
	}

	seen := make(map[transform.ID]struct{})
	for _, entry := range c.entries {
		if entry.Version.Compare(fromVersion) <= 0 {
			continue
		}
		if entry.Version.Compare(toVersion) > 0 {
			break
		}
		for _, id := range entry.Transforms {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out.Transforms = append(out.Transforms, id)
		}
	}
	return out, nil
}

func (c *Catalog) parseBound(arg string, raw string, emptyIsEarliest bool) (version.Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" && emptyIsEarliest {
		return version.Version{}, nil
	}
	if version.IsLatest(trimmed) {
		return c.Latest(), nil
	}
	return version.Parse(arg, trimmed)
}
