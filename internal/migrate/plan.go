package migrate

import (
	"github.com/conn-castle/upshift/internal/catalog"
	"github.com/conn-castle/upshift/internal/transform"
)

// Plan is the resolved, ordered list of codemods for an upgrade.
type Plan struct {
	From       string             `json:"from" yaml:"from"`
	To         string             `json:"to" yaml:"to"`
	Transforms []TransformSummary `json:"transforms" yaml:"transforms"`

	defs []transform.Definition
}

// Resolve computes the plan for upgrading from one version to another
// without touching the filesystem.
func Resolve(cat *catalog.Catalog, from string, to string) (*Plan, error) {
	r, err := cat.ResolveRange(from, to)
	if err != nil {
		return nil, err
	}
	defs, err := cat.Definitions(r.Transforms)
	if err != nil {
		return nil, err
	}
	plan := &Plan{
		From:       r.From.String(),
		To:         r.To.String(),
		Transforms: make([]TransformSummary, 0, len(defs)),
		defs:       defs,
	}
	for _, def := range defs {
		summary := TransformSummary{ID: def.ID, Description: def.Description}
		if owner, ok := cat.Owner(def.ID); ok {
			summary.Release = owner.String()
		}
		plan.Transforms = append(plan.Transforms, summary)
	}
	return plan, nil
}
