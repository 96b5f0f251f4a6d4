// Package transform holds codemod definitions, the registry that owns them,
// and the engine that rewrites source text.
package transform

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/conn-castle/upshift/internal/messages"
)

// ID identifies one codemod. IDs are stable once published.
type ID string

// RuleKind selects how a Rule matches source text.
type RuleKind string

const (
	// RuleImportSource rewrites module specifiers in import/export/require.
	RuleImportSource RuleKind = "import_source"
	// RuleIdentifier renames an identifier token in code.
	RuleIdentifier RuleKind = "identifier"
	// RuleMember renames a property accessed with ".name".
	RuleMember RuleKind = "member"
	// RuleCall renames a call target, e.g. "new App(" -> "createApp(".
	RuleCall RuleKind = "call"
)

// Rule is one rewrite step inside a Definition.
type Rule struct {
	Kind RuleKind `json:"kind" yaml:"kind"`
	From string   `json:"from" yaml:"from"`
	To   string   `json:"to" yaml:"to"`
}

// Definition is a registered codemod. Definitions are values and are never
// mutated after registration.
type Definition struct {
	ID          ID     `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Rules       []Rule `json:"rules" yaml:"rules"`
}

// ErrUnknownTransform is wrapped by UnknownTransformError.
var ErrUnknownTransform = errors.New("unknown transform")

// UnknownTransformError reports a lookup for an unregistered ID.
type UnknownTransformError struct {
	ID ID
}

func (e *UnknownTransformError) Error() string {
	return fmt.Sprintf(messages.TransformUnknownFmt, e.ID)
}

// Unwrap returns ErrUnknownTransform.
func (e *UnknownTransformError) Unwrap() error {
	return ErrUnknownTransform
}

// Registry maps IDs to definitions. It is read-only after NewRegistry.
type Registry struct {
	defs map[ID]Definition
}

// NewRegistry validates defs and returns a registry owning copies of them.
func NewRegistry(defs ...Definition) (*Registry, error) {
	reg := &Registry{defs: make(map[ID]Definition, len(defs))}
	for _, def := range defs {
		if err := validateDefinition(def); err != nil {
			return nil, err
		}
		if _, exists := reg.defs[def.ID]; exists {
			return nil, fmt.Errorf(messages.TransformDuplicateFmt, def.ID)
		}
		def.Rules = append([]Rule(nil), def.Rules...)
		reg.defs[def.ID] = def
	}
	return reg, nil
}

// Lookup returns the definition for id.
func (r *Registry) Lookup(id ID) (Definition, error) {
	def, ok := r.defs[id]
	if !ok {
		return Definition{}, &UnknownTransformError{ID: id}
	}
	return def, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.defs[id]
	return ok
}

// IDs returns every registered ID in sorted order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// All returns every definition ordered by ID.
func (r *Registry) All() []Definition {
	ids := r.IDs()
	out := make([]Definition, 0, len(ids))
	for _, id := range ids {
		def := r.defs[id]
		def.Rules = append([]Rule(nil), def.Rules...)
		out = append(out, def)
	}
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}

func validateDefinition(def Definition) error {
	if strings.TrimSpace(string(def.ID)) == "" {
		return errors.New(messages.TransformIDRequired)
	}
	if strings.TrimSpace(def.Description) == "" {
		return fmt.Errorf(messages.TransformDescriptionReqFmt, def.ID)
	}
	if len(def.Rules) == 0 {
		return fmt.Errorf(messages.TransformRulesRequiredFmt, def.ID)
	}
	for idx, rule := range def.Rules {
		if err := validateRule(def.ID, idx, rule); err != nil {
			return err
		}
	}
	return nil
}

func validateRule(id ID, idx int, rule Rule) error {
	from := strings.TrimSpace(rule.From)
	to := strings.TrimSpace(rule.To)
	if from == "" || to == "" || from == to {
		return fmt.Errorf(messages.TransformRuleFromToFmt, id, idx, rule.Kind)
	}
	switch rule.Kind {
	case RuleImportSource:
		return nil
	case RuleIdentifier, RuleMember:
		for _, name := range []string{rule.From, rule.To} {
			if !isIdentifier(name) {
				return fmt.Errorf(messages.TransformRuleIdentifierFmt, id, idx, rule.Kind, name)
			}
		}
		return nil
	case RuleCall:
		// The target may carry a "new " prefix; every word must be an identifier.
		for _, name := range []string{rule.From, rule.To} {
			for _, word := range strings.Fields(name) {
				if !isIdentifier(word) {
					return fmt.Errorf(messages.TransformRuleIdentifierFmt, id, idx, rule.Kind, name)
				}
			}
		}
		return nil
	default:
		return fmt.Errorf(messages.TransformRuleKindFmt, id, idx, rule.Kind)
	}
}
