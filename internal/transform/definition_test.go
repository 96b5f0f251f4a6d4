package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDef(id ID) Definition {
	return Definition{
		ID:          id,
		Description: "rename a to b",
		Rules:       []Rule{{Kind: RuleIdentifier, From: "a", To: "b"}},
	}
}

func TestNewRegistry_LookupAndIDs(t *testing.T) {
	reg, err := NewRegistry(validDef("t2"), validDef("t1"))
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []ID{"t1", "t2"}, reg.IDs())
	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, ID("t2"), all[1].ID)
	assert.True(t, reg.Has("t1"))

	def, err := reg.Lookup("t2")
	require.NoError(t, err)
	assert.Equal(t, ID("t2"), def.ID)

	_, err = reg.Lookup("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTransform))
	var unknown *UnknownTransformError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, ID("missing"), unknown.ID)
}

func TestNewRegistry_OwnsRuleSlices(t *testing.T) {
	def := validDef("t1")
	reg, err := NewRegistry(def)
	require.NoError(t, err)
	def.Rules[0].To = "mutated"
	got, err := reg.Lookup("t1")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Rules[0].To)
}

func TestNewRegistry_Rejects(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
		want string
	}{
		{name: "duplicate", defs: []Definition{validDef("t1"), validDef("t1")}, want: "registered twice"},
		{name: "empty id", defs: []Definition{validDef(" ")}, want: "transform id is required"},
		{name: "no description", defs: []Definition{{ID: "x", Rules: validDef("x").Rules}}, want: "description is required"},
		{name: "no rules", defs: []Definition{{ID: "x", Description: "d"}}, want: "has no rules"},
		{name: "same from and to", defs: []Definition{{ID: "x", Description: "d", Rules: []Rule{{Kind: RuleIdentifier, From: "a", To: "a"}}}}, want: "distinct from and to"},
		{name: "bad identifier", defs: []Definition{{ID: "x", Description: "d", Rules: []Rule{{Kind: RuleMember, From: "a-b", To: "c"}}}}, want: "is not an identifier"},
		{name: "bad call word", defs: []Definition{{ID: "x", Description: "d", Rules: []Rule{{Kind: RuleCall, From: "new App()", To: "createApp"}}}}, want: "is not an identifier"},
		{name: "unknown kind", defs: []Definition{{ID: "x", Description: "d", Rules: []Rule{{Kind: "regex", From: "a", To: "b"}}}}, want: "unsupported kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.defs...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEngineFunc(t *testing.T) {
	engine := EngineFunc(func(src []byte, def Definition) ([]byte, error) {
		return append([]byte(string(def.ID)+":"), src...), nil
	})
	out, err := engine.Rewrite([]byte("x"), validDef("t"))
	require.NoError(t, err)
	assert.Equal(t, "t:x", string(out))
}

func TestFailure_Error(t *testing.T) {
	assert.Equal(t, "t1: line 3: boom", (&Failure{Transform: "t1", Line: 3, Message: "boom"}).Error())
	assert.Equal(t, "t1: boom", (&Failure{Transform: "t1", Message: "boom"}).Error())
}
