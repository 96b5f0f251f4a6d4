package migrate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/upshift/internal/transform"
	"github.com/conn-castle/upshift/internal/version"
)

func TestResolve_OrdersTransformsWithReleases(t *testing.T) {
	plan, err := Resolve(scenarioCatalog(t), "", "latest")
	require.NoError(t, err)

	assert.Equal(t, "", plan.From)
	assert.Equal(t, "2.0.0", plan.To)
	assert.Equal(t, []TransformSummary{
		{ID: "T1", Release: "1.0.0", Description: "rename foo"},
		{ID: "T2", Release: "2.0.0", Description: "rename baz"},
		{ID: "T3", Release: "2.0.0", Description: "rename old member"},
	}, plan.Transforms)
	require.Len(t, plan.defs, 3)
	assert.Equal(t, transform.ID("T3"), plan.defs[2].ID)
}

func TestResolve_EmptyWhenAlreadyAtTarget(t *testing.T) {
	plan, err := Resolve(scenarioCatalog(t), "2.0.0", "1.0.0")
	require.NoError(t, err)
	assert.Empty(t, plan.Transforms)
}

func TestResolve_InvalidTarget(t *testing.T) {
	_, err := Resolve(scenarioCatalog(t), "1.0.0", "two")
	var invalid *version.InvalidVersionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "to", invalid.Arg)
}
