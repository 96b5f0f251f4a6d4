package project

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/upshift/internal/testutil"
)

func TestDetectFS(t *testing.T) {
	tests := []struct {
		name   string
		files  fstest.MapFS
		found  bool
		source Source
		want   string
	}{
		{
			name:  "no manifest",
			files: fstest.MapFS{},
		},
		{
			name:  "not a dependency",
			files: fstest.MapFS{"package.json": {Data: []byte(`{"dependencies":{"react":"^18.0.0"}}`)}},
		},
		{
			name:   "caret range",
			files:  fstest.MapFS{"package.json": {Data: []byte(`{"dependencies":{"upshift":"^2.4.0"}}`)}},
			found:  true,
			source: SourceManifest,
			want:   "2.4.0",
		},
		{
			name:   "dev dependency with comparator",
			files:  fstest.MapFS{"package.json": {Data: []byte(`{"devDependencies":{"upshift":">=1.0.0 <3.0.0"}}`)}},
			found:  true,
			source: SourceManifest,
			want:   "1.0.0",
		},
		{
			name: "installed copy wins",
			files: fstest.MapFS{
				"package.json":                      {Data: []byte(`{"dependencies":{"upshift":"^2.0.0"}}`)},
				"node_modules/upshift/package.json": {Data: []byte(`{"name":"upshift","version":"2.4.1"}`)},
			},
			found:  true,
			source: SourceInstalled,
			want:   "2.4.1",
		},
		{
			name: "invalid installed version falls back to manifest",
			files: fstest.MapFS{
				"package.json":                      {Data: []byte(`{"dependencies":{"upshift":"~3.0.0-beta.1"}}`)},
				"node_modules/upshift/package.json": {Data: []byte(`{"version":"banana"}`)},
			},
			found:  true,
			source: SourceManifest,
			want:   "3.0.0-beta.1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det, err := DetectFS(tt.files, "upshift")
			require.NoError(t, err)
			assert.Equal(t, tt.found, det.Found)
			assert.Equal(t, tt.source, det.Source)
			assert.Equal(t, tt.want, det.Version.String())
		})
	}
}

func TestDetectFS_ScopedPackage(t *testing.T) {
	files := fstest.MapFS{
		"node_modules/@upshift/core/package.json": {Data: []byte(`{"version":"2.0.0"}`)},
	}
	det, err := DetectFS(files, "@upshift/core")
	require.NoError(t, err)
	assert.True(t, det.Found)
	assert.Equal(t, "2.0.0", det.Version.String())
}

func TestDetectFS_UnresolvableRange(t *testing.T) {
	for _, raw := range []string{"2.x", "workspace:*", "latest", "^1.0.0 || ^2.0.0"} {
		files := fstest.MapFS{"package.json": {Data: []byte(`{"dependencies":{"upshift":"` + raw + `"}}`)}}
		det, err := DetectFS(files, "upshift")
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, ErrUnresolvableRange), raw)
		assert.True(t, det.Found)
		assert.Equal(t, raw, det.Raw)
		assert.True(t, det.Version.IsZero())
	}
}

func TestDetectFS_InvalidManifest(t *testing.T) {
	files := fstest.MapFS{"package.json": {Data: []byte(`{"dependencies":`)}}
	_, err := DetectFS(files, "upshift")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid package.json")
	assert.False(t, errors.Is(err, ErrUnresolvableRange))
}

func TestDetect_OnDisk(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"package.json": `{"name":"app","dependencies":{"upshift":"1.0.0"}}`,
	})
	det, err := Detect(root, "upshift")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", det.Version.String())
}
