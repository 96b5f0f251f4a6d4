package selector

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/upshift/internal/testutil"
)

func relPaths(tasks []FileTask) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.RelPath)
	}
	return out
}

func TestSelect_DefaultsFilterAndSort(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"src/b.ts":                 "b",
		"src/a.js":                 "a",
		"src/styles.css":           "css",
		"src/nested/c.TSX":         "c",
		"index.mjs":                "i",
		"node_modules/pkg/x.js":    "dep",
		"dist/bundle.js":           "out",
		".git/hooks/pre-commit.js": "hook",
		"README.md":                "docs",
	})

	result, err := Select(context.Background(), RealSystem{}, root, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"index.mjs", "src/a.js", "src/b.ts", "src/nested/c.TSX"}, relPaths(result.Tasks))
	assert.Empty(t, result.Skipped)

	first := result.Tasks[1]
	assert.Equal(t, filepath.Join(root, "src", "a.js"), first.Path)
	assert.Equal(t, "a", string(first.Contents))
	assert.Equal(t, fs.FileMode(0o644), first.Mode)
}

func TestSelect_Deterministic(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"z.js", "a/b.js", "a.js", "m/n/o.ts", "a-b.js"} {
		files[name] = name
	}
	testutil.WriteTree(t, root, files)

	first, err := Select(context.Background(), RealSystem{}, root, DefaultOptions())
	require.NoError(t, err)
	second, err := Select(context.Background(), RealSystem{}, root, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, relPaths(first.Tasks), relPaths(second.Tasks))
	assert.Equal(t, []string{"a-b.js", "a.js", "a/b.js", "m/n/o.ts", "z.js"}, relPaths(first.Tasks))
}

func TestSelect_OptionsOverrideDefaults(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"src/a.js":            "a",
		"src/a.vue":           "v",
		"src/legacy/old.js":   "old",
		"src/gen/api.gen.js":  "gen",
		"vendor/lib.js":       "vendor",
		"node_modules/pkg.js": "dep",
	})
	opts := Options{
		Extensions:  []string{"js", ".VUE"},
		IgnoredDirs: []string{"vendor"},
		Exclude:     []string{"src/legacy/**", "**/*.gen.js"},
	}
	result, err := Select(context.Background(), RealSystem{}, root, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"node_modules/pkg.js", "src/a.js", "src/a.vue"}, relPaths(result.Tasks))
}

func TestSelect_InvalidExcludePattern(t *testing.T) {
	_, err := Select(context.Background(), RealSystem{}, t.TempDir(), Options{Extensions: []string{".js"}, Exclude: []string{"src/[a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid glob")
}

func TestSelect_TooLargeIsSkipped(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"big.js": "0123456789", "small.js": "1"})
	opts := DefaultOptions()
	opts.MaxFileBytes = 5
	result, err := Select(context.Background(), RealSystem{}, root, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"small.js"}, relPaths(result.Tasks))
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "big.js", result.Skipped[0].RelPath)
	assert.Equal(t, SkipTooLarge, result.Skipped[0].Reason)
}

type failingReadSystem struct {
	RealSystem
	failRel string
	root    string
}

func (s failingReadSystem) ReadFile(name string) ([]byte, error) {
	if name == filepath.Join(s.root, filepath.FromSlash(s.failRel)) {
		return nil, fs.ErrPermission
	}
	return s.RealSystem.ReadFile(name)
}

func TestSelect_UnreadableFileIsSkippedNotFatal(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"a.js": "a", "b.js": "b", "c.js": "c"})
	abs, err := filepath.Abs(root)
	require.NoError(t, err)
	sys := failingReadSystem{failRel: "b.js", root: abs}

	result, err := Select(context.Background(), sys, root, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.js", "c.js"}, relPaths(result.Tasks))
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, SkipIOError, result.Skipped[0].Reason)
	assert.Contains(t, result.Skipped[0].Message, "permission denied")
}

func TestSelect_RootErrors(t *testing.T) {
	_, err := Select(context.Background(), RealSystem{}, filepath.Join(t.TempDir(), "missing"), DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRootUnreadable))

	file := filepath.Join(t.TempDir(), "file.js")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = Select(context.Background(), RealSystem{}, file, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRootUnreadable))

	_, err = Select(context.Background(), RealSystem{}, " ", DefaultOptions())
	require.Error(t, err)
	_, err = Select(context.Background(), nil, t.TempDir(), DefaultOptions())
	require.Error(t, err)
}

func TestSelect_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on windows")
	}
	root := t.TempDir()
	outside := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"src/a.js": "a"})
	testutil.WriteTree(t, outside, map[string]string{"shared.js": "s"})
	require.NoError(t, os.Symlink(filepath.Join(outside, "shared.js"), filepath.Join(root, "src", "link.js")))
	require.NoError(t, os.Symlink(root, filepath.Join(root, "src", "loop")))

	result, err := Select(context.Background(), RealSystem{}, root, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.js"}, relPaths(result.Tasks))

	opts := DefaultOptions()
	opts.FollowSymlinks = true
	result, err = Select(context.Background(), RealSystem{}, root, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.js", "src/link.js"}, relPaths(result.Tasks))
}

func TestSelect_FollowedLinksResolveAndDedupe(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on windows")
	}
	root := t.TempDir()
	outside := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"src/real.js": "r"})
	testutil.WriteTree(t, outside, map[string]string{"shared.js": "s"})
	require.NoError(t, os.Symlink("real.js", filepath.Join(root, "src", "alias.js")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "shared.js"), filepath.Join(root, "src", "shared.js")))

	opts := DefaultOptions()
	opts.FollowSymlinks = true
	result, err := Select(context.Background(), RealSystem{}, root, opts)
	require.NoError(t, err)
	require.Equal(t, []string{"src/real.js", "src/shared.js"}, relPaths(result.Tasks))

	wantReal, err := filepath.EvalSymlinks(filepath.Join(root, "src", "real.js"))
	require.NoError(t, err)
	assert.Equal(t, wantReal, result.Tasks[0].WritePath())

	wantShared, err := filepath.EvalSymlinks(filepath.Join(outside, "shared.js"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "shared.js"), result.Tasks[1].Path)
	assert.Equal(t, wantShared, result.Tasks[1].WritePath())
}

func TestDedupeTargets_PrefersDirectPath(t *testing.T) {
	entries := []walkEntry{
		{rel: "a/link.js", real: "/r/z.js", viaLink: true},
		{rel: "b.js", real: "/r/b.js"},
		{rel: "broken.js", skip: &Skip{RelPath: "broken.js", Reason: SkipIOError}},
		{rel: "z.js", real: "/r/z.js"},
	}
	got := dedupeTargets(entries)
	rels := make([]string, 0, len(got))
	for _, e := range got {
		rels = append(rels, e.rel)
	}
	assert.Equal(t, []string{"b.js", "broken.js", "z.js"}, rels)
}

func TestStream_CancelledContext(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"a.js": "a", "b.js": "b"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	candidates, errCh := Stream(ctx, RealSystem{}, root, DefaultOptions())
	for range candidates {
	}
	err := <-errCh
	// The buffered channel may accept every candidate before the goroutine
	// observes cancellation; both outcomes are valid.
	if err != nil {
		assert.True(t, errors.Is(err, context.Canceled))
	}
}
