// Package selector walks a project tree and yields the source files a run
// should transform.
package selector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/conn-castle/upshift/internal/messages"
)

// DefaultMaxFileBytes is the size above which files are skipped.
const DefaultMaxFileBytes int64 = 2 << 20

// ErrRootUnreadable is returned when the project root cannot be walked.
var ErrRootUnreadable = errors.New("project root is unreadable")

// DefaultExtensions lists the source suffixes selected when none are configured.
func DefaultExtensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}
}

// DefaultIgnoredDirs lists dependency and build output directories never descended into.
func DefaultIgnoredDirs() []string {
	return []string{"node_modules", ".git", "dist", "build", "out", "coverage", ".next", ".cache"}
}

// Options controls file selection.
type Options struct {
	Extensions     []string
	IgnoredDirs    []string
	Exclude        []string
	FollowSymlinks bool
	MaxFileBytes   int64
}

// DefaultOptions returns the default selection options.
func DefaultOptions() Options {
	return Options{
		Extensions:   DefaultExtensions(),
		IgnoredDirs:  DefaultIgnoredDirs(),
		MaxFileBytes: DefaultMaxFileBytes,
	}
}

// SkipReason explains why a file was not turned into a task.
type SkipReason string

const (
	// SkipIOError means the file or directory could not be read.
	SkipIOError SkipReason = "io_error"
	// SkipTooLarge means the file exceeds Options.MaxFileBytes.
	SkipTooLarge SkipReason = "too_large"
)

// FileTask is one selected file and its contents at selection time.
type FileTask struct {
	Path     string
	RelPath  string
	Contents []byte
	Mode     fs.FileMode

	// RealPath is Path with symlinks resolved. Writes go here so that a
	// followed link keeps pointing at its rewritten target.
	RealPath string
}

// WritePath returns the file a rewrite of t must replace.
func (t FileTask) WritePath() string {
	if t.RealPath != "" {
		return t.RealPath
	}
	return t.Path
}

// Skip records a file the selector could not hand out.
type Skip struct {
	Path    string     `json:"path" yaml:"path"`
	RelPath string     `json:"rel_path" yaml:"rel_path"`
	Reason  SkipReason `json:"reason" yaml:"reason"`
	Message string     `json:"message,omitempty" yaml:"message,omitempty"`
}

// Candidate is one element of the selection stream: either a Task or a Skip.
type Candidate struct {
	Task *FileTask
	Skip *Skip
}

// Result is the materialized selection.
type Result struct {
	Tasks   []FileTask
	Skipped []Skip
}

type matcher struct {
	extensions map[string]struct{}
	ignored    map[string]struct{}
	exclude    []string
}

func newMatcher(opts Options) (matcher, error) {
	m := matcher{
		extensions: make(map[string]struct{}, len(opts.Extensions)),
		ignored:    make(map[string]struct{}, len(opts.IgnoredDirs)),
	}
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		m.extensions[ext] = struct{}{}
	}
	for _, dir := range opts.IgnoredDirs {
		if dir = strings.TrimSpace(dir); dir != "" {
			m.ignored[dir] = struct{}{}
		}
	}
	for _, pattern := range opts.Exclude {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return matcher{}, fmt.Errorf(messages.ConfigExcludeInvalidFmt, "--exclude", pattern)
		}
		m.exclude = append(m.exclude, pattern)
	}
	return m, nil
}

func (m matcher) excluded(rel string) bool {
	for _, pattern := range m.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (m matcher) wantsFile(rel string) bool {
	if _, ok := m.extensions[strings.ToLower(filepath.Ext(rel))]; !ok {
		return false
	}
	return !m.excluded(rel)
}

func (m matcher) wantsDir(name string, rel string) bool {
	if _, ignored := m.ignored[name]; ignored {
		return false
	}
	return !m.excluded(rel)
}

// Select walks root and returns every selected file in path order together
// with the files that had to be skipped.
func Select(ctx context.Context, sys System, root string, opts Options) (Result, error) {
	candidates, errCh := Stream(ctx, sys, root, opts)
	var result Result
	for c := range candidates {
		if c.Task != nil {
			result.Tasks = append(result.Tasks, *c.Task)
			continue
		}
		result.Skipped = append(result.Skipped, *c.Skip)
	}
	if err := <-errCh; err != nil {
		return Result{}, err
	}
	return result, nil
}

// Stream walks root and yields candidates lazily, sorted by slash-separated
// relative path. File contents are read only as each candidate is sent.
// errCh receives a single error (nil on success) after candidates closes.
func Stream(ctx context.Context, sys System, root string, opts Options) (<-chan Candidate, <-chan error) {
	out := make(chan Candidate, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		defer close(out)
		entries, err := collect(sys, root, opts)
		if err != nil {
			errCh <- err
			return
		}
		maxBytes := opts.MaxFileBytes
		if maxBytes <= 0 {
			maxBytes = DefaultMaxFileBytes
		}
		for _, entry := range entries {
			c := entry.load(sys, maxBytes)
			select {
			case out <- c:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		errCh <- nil
	}()

	return out, errCh
}

// walkEntry is a path found during the walk, before its contents are read.
type walkEntry struct {
	path string
	rel  string
	info fs.FileInfo
	// real is the resolved path; viaLink is set when a symlink was crossed
	// to reach the entry.
	real    string
	viaLink bool
	// skip is set when the entry already failed during the walk.
	skip *Skip
}

func (e walkEntry) load(sys System, maxBytes int64) Candidate {
	if e.skip != nil {
		return Candidate{Skip: e.skip}
	}
	if e.info.Size() > maxBytes {
		return Candidate{Skip: &Skip{Path: e.path, RelPath: e.rel, Reason: SkipTooLarge, Message: fmt.Sprintf("%d bytes", e.info.Size())}}
	}
	data, err := sys.ReadFile(e.path)
	if err != nil {
		return Candidate{Skip: &Skip{Path: e.path, RelPath: e.rel, Reason: SkipIOError, Message: fmt.Errorf(messages.RunnerReadFailedFmt, e.rel, err).Error()}}
	}
	return Candidate{Task: &FileTask{Path: e.path, RelPath: e.rel, Contents: data, Mode: e.info.Mode().Perm(), RealPath: e.real}}
}

func collect(sys System, root string, opts Options) ([]walkEntry, error) {
	if sys == nil {
		return nil, errors.New(messages.SelectorSystemRequired)
	}
	if strings.TrimSpace(root) == "" {
		return nil, errors.New(messages.SelectorRootRequired)
	}
	m, err := newMatcher(opts)
	if err != nil {
		return nil, err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf(messages.SelectorRootUnreadableFmt, root, errors.Join(ErrRootUnreadable, err))
	}
	info, err := sys.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf(messages.SelectorRootUnreadableFmt, absRoot, errors.Join(ErrRootUnreadable, err))
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: "+messages.SelectorRootNotDirFmt, ErrRootUnreadable, absRoot)
	}
	if _, err := sys.ReadDir(absRoot); err != nil {
		return nil, fmt.Errorf(messages.SelectorRootUnreadableFmt, absRoot, errors.Join(ErrRootUnreadable, err))
	}

	w := &walker{sys: sys, root: absRoot, opts: opts, m: m, visited: make(map[string]struct{})}
	if real, err := sys.EvalSymlinks(absRoot); err == nil {
		w.visited[real] = struct{}{}
	}
	w.walkDir(absRoot, "", false)
	sort.SliceStable(w.entries, func(i, j int) bool {
		return w.entries[i].rel < w.entries[j].rel
	})
	return dedupeTargets(w.entries), nil
}

// dedupeTargets keeps one entry per underlying file, preferring a path that
// crosses no symlink, then the first in path order.
func dedupeTargets(entries []walkEntry) []walkEntry {
	keep := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.skip != nil || e.real == "" {
			continue
		}
		j, seen := keep[e.real]
		if !seen || (entries[j].viaLink && !e.viaLink) {
			keep[e.real] = i
		}
	}
	out := make([]walkEntry, 0, len(keep))
	for i, e := range entries {
		if e.skip == nil && e.real != "" && keep[e.real] != i {
			continue
		}
		out = append(out, e)
	}
	return out
}

type walker struct {
	sys     System
	root    string
	opts    Options
	m       matcher
	visited map[string]struct{}
	entries []walkEntry
}

func (w *walker) walkDir(dir string, rel string, viaLink bool) {
	children, err := w.sys.ReadDir(dir)
	if err != nil {
		w.entries = append(w.entries, walkEntry{path: dir, rel: rel, skip: &Skip{
			Path: dir, RelPath: rel, Reason: SkipIOError, Message: err.Error(),
		}})
		return
	}
	for _, child := range children {
		childPath := filepath.Join(dir, child.Name())
		childRel := child.Name()
		if rel != "" {
			childRel = rel + "/" + child.Name()
		}
		w.visit(child, childPath, childRel, viaLink)
	}
}

func (w *walker) visit(child fs.DirEntry, path string, rel string, viaLink bool) {
	mode := child.Type()
	if mode&fs.ModeSymlink != 0 {
		if !w.opts.FollowSymlinks {
			return
		}
		w.visitSymlink(child.Name(), path, rel)
		return
	}
	if child.IsDir() {
		if w.m.wantsDir(child.Name(), rel) {
			w.walkDir(path, rel, viaLink)
		}
		return
	}
	if !mode.IsRegular() || !w.m.wantsFile(rel) {
		return
	}
	info, err := child.Info()
	if err != nil {
		w.addSkip(path, rel, err)
		return
	}
	w.addFile(path, rel, info, viaLink)
}

// addFile records a selected file. With FollowSymlinks on, the resolved path
// becomes the write target.
func (w *walker) addFile(path string, rel string, info fs.FileInfo, viaLink bool) {
	real := path
	if w.opts.FollowSymlinks {
		resolved, err := w.sys.EvalSymlinks(path)
		if err != nil {
			w.addSkip(path, rel, err)
			return
		}
		real = resolved
	}
	w.entries = append(w.entries, walkEntry{path: path, rel: rel, info: info, real: real, viaLink: viaLink})
}

func (w *walker) addSkip(path string, rel string, err error) {
	w.entries = append(w.entries, walkEntry{path: path, rel: rel, skip: &Skip{
		Path: path, RelPath: rel, Reason: SkipIOError, Message: err.Error(),
	}})
}

func (w *walker) visitSymlink(name string, path string, rel string) {
	info, err := w.sys.Stat(path)
	if err != nil {
		if w.m.wantsFile(rel) {
			w.addSkip(path, rel, err)
		}
		return
	}
	if info.IsDir() {
		if !w.m.wantsDir(name, rel) {
			return
		}
		real, err := w.sys.EvalSymlinks(path)
		if err != nil {
			return
		}
		if _, seen := w.visited[real]; seen {
			return
		}
		w.visited[real] = struct{}{}
		w.walkDir(path, rel, true)
		return
	}
	if info.Mode().IsRegular() && w.m.wantsFile(rel) {
		w.addFile(path, rel, info, true)
	}
}
