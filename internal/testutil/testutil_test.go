package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTreeAndReadTreeRoundTrip(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"index.js":         "console.log(1)\n",
		"src/app/main.ts":  "export {}\n",
		"src/app/empty.js": "",
	}
	WriteTree(t, root, files)

	info, err := os.Stat(filepath.Join(root, "src", "app", "main.ts"))
	if err != nil {
		t.Fatalf("stat written file: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("expected mode 0644, got %#o", info.Mode().Perm())
	}

	got := ReadTree(t, root)
	if len(got) != len(files) {
		t.Fatalf("expected %d files, got %d: %v", len(files), len(got), got)
	}
	for rel, want := range files {
		if got[rel] != want {
			t.Fatalf("file %s: expected %q, got %q", rel, want, got[rel])
		}
	}
}

func TestWithWorkingDirRunsInTargetDirectoryAndRestoresOriginal(t *testing.T) {
	targetDir := t.TempDir()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd before test: %v", err)
	}

	var observedDir string
	WithWorkingDir(t, targetDir, func() {
		wd, innerErr := os.Getwd()
		if innerErr != nil {
			t.Fatalf("getwd inside callback: %v", innerErr)
		}
		observedDir = wd
	})

	targetReal, err := filepath.EvalSymlinks(targetDir)
	if err != nil {
		targetReal = targetDir
	}
	observedReal, err := filepath.EvalSymlinks(observedDir)
	if err != nil {
		observedReal = observedDir
	}
	if observedReal != targetReal {
		t.Fatalf("expected callback cwd %q (real %q), got %q (real %q)", targetDir, targetReal, observedDir, observedReal)
	}

	finalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd after callback: %v", err)
	}
	origReal, err := filepath.EvalSymlinks(origDir)
	if err != nil {
		origReal = origDir
	}
	finalReal, err := filepath.EvalSymlinks(finalDir)
	if err != nil {
		finalReal = finalDir
	}
	if finalReal != origReal {
		t.Fatalf("expected cwd restored to %q (real %q), got %q (real %q)", origDir, origReal, finalDir, finalReal)
	}
}
