package selector

import (
	"io/fs"
	"os"
	"path/filepath"
)

// System abstracts the filesystem reads the selector needs so tests can
// inject failures without touching permissions.
type System interface {
	Stat(name string) (os.FileInfo, error)
	Lstat(name string) (os.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	EvalSymlinks(path string) (string, error)
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Lstat returns a FileInfo describing the named file without following symlinks.
func (RealSystem) Lstat(name string) (os.FileInfo, error) {
	return os.Lstat(name)
}

// ReadDir returns the directory entries sorted by name.
func (RealSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// EvalSymlinks returns the path name after evaluating any symbolic links.
func (RealSystem) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}
