// Package fsutil holds filesystem helpers shared across packages.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/conn-castle/upshift/internal/messages"
)

var (
	osCreateTemp = os.CreateTemp
	osRename     = os.Rename
	osOpen       = os.Open
)

// WriteFileAtomic writes data to filename by writing a sibling temp file and
// renaming it into place. Readers observe either the old or the new contents.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := osCreateTemp(dir, "."+filepath.Base(filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.FsutilCreateTempFileFmt, filename, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf(messages.FsutilSetPermissionsFmt, filename, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf(messages.FsutilWriteTempFileFmt, filename, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf(messages.FsutilSyncTempFileFmt, filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.FsutilCloseTempFileFmt, filename, err)
	}
	if err := osRename(tmpName, filename); err != nil {
		return fmt.Errorf(messages.FsutilRenameTempFileFmt, filename, err)
	}
	committed = true
	return syncDir(dir)
}

// syncDir flushes the directory entry after a rename. Windows cannot fsync
// directories, so it is a no-op there.
func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := osOpen(dir)
	if err != nil {
		return fmt.Errorf(messages.FsutilOpenDirFmt, dir, err)
	}
	defer func() { _ = d.Close() }()
	if err := d.Sync(); err != nil {
		return fmt.Errorf(messages.FsutilSyncDirFmt, dir, err)
	}
	return nil
}
