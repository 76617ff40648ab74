// Package fsutil holds the file system helpers shared by kitctl: atomic
// writes for the journal and config, content hashes for the restart watcher,
// and the per-user cache, config and state directories.
package fsutil

import (
	"os"
	"path/filepath"
)

// EnsureDir creates path and its parents with DirModeDefault. It fails when
// path exists and is not a directory.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// EnsureFileDir creates the directory that will hold filePath.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}
