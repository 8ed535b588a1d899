// Package filesys provides the filesystem primitive ignitedb's segment
// layer needs for managing its data directory: idempotent directory
// creation, kept separate from internal/segment and pkg/seginfo so the
// "directory already exists" / "not a directory" distinction has one place
// to live instead of being reimplemented at every call site.
package filesys

import (
	"errors"
	"os"
)

// ErrIsNotDir is returned when a path that is expected to be a directory
// turns out to be a regular file.
var ErrIsNotDir = errors.New("path isn't a directory")

// CreateDir creates a directory at dirPath with the given permission.
//
// If the directory already exists:
//   - If force is true, it proceeds without error.
//   - If force is false, it returns the stat error unchanged.
//
// It returns ErrIsNotDir if the existing path is a regular file rather
// than a directory.
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	stat, err := os.Stat(dirPath)
	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}
	if !force && !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}
	return os.Chmod(dirPath, permission)
}
