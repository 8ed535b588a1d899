// Package errors provides ignitedb's error taxonomy: a fluent baseError
// plus StorageError, IndexError, and ValidationError, each carrying the
// domain-specific context (segment id, offset, key, field) a caller needs
// to classify and log a failure without parsing a message string.
package errors

import (
	"os"
	"syscall"
)

// ClassifyDirectoryCreationError inspects a directory-creation failure and
// returns a StorageError carrying the most specific code it can determine
// (permission denied, disk full, read-only filesystem, or generic I/O).
func ClassifyDirectoryCreationError(err error, path string) error {
	if os.IsPermission(err) {
		return NewStorageError(
			err, ErrorCodePermissionDenied,
			"insufficient permissions to create data directory",
		).WithPath(path).WithDetail("operation", "directory_creation")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull,
					"insufficient disk space to create data directory",
				).WithPath(path).WithDetail("operation", "directory_creation")
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly,
					"cannot create directory on read-only filesystem",
				).WithPath(path).WithDetail("operation", "directory_creation")
			}
		}
	}

	return NewStorageError(
		err, ErrorCodeIO, "failed to create data directory",
	).WithPath(path).WithDetail("operation", "directory_creation")
}

// ClassifyFileOpenError inspects a segment file open failure and returns a
// StorageError carrying the most specific code it can determine.
func ClassifyFileOpenError(err error, filePath, fileName string) error {
	if os.IsPermission(err) {
		return NewStorageError(
			err, ErrorCodePermissionDenied,
			"insufficient permissions to open segment file",
		).WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull,
					"insufficient disk space to create segment file",
				).WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly,
					"cannot create segment file on read-only filesystem",
				).WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to open segment file").
		WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
}

// ClassifySyncError inspects a segment file sync failure and returns a
// StorageError carrying the most specific code it can determine.
func ClassifySyncError(err error, fileName, filePath string, offset int) error {
	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull, "cannot sync file: insufficient disk space",
				).WithFileName(fileName).WithPath(filePath).WithOffset(offset).
					WithDetail("operation", "file_sync")
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly, "cannot sync file: filesystem is read-only",
				).WithFileName(fileName).WithPath(filePath).WithOffset(offset).
					WithDetail("operation", "file_sync")
			case syscall.EIO:
				return NewStorageError(
					err, ErrorCodeIO, "I/O error during file sync",
				).WithFileName(fileName).WithPath(filePath).WithOffset(offset).
					WithDetail("operation", "file_sync").WithDetail("severity", "high")
			}
		}
	}

	return NewStorageError(
		err, ErrorCodeIO, "failed to sync segment file to disk",
	).WithFileName(fileName).WithPath(filePath).WithOffset(offset).
		WithDetail("operation", "file_sync")
}
