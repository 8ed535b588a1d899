package engine

import "errors"

// Sentinel errors for the conditions callers are expected to check with
// errors.Is. Errors carrying richer context (I/O failures, corruption) are
// constructed via pkg/errors instead and wrap these where applicable.
var (
	// ErrEngineClosed is returned by any operation attempted after Close.
	ErrEngineClosed = errors.New("engine: closed")

	// ErrKeyIsEmpty is returned by Put/Get/Delete when called with an empty key.
	ErrKeyIsEmpty = errors.New("engine: key is empty")

	// ErrKeyNotFound is returned by Get when the index has no live entry for
	// the requested key, including when the latest record for it is a
	// tombstone.
	ErrKeyNotFound = errors.New("engine: key not found")

	// ErrIndexUpdateFailed is returned when the in-memory index refuses to
	// apply a put or delete after the corresponding record is already
	// durable on disk.
	ErrIndexUpdateFailed = errors.New("engine: index update failed")

	// ErrDataFileNotFound is returned by Get when a locator names a segment
	// id that is neither the active segment nor present in the
	// older-segments map.
	ErrDataFileNotFound = errors.New("engine: data file not found")

	// ErrDatabaseLocked is returned by Open when another process already
	// holds the directory's file lock.
	ErrDatabaseLocked = errors.New("engine: database directory is locked by another process")
)
