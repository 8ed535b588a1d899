package errors

// ErrorCode is a stable, string-valued category for an error, independent
// of its (free-form) message.
type ErrorCode string

// Base error codes used across every domain error type.
const (
	// ErrorCodeIO represents failures in input/output operations: reading
	// or writing segment files, syncing to disk, opening the data
	// directory.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents caller errors — a configuration or
	// argument value that doesn't meet ignitedb's requirements.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Storage-specific error codes cover the segment files and the data
// directory that holds them.
const (
	// ErrorCodePermissionDenied indicates insufficient permissions to
	// access the data directory or a segment file.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull indicates the storage device has run out of space.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly indicates the filesystem is mounted
	// read-only.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"

	// ErrorCodeDataDirCorrupted indicates the data directory contains a
	// segment filename that doesn't match the expected NNNNNNNNN.data
	// convention.
	ErrorCodeDataDirCorrupted ErrorCode = "DATA_DIR_CORRUPTED"

	// ErrorCodeInvalidCRC indicates a decoded record's checksum does not
	// match its payload. Fatal during replay; this engine defines no
	// repair procedure.
	ErrorCodeInvalidCRC ErrorCode = "INVALID_LOG_RECORD_CRC"

	// ErrorCodeDataFileNotFound indicates a locator refers to a segment id
	// that isn't the active segment and isn't present in the
	// older-segments map.
	ErrorCodeDataFileNotFound ErrorCode = "DATA_FILE_NOT_FOUND"
)

// ErrorCodeIndexUpdateFailed indicates the in-memory index refused to
// apply a put, delete, or batch commit.
const ErrorCodeIndexUpdateFailed ErrorCode = "INDEX_UPDATE_FAILED"

// ErrorCodeExceedMaxBatchNum indicates a commit was attempted with more
// pending writes than WriteBatchOptions.MaxBatchNum allows.
const ErrorCodeExceedMaxBatchNum ErrorCode = "EXCEED_MAX_BATCH_NUM"
