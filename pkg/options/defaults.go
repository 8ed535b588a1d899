package options

import "strings"

const (
	// DefaultDirPath is used when a caller doesn't override the data directory.
	DefaultDirPath = "/var/lib/ignitedb"

	// MinDataFileSize is the minimum segment size the spec allows, in bytes.
	MinDataFileSize int64 = 100

	// DefaultDataFileSize is the default segment rotation threshold (256MB).
	DefaultDataFileSize int64 = 256 * 1024 * 1024

	// DefaultMaxBatchNum bounds how many staged operations a write batch may
	// hold at commit time.
	DefaultMaxBatchNum uint = 10000
)

// defaultOptions holds the package defaults for Options.
var defaultOptions = Options{
	DirPath:      DefaultDirPath,
	DataFileSize: DefaultDataFileSize,
	SyncWrite:    false,
	IndexType:    BTREE,
}

// defaultWriteBatchOptions holds the package defaults for WriteBatchOptions.
var defaultWriteBatchOptions = WriteBatchOptions{
	MaxBatchNum: DefaultMaxBatchNum,
	SyncWrites:  true,
}

// NewDefaultOptions returns the package default Options.
func NewDefaultOptions() Options {
	return defaultOptions
}

// NewDefaultWriteBatchOptions returns the package default WriteBatchOptions.
func NewDefaultWriteBatchOptions() WriteBatchOptions {
	return defaultWriteBatchOptions
}

// Validate checks the subset of Options the engine cannot safely default:
// the data directory and segment size threshold.
func (o Options) Validate() error {
	if strings.TrimSpace(o.DirPath) == "" {
		return ErrDirPathEmpty
	}
	if o.DataFileSize < MinDataFileSize {
		return ErrDataFileSizeTooSmall
	}
	return nil
}
