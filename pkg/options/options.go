// Package options provides data structures and functions for configuring
// ignitedb. It defines the parameters that control the engine's on-disk
// layout, durability behavior, and in-memory index selection, along with
// the auxiliary option sets used by iterators and write batches.
package options

import "strings"

// IndexType selects which in-memory index implementation the engine uses
// to map keys to record locators.
type IndexType int8

const (
	// BTREE is the default index: an ordered map backed by google/btree.
	// It keeps iteration key-sorted with predictable, amortized-logarithmic
	// operations and modest memory overhead per entry.
	BTREE IndexType = iota + 1

	// ART is an adaptive radix tree (plar/go-adaptive-radix-tree). It trades
	// btree's simplicity for better cache locality on prefix-heavy
	// workloads; both variants satisfy the same Indexer contract.
	ART

	// SkipList is reserved at the interface but not implemented. Selecting
	// it returns ErrUnsupportedIndexType at Open.
	SkipList
)

// Options defines the configuration parameters for an ignitedb instance.
type Options struct {
	// DirPath is the filesystem directory holding segment files. Must be
	// non-empty.
	DirPath string

	// DataFileSize is the segment size threshold in bytes. Minimum 100.
	DataFileSize int64

	// SyncWrite, when true, flushes the active segment to durable media
	// before every Put/Delete returns.
	SyncWrite bool

	// IndexType selects the in-memory index implementation.
	IndexType IndexType

	// Development toggles the logger between zap's production (JSON) and
	// development (console) encoders.
	Development bool
}

// IteratorOptions configures an index cursor.
type IteratorOptions struct {
	// Prefix restricts iteration to keys that start with it. Empty means
	// no filtering.
	Prefix []byte

	// Reverse iterates keys in descending order when true.
	Reverse bool
}

// WriteBatchOptions configures a WriteBatch's size limit and durability.
type WriteBatchOptions struct {
	// MaxBatchNum caps the number of staged operations a single batch may
	// hold at commit time.
	MaxBatchNum uint

	// SyncWrites, when true, flushes the engine's active segment before a
	// commit returns.
	SyncWrites bool
}

// OptionFunc mutates an Options value. Functional options let callers
// override only the fields they care about on top of NewDefaultOptions.
type OptionFunc func(*Options)

// WithDefaultOptions resets an Options value back to the package defaults.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// WithDirPath sets the data directory.
func WithDirPath(dir string) OptionFunc {
	return func(o *Options) {
		dir = strings.TrimSpace(dir)
		if dir != "" {
			o.DirPath = dir
		}
	}
}

// WithDataFileSize sets the segment rotation threshold, in bytes.
func WithDataFileSize(size int64) OptionFunc {
	return func(o *Options) {
		if size >= MinDataFileSize {
			o.DataFileSize = size
		}
	}
}

// WithSyncWrite toggles flush-on-write for non-batched Put/Delete.
func WithSyncWrite(sync bool) OptionFunc {
	return func(o *Options) {
		o.SyncWrite = sync
	}
}

// WithIndexType selects the in-memory index implementation.
func WithIndexType(t IndexType) OptionFunc {
	return func(o *Options) {
		o.IndexType = t
	}
}

// WithDevelopment toggles development-mode logging.
func WithDevelopment(dev bool) OptionFunc {
	return func(o *Options) {
		o.Development = dev
	}
}
