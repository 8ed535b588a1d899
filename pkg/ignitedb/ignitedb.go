// Package ignitedb provides a high-performance embeddable key/value data
// store following the Bitcask model: an in-memory index over an
// append-only log of segment files on disk, giving one random I/O per
// read and crash-consistent recovery through log replay. It is designed
// for applications requiring fast read and write operations, such as
// caching, session management, and real-time data processing.
package ignitedb

import (
	"github.com/iamNilotpal/ignitedb/internal/engine"
	"github.com/iamNilotpal/ignitedb/pkg/batch"
	"github.com/iamNilotpal/ignitedb/pkg/logger"
	"github.com/iamNilotpal/ignitedb/pkg/options"
)

// DB is the primary entry point for interacting with an ignitedb instance.
// It wraps the core engine with the façade-level conveniences (expiring
// keys, write batches) that sit outside the engine's on-disk format.
type DB struct {
	eng     *engine.Engine
	options options.Options
}

// Open creates or resumes a database at the configured directory,
// replaying its log (or loading a fresh startup hint) to rebuild the
// in-memory index before returning.
func Open(service string, opts ...options.OptionFunc) (*DB, error) {
	o := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.New(service, o.Development)
	eng, err := engine.Open(engine.Config{Options: o, Logger: log})
	if err != nil {
		return nil, err
	}

	return &DB{eng: eng, options: o}, nil
}

// Put stores value under key. The write is durable on return iff
// Options.SyncWrite is set.
func (db *DB) Put(key, value []byte) error {
	return db.eng.Put(key, value)
}

// Get retrieves the value stored under key. Returns engine.ErrKeyNotFound
// for an absent key. Get does not check expiry: a value written by SetEX is
// returned still wrapped in its expiry envelope; GetEX unwraps it.
func (db *DB) Get(key []byte) ([]byte, error) {
	return db.eng.Get(key)
}

// Delete removes key. Deleting an absent key is a no-op.
func (db *DB) Delete(key []byte) error {
	return db.eng.Delete(key)
}

// Sync flushes the active segment to durable media.
func (db *DB) Sync() error {
	return db.eng.Sync()
}

// Close flushes pending writes, writes a fresh startup hint, and releases
// the database directory's lock.
func (db *DB) Close() error {
	return db.eng.Close()
}

// ListKeys returns every live key, ascending.
func (db *DB) ListKeys() [][]byte {
	return db.eng.ListKeys()
}

// Fold visits every live key/value pair in index order, stopping early if
// f returns false.
func (db *DB) Fold(f func(key, value []byte) bool) error {
	return db.eng.Fold(f)
}

// Stat returns a point-in-time snapshot of engine-level statistics.
func (db *DB) Stat() engine.Stats {
	return db.eng.Stat()
}

// NewWriteBatch returns a staging object bound to this database for
// atomic multi-key commits.
func (db *DB) NewWriteBatch(opts options.WriteBatchOptions) *batch.WriteBatch {
	return batch.New(db.eng, opts)
}
