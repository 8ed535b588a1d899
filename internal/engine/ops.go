package engine

import (
	"github.com/iamNilotpal/ignitedb/internal/record"
	ignerrors "github.com/iamNilotpal/ignitedb/pkg/errors"
	"github.com/iamNilotpal/ignitedb/pkg/options"
)

// Put stores value under key, appending a NORMAL record and installing its
// locator in the index. Rejects an empty key without side effects.
func (e *Engine) Put(key, value []byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	if len(key) == 0 {
		return ErrKeyIsEmpty
	}

	rec := &record.Record{
		Type:  record.Normal,
		Key:   record.EncodeSeqKey(record.NonTxnSeqNo, key),
		Value: value,
	}

	loc, err := e.Append(rec, e.options.SyncWrite)
	if err != nil {
		return err
	}

	if !e.idx.Put(key, loc) {
		return ignerrors.NewIndexError(ErrIndexUpdateFailed, ignerrors.ErrorCodeIndexUpdateFailed, "index refused to apply put").
			WithKey(string(key)).WithOperation("Put")
	}
	return nil
}

// Get returns the value stored under key. Returns ErrKeyNotFound if the
// key is absent or its latest record is a tombstone.
func (e *Engine) Get(key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	if len(key) == 0 {
		return nil, ErrKeyIsEmpty
	}

	loc, ok := e.idx.Get(key)
	if !ok {
		return nil, ErrKeyNotFound
	}

	seg, err := e.resolveSegment(loc.SegmentID)
	if err != nil {
		return nil, err
	}

	rec, _, err := record.Decode(seg, loc.Offset)
	if err != nil {
		code := ignerrors.ErrorCodeIO
		if err == record.ErrInvalidCRC {
			code = ignerrors.ErrorCodeInvalidCRC
		}
		return nil, ignerrors.NewStorageError(err, code, "failed to read record at locator").
			WithSegmentID(int(loc.SegmentID)).WithOffset(int(loc.Offset)).WithPath(seg.Path())
	}

	if rec.Type == record.Deleted {
		return nil, ErrKeyNotFound
	}
	return rec.Value, nil
}

// Delete removes key. Idempotent: deleting an absent key returns nil
// without appending a record.
func (e *Engine) Delete(key []byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	if len(key) == 0 {
		return ErrKeyIsEmpty
	}

	if _, ok := e.idx.Get(key); !ok {
		return nil
	}

	rec := &record.Record{Type: record.Deleted, Key: record.EncodeSeqKey(record.NonTxnSeqNo, key)}
	if _, err := e.Append(rec, e.options.SyncWrite); err != nil {
		return err
	}

	e.idx.Delete(key)
	return nil
}

// ListKeys returns every live key, ascending.
func (e *Engine) ListKeys() [][]byte {
	return e.idx.ListKeys()
}

// Fold visits every live key/value pair in index order, stopping early if
// f returns false.
func (e *Engine) Fold(f func(key, value []byte) bool) error {
	cur := e.idx.Iterator(options.IteratorOptions{})
	for {
		entry, ok := cur.Next()
		if !ok {
			return nil
		}

		seg, err := e.resolveSegment(entry.Locator.SegmentID)
		if err != nil {
			return err
		}
		rec, _, err := record.Decode(seg, entry.Locator.Offset)
		if err != nil {
			return err
		}
		if !f(entry.Key, rec.Value) {
			return nil
		}
	}
}

// Stats is a read-only snapshot of engine state, used by the CLI's stats
// command. ReclaimableBytes is not tracked by the engine; Stat always
// reports 0 for it.
type Stats struct {
	ActiveSegmentID  uint32
	SegmentCount     int
	KeyCount         int
	ReclaimableBytes int64
}

// Stat returns a point-in-time snapshot of engine-level statistics.
func (e *Engine) Stat() Stats {
	e.activeMu.RLock()
	activeID := e.active.ID()
	e.activeMu.RUnlock()

	e.oldMu.RLock()
	segCount := len(e.older) + 1
	e.oldMu.RUnlock()

	return Stats{ActiveSegmentID: activeID, SegmentCount: segCount, KeyCount: e.idx.Size()}
}
