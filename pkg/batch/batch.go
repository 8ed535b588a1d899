// Package batch implements ignitedb's atomic write-batch protocol: a
// staging layer over the engine that buffers put/delete operations and, on
// commit, writes them under one monotonically increasing transaction
// sequence number terminated by a TXN_FINISH sentinel. The engine's replay
// procedure honors these transaction boundaries, so a commit is
// all-or-nothing even across a crash.
package batch

import (
	"sync"

	"github.com/iamNilotpal/ignitedb/internal/engine"
	"github.com/iamNilotpal/ignitedb/internal/index"
	"github.com/iamNilotpal/ignitedb/internal/record"
	"github.com/iamNilotpal/ignitedb/pkg/options"
)

// stagedWrite is one buffered put or delete, last-writer-wins by key
// within a single batch.
type stagedWrite struct {
	recType record.Type
	value   []byte
}

// WriteBatch is a staging object bound to one engine. It is not safe for
// concurrent use by multiple goroutines beyond the serialization its own
// mutex provides for Put/Delete/Commit against each other.
type WriteBatch struct {
	mu      sync.Mutex
	eng     *engine.Engine
	options options.WriteBatchOptions
	pending map[string]stagedWrite
}

// New constructs a WriteBatch bound to eng.
func New(eng *engine.Engine, opts options.WriteBatchOptions) *WriteBatch {
	return &WriteBatch{
		eng:     eng,
		options: opts,
		pending: make(map[string]stagedWrite),
	}
}

// Put stages a NORMAL write for key, overwriting any prior staged entry
// for the same key.
func (wb *WriteBatch) Put(key, value []byte) error {
	if len(key) == 0 {
		return engine.ErrKeyIsEmpty
	}

	wb.mu.Lock()
	defer wb.mu.Unlock()
	wb.pending[string(key)] = stagedWrite{recType: record.Normal, value: value}
	return nil
}

// Delete stages a tombstone for key. If the key has no live entry in the
// engine's index and nothing is staged for it either, the call is a
// silent no-op — there is nothing to delete, staged or durable.
func (wb *WriteBatch) Delete(key []byte) error {
	if len(key) == 0 {
		return engine.ErrKeyIsEmpty
	}

	wb.mu.Lock()
	defer wb.mu.Unlock()

	if !wb.eng.IndexHas(key) {
		delete(wb.pending, string(key))
		return nil
	}

	wb.pending[string(key)] = stagedWrite{recType: record.Deleted}
	return nil
}

// Commit durably applies every staged write under one transaction sequence
// number, then installs the corresponding index updates. Preconditions:
// pending must be non-empty and within options.MaxBatchNum.
//
// Protocol: acquire the engine's commit lock (serializing commits against
// each other, not against non-batched puts) → allocate a sequence number →
// append every staged record under that sequence number → append a
// TXN_FINISH sentinel → optionally sync → update the index → clear
// pending.
func (wb *WriteBatch) Commit() error {
	wb.mu.Lock()
	defer wb.mu.Unlock()

	if len(wb.pending) == 0 {
		return nil
	}
	if uint(len(wb.pending)) > wb.options.MaxBatchNum {
		return ErrExceedMaxBatchNum
	}

	wb.eng.LockCommit()
	defer wb.eng.UnlockCommit()

	seqNo := wb.eng.NextSeqNo()
	locators := make(map[string]index.Locator, len(wb.pending))

	for key, staged := range wb.pending {
		rec := &record.Record{
			Type:  staged.recType,
			Key:   record.EncodeSeqKey(seqNo, []byte(key)),
			Value: staged.value,
		}
		loc, err := wb.eng.Append(rec, false)
		if err != nil {
			return err
		}
		locators[key] = loc
	}

	sentinel := &record.Record{Type: record.TxnFinish, Key: record.EncodeSeqKey(seqNo, record.TxnFinishKey)}
	if _, err := wb.eng.Append(sentinel, false); err != nil {
		return err
	}

	if wb.options.SyncWrites {
		if err := wb.eng.Sync(); err != nil {
			return err
		}
	}

	for key, staged := range wb.pending {
		switch staged.recType {
		case record.Normal:
			wb.eng.ApplyIndexPut([]byte(key), locators[key])
		case record.Deleted:
			wb.eng.ApplyIndexDelete([]byte(key))
		}
	}

	wb.pending = make(map[string]stagedWrite)
	return nil
}
