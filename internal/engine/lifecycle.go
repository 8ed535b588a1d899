package engine

import (
	"github.com/iamNilotpal/ignitedb/internal/index"
	"github.com/iamNilotpal/ignitedb/internal/segment"
	ignerrors "github.com/iamNilotpal/ignitedb/pkg/errors"
	"github.com/iamNilotpal/ignitedb/pkg/options"
)

// Sync flushes the active segment to durable media and refreshes the
// startup hint cache so a subsequent Open can skip replay up to this
// point, not just after a clean Close.
func (e *Engine) Sync() error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.activeMu.RLock()
	syncErr := e.active.Sync()
	e.activeMu.RUnlock()
	if syncErr != nil {
		return syncErr
	}

	if e.hints != nil {
		if err := e.saveHints(); err != nil {
			e.log.Warnw("failed to write startup hint cache", "error", err)
		}
	}
	return nil
}

// Close flushes the active segment, writes a fresh startup hint cache,
// closes every open segment handle, and releases the directory lock. Close
// is idempotent: calling it twice returns ErrEngineClosed on the second
// call.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	e.activeMu.Lock()
	syncErr := e.active.Sync()
	e.activeMu.Unlock()

	if e.hints != nil {
		if err := e.saveHints(); err != nil {
			e.log.Warnw("failed to write startup hint cache", "error", err)
		}
		e.hints.close()
	}

	closeErr := e.closeAllSegments()
	idxErr := e.idx.Close()
	unlockErr := e.flock.Unlock()

	switch {
	case syncErr != nil:
		return syncErr
	case closeErr != nil:
		return closeErr
	case idxErr != nil:
		return idxErr
	case unlockErr != nil:
		return ignerrors.NewStorageError(unlockErr, ignerrors.ErrorCodeIO, "failed to release database lock")
	}
	return nil
}

func (e *Engine) saveHints() error {
	e.activeMu.RLock()
	activeID := e.active.ID()
	activeOffset := e.active.WriteOffset()
	e.activeMu.RUnlock()

	cur := e.idx.Iterator(options.IteratorOptions{})
	var entries []index.Entry
	for {
		en, ok := cur.Next()
		if !ok {
			break
		}
		entries = append(entries, en)
	}

	return e.hints.save(activeID, activeOffset, e.seqNo.Load(), entries)
}

func (e *Engine) closeAllSegments() error {
	var first error
	closeOne := func(seg *segment.Segment) {
		if seg == nil {
			return
		}
		if err := seg.Close(); err != nil && first == nil {
			first = err
		}
	}

	e.activeMu.Lock()
	closeOne(e.active)
	e.active = nil
	e.activeMu.Unlock()

	e.oldMu.Lock()
	for _, seg := range e.older {
		closeOne(seg)
	}
	e.older = nil
	e.oldMu.Unlock()

	return first
}
