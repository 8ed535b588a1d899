package engine

import (
	"github.com/iamNilotpal/ignitedb/internal/index"
	"github.com/iamNilotpal/ignitedb/internal/record"
	"github.com/iamNilotpal/ignitedb/internal/segment"
)

// Append encodes rec, rotating the active segment first if rec wouldn't
// fit under the configured size threshold, appends it, optionally flushes,
// and returns the locator of the appended record. Append is the sole
// serialization point for writes against the active segment; rotation
// moves the outgoing active segment into the older-segments map under its
// own id before a fresh one takes its place.
//
// sync controls whether this specific append flushes before returning.
// Put/Delete pass options.SyncWrite; pkg/batch always passes false and
// calls Sync once after the whole batch (including its sentinel) has been
// appended, per its own WriteBatchOptions.SyncWrites.
func (e *Engine) Append(rec *record.Record, sync bool) (index.Locator, error) {
	encoded := record.Encode(rec)
	length := int64(len(encoded))

	e.activeMu.Lock()
	defer e.activeMu.Unlock()

	if e.active.WriteOffset()+length > e.options.DataFileSize {
		if err := e.active.Sync(); err != nil {
			return index.Locator{}, err
		}

		outgoing := e.active
		e.oldMu.Lock()
		e.older[outgoing.ID()] = outgoing
		e.oldMu.Unlock()

		next, err := segment.Open(e.options.DirPath, outgoing.ID()+1, e.log)
		if err != nil {
			return index.Locator{}, err
		}
		e.active = next
	}

	offset := e.active.WriteOffset()
	if _, err := e.active.Append(encoded); err != nil {
		return index.Locator{}, err
	}
	if sync {
		if err := e.active.Sync(); err != nil {
			return index.Locator{}, err
		}
	}

	return index.Locator{SegmentID: e.active.ID(), Offset: offset}, nil
}

// resolveSegment returns the segment handle for id, checking the active
// slot first (shared lock, released immediately) and falling back to the
// older-segments map. The active lock is never held concurrently with the
// older lock here, preserving the active-before-older acquisition order
// without ever needing both at once for a read.
func (e *Engine) resolveSegment(id uint32) (*segment.Segment, error) {
	e.activeMu.RLock()
	if e.active != nil && e.active.ID() == id {
		seg := e.active
		e.activeMu.RUnlock()
		return seg, nil
	}
	e.activeMu.RUnlock()

	e.oldMu.RLock()
	defer e.oldMu.RUnlock()
	seg, ok := e.older[id]
	if !ok {
		return nil, ErrDataFileNotFound
	}
	return seg, nil
}
