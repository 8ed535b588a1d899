package engine

import (
	"github.com/iamNilotpal/ignitedb/internal/index"
	"github.com/iamNilotpal/ignitedb/internal/record"
	"github.com/iamNilotpal/ignitedb/internal/segment"
	ignerrors "github.com/iamNilotpal/ignitedb/pkg/errors"
)

// pendingWrite is one buffered record belonging to an in-flight
// transaction, waiting on its TXN_FINISH sentinel.
type pendingWrite struct {
	recType record.Type
	key     []byte
	loc     index.Locator
}

// replayAll rebuilds the index by decoding every record in every segment,
// in ascending segment id then ascending offset order, and returns the
// highest sequence number observed (0 if none). It is the heart of crash
// consistency: a transaction's buffered writes are applied to the index
// only when its TXN_FINISH sentinel is found; a transaction whose sentinel
// never arrives is discarded entirely.
func (e *Engine) replayAll(ids []uint32, activeID uint32) (uint64, error) {
	pending := make(map[uint64][]pendingWrite)
	var maxSeq uint64

	for _, id := range ids {
		seg := e.segmentByID(id)
		var offset int64

		for {
			rec, size, err := record.Decode(seg, offset)
			if err == record.ErrEOF {
				break
			}
			if err != nil {
				return 0, ignerrors.NewStorageError(err, ignerrors.ErrorCodeInvalidCRC, "corrupted log record encountered during recovery").
					WithSegmentID(int(id)).WithOffset(int(offset)).WithPath(seg.Path())
			}

			seqNo, userKey := record.DecodeSeqKey(rec.Key)
			loc := index.Locator{SegmentID: id, Offset: offset}

			switch {
			case seqNo == record.NonTxnSeqNo:
				applyRecordToIndex(e.idx, rec.Type, userKey, loc)
			case rec.Type == record.TxnFinish:
				for _, pw := range pending[seqNo] {
					applyRecordToIndex(e.idx, pw.recType, pw.key, pw.loc)
				}
				delete(pending, seqNo)
			default:
				pending[seqNo] = append(pending[seqNo], pendingWrite{recType: rec.Type, key: userKey, loc: loc})
			}

			if seqNo > maxSeq {
				maxSeq = seqNo
			}
			offset += size
		}

		if id == activeID {
			seg.SetWriteOffset(offset)
		}
	}

	return maxSeq, nil
}

func applyRecordToIndex(idx index.Indexer, t record.Type, key []byte, loc index.Locator) {
	switch t {
	case record.Normal:
		idx.Put(key, loc)
	case record.Deleted:
		idx.Delete(key)
	}
}

// segmentByID returns the already-open segment handle for id. Only used
// during Open, before the engine is visible to other goroutines, so it
// reads e.active/e.older without locking.
func (e *Engine) segmentByID(id uint32) *segment.Segment {
	if e.active != nil && e.active.ID() == id {
		return e.active
	}
	return e.older[id]
}
