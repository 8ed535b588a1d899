package engine

import (
	"encoding/binary"

	"go.etcd.io/bbolt"

	"github.com/iamNilotpal/ignitedb/internal/index"
)

// hintStore is a small embedded sidecar, backed by go.etcd.io/bbolt, that
// caches the fully-rebuilt index across a clean close so the next Open can
// skip replaying every segment. It is strictly a latency optimization: a
// missing file, a read error, or a stale checkpoint all fall back to full
// replay (internal/engine/recovery.go), never to incorrect data.
type hintStore struct {
	db *bbolt.DB
}

var (
	hintMetaBucket  = []byte("meta")
	hintIndexBucket = []byte("index")
)

const (
	hintKeyActiveID  = "active_segment_id"
	hintKeyOffset    = "write_offset"
	hintKeySeqNo     = "seq_no_counter"
	hintLocatorWidth = 4 + 8 // segment id (u32) + offset (i64)
)

func openHintStore(path string) (*hintStore, error) {
	db, err := bbolt.Open(path, 0644, nil)
	if err != nil {
		return nil, err
	}
	return &hintStore{db: db}, nil
}

func (h *hintStore) close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}

// hintSnapshot is what load returns on a checkpoint match: every live
// key/locator pair plus the sequence counter value at the time the
// snapshot was written.
type hintSnapshot struct {
	entries      []index.Entry
	seqNoCounter uint64
}

// save overwrites the hint file with the current index contents, tagged
// with the active segment's id and write offset so a later load can tell
// whether the log has changed underneath it.
func (h *hintStore) save(activeID uint32, activeOffset int64, seqNoCounter uint64, entries []index.Entry) error {
	return h.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(hintMetaBucket); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		meta, err := tx.CreateBucket(hintMetaBucket)
		if err != nil {
			return err
		}

		buf4 := make([]byte, 4)
		binary.BigEndian.PutUint32(buf4, activeID)
		if err := meta.Put([]byte(hintKeyActiveID), buf4); err != nil {
			return err
		}

		buf8 := make([]byte, 8)
		binary.BigEndian.PutUint64(buf8, uint64(activeOffset))
		if err := meta.Put([]byte(hintKeyOffset), buf8); err != nil {
			return err
		}

		binary.BigEndian.PutUint64(buf8, seqNoCounter)
		if err := meta.Put([]byte(hintKeySeqNo), append([]byte(nil), buf8...)); err != nil {
			return err
		}

		if err := tx.DeleteBucket(hintIndexBucket); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		idxBucket, err := tx.CreateBucket(hintIndexBucket)
		if err != nil {
			return err
		}

		val := make([]byte, hintLocatorWidth)
		for _, en := range entries {
			binary.BigEndian.PutUint32(val[:4], en.Locator.SegmentID)
			binary.BigEndian.PutUint64(val[4:], uint64(en.Locator.Offset))
			if err := idxBucket.Put(en.Key, val); err != nil {
				return err
			}
		}
		return nil
	})
}

// load returns the cached snapshot iff the stored checkpoint matches
// expectActiveID/expectActiveOffset exactly — meaning no segment has been
// appended to since the hint was written.
func (h *hintStore) load(expectActiveID uint32, expectActiveOffset int64) (hintSnapshot, bool, error) {
	var snap hintSnapshot
	matched := false

	err := h.db.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(hintMetaBucket)
		if meta == nil {
			return nil
		}

		idBytes := meta.Get([]byte(hintKeyActiveID))
		offBytes := meta.Get([]byte(hintKeyOffset))
		seqBytes := meta.Get([]byte(hintKeySeqNo))
		if idBytes == nil || offBytes == nil || seqBytes == nil {
			return nil
		}
		if binary.BigEndian.Uint32(idBytes) != expectActiveID {
			return nil
		}
		if int64(binary.BigEndian.Uint64(offBytes)) != expectActiveOffset {
			return nil
		}

		idxBucket := tx.Bucket(hintIndexBucket)
		if idxBucket == nil {
			return nil
		}

		matched = true
		snap.seqNoCounter = binary.BigEndian.Uint64(seqBytes)
		return idxBucket.ForEach(func(k, v []byte) error {
			if len(v) != hintLocatorWidth {
				return nil
			}
			snap.entries = append(snap.entries, index.Entry{
				Key: append([]byte(nil), k...),
				Locator: index.Locator{
					SegmentID: binary.BigEndian.Uint32(v[:4]),
					Offset:    int64(binary.BigEndian.Uint64(v[4:])),
				},
			})
			return nil
		})
	})

	return snap, matched, err
}
