// Package engine implements ignitedb's core façade: the component that
// owns one active (writable) segment and a set of immutable older
// segments, serializes appends, rotates segments on size threshold, serves
// reads by locator lookup plus a positional read, and rebuilds the index
// by replaying the log on startup.
//
// Locking discipline: the active-segment slot and the older-segments map
// each carry their own read/write lock. Exclusive holders always acquire
// the active lock before the older lock and never hold both at once for
// longer than a rotation's insert step, which rules out lock-order
// deadlocks between appenders and readers.
package engine

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/iamNilotpal/ignitedb/internal/index"
	"github.com/iamNilotpal/ignitedb/internal/segment"
	ignerrors "github.com/iamNilotpal/ignitedb/pkg/errors"
	"github.com/iamNilotpal/ignitedb/pkg/options"
	"github.com/iamNilotpal/ignitedb/pkg/seginfo"
)

const (
	lockFileName = "ignitedb.lock"
	hintFileName = "hints.bolt"
)

// Engine is the core, embeddable key/value storage engine.
type Engine struct {
	options options.Options
	log     *zap.SugaredLogger

	closed atomic.Bool

	activeMu sync.RWMutex
	active   *segment.Segment

	oldMu sync.RWMutex
	older map[uint32]*segment.Segment

	idx index.Indexer

	seqNo atomic.Uint64

	commitMu sync.Mutex

	flock *flock.Flock
	hints *hintStore
}

// Config bundles the parameters Open needs.
type Config struct {
	Options options.Options
	Logger  *zap.SugaredLogger
}

// Open validates opts, acquires the directory's single-process lock,
// discovers or creates segments, and rebuilds the index — either from a
// fresh hint cache (§4.10) or by replaying every segment (§4.5).
func Open(cfg Config) (*Engine, error) {
	opts := cfg.Options
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if err := opts.Validate(); err != nil {
		field, rule := "DirPath", "required"
		if err == options.ErrDataFileSizeTooSmall {
			field, rule = "DataFileSize", "min"
		}
		return nil, ignerrors.NewValidationError(err, ignerrors.ErrorCodeInvalidInput, err.Error()).
			WithField(field).WithRule(rule)
	}

	if err := seginfo.EnsureDir(opts.DirPath); err != nil {
		return nil, ignerrors.ClassifyDirectoryCreationError(err, opts.DirPath)
	}

	fl := flock.New(filepath.Join(opts.DirPath, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, ignerrors.NewStorageError(err, ignerrors.ErrorCodeIO, "failed to acquire database lock").
			WithPath(opts.DirPath)
	}
	if !locked {
		return nil, ErrDatabaseLocked
	}

	ids, err := seginfo.DiscoverSegmentIDs(opts.DirPath)
	if err != nil {
		fl.Unlock()
		return nil, ignerrors.NewStorageError(err, ignerrors.ErrorCodeDataDirCorrupted, "data directory contains a malformed segment filename").
			WithPath(opts.DirPath)
	}

	idx, err := index.New(opts.IndexType)
	if err != nil {
		fl.Unlock()
		return nil, err
	}

	e := &Engine{
		options: opts,
		log:     log,
		older:   make(map[uint32]*segment.Segment),
		idx:     idx,
		flock:   fl,
	}

	activeID := uint32(0)
	if len(ids) == 0 {
		ids = []uint32{0}
	} else {
		activeID = ids[len(ids)-1]
	}

	for _, id := range ids {
		seg, err := segment.Open(opts.DirPath, id, log)
		if err != nil {
			e.closeAllSegments()
			fl.Unlock()
			return nil, err
		}
		if id == activeID {
			e.active = seg
		} else {
			e.older[id] = seg
		}
	}

	hints, err := openHintStore(filepath.Join(opts.DirPath, hintFileName))
	if err != nil {
		log.Warnw("failed to open startup hint cache, falling back to full replay", "error", err)
		hints = nil
	}
	e.hints = hints

	activeSize, _ := fileSize(e.active.Path())

	loadedFromHint := false
	if hints != nil {
		snapshot, ok, err := hints.load(activeID, activeSize)
		if err != nil {
			log.Warnw("startup hint cache is unreadable, falling back to full replay", "error", err)
		} else if ok {
			for _, en := range snapshot.entries {
				e.idx.Put(en.Key, en.Locator)
			}
			e.active.SetWriteOffset(activeSize)
			e.seqNo.Store(snapshot.seqNoCounter)
			loadedFromHint = true
			log.Infow("loaded index from startup hint cache", "keys", len(snapshot.entries))
		}
	}

	if !loadedFromHint {
		maxSeq, err := e.replayAll(ids, activeID)
		if err != nil {
			e.closeAllSegments()
			fl.Unlock()
			return nil, err
		}
		e.seqNo.Store(maxSeq + 1)
	}

	return e, nil
}

func fileSize(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// NextSeqNo atomically allocates the next transaction sequence number.
func (e *Engine) NextSeqNo() uint64 {
	return e.seqNo.Add(1) - 1
}

// LockCommit acquires the engine-wide commit lock used to serialize
// write-batch commits against each other.
func (e *Engine) LockCommit() { e.commitMu.Lock() }

// UnlockCommit releases the commit lock.
func (e *Engine) UnlockCommit() { e.commitMu.Unlock() }

// ApplyIndexPut installs a NORMAL index entry. Exported for pkg/batch's
// commit step 6.
func (e *Engine) ApplyIndexPut(key []byte, loc index.Locator) bool {
	return e.idx.Put(key, loc)
}

// ApplyIndexDelete removes an index entry. Exported for pkg/batch's commit
// step 6.
func (e *Engine) ApplyIndexDelete(key []byte) bool {
	return e.idx.Delete(key)
}

// IndexHas reports whether key currently has a live index entry. Used by
// pkg/batch to decide whether a staged delete for a key the engine has
// never seen may be dropped silently.
func (e *Engine) IndexHas(key []byte) bool {
	_, ok := e.idx.Get(key)
	return ok
}

// Logger exposes the engine's structured logger so collaborating packages
// (pkg/batch, pkg/ignitedb) can log under the same sink.
func (e *Engine) Logger() *zap.SugaredLogger { return e.log }
