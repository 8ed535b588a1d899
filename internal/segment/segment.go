// Package segment implements the leaf storage primitive of ignitedb: one
// append-only data file identified by a monotonically increasing 32-bit id.
//
// A Segment owns exactly one open file descriptor plus a running write
// offset. It serves positional reads, appends opaque byte slices, and
// exposes a durable flush. Concurrent appends are serialized by the caller
// (internal/engine), not by Segment itself — see the package doc of
// internal/engine for the locking discipline.
package segment

import (
	"io"
	"os"
	"sync/atomic"

	ignerrors "github.com/iamNilotpal/ignitedb/pkg/errors"
	"github.com/iamNilotpal/ignitedb/pkg/seginfo"
	"go.uber.org/zap"
)

// Segment is one append-only data file plus its tracked write offset.
type Segment struct {
	id       uint32
	path     string
	file     *os.File
	writeOff atomic.Int64
	log      *zap.SugaredLogger
}

// Open creates-or-opens the data file for id inside dirPath in append mode
// with positional-read access. The write offset starts at 0; callers that
// are resuming a segment discovered on disk (rather than creating a fresh
// one) must call SetWriteOffset explicitly once they know where the last
// valid record ends; Open does not infer it from the file's length.
func Open(dirPath string, id uint32, log *zap.SugaredLogger) (*Segment, error) {
	path := seginfo.SegmentPath(dirPath, id)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, ignerrors.ClassifyFileOpenError(err, path, seginfo.GenerateName(id))
	}

	s := &Segment{id: id, path: path, file: file, log: log}
	return s, nil
}

// ID returns the segment's numeric identifier.
func (s *Segment) ID() uint32 { return s.id }

// Path returns the segment's on-disk path.
func (s *Segment) Path() string { return s.path }

// WriteOffset returns the current logical length of the segment as observed
// through this handle.
func (s *Segment) WriteOffset() int64 { return s.writeOff.Load() }

// SetWriteOffset positions the segment's tracked write offset explicitly.
// Used after replay determines the first byte past the last valid record,
// and when the engine loads its index from the startup hint cache (then
// set to the file's size). A freshly created segment needs no call: its
// offset starts at 0.
func (s *Segment) SetWriteOffset(off int64) { s.writeOff.Store(off) }

// ReadAt implements the positional-read half of the record decoding
// contract; *Segment can be passed directly to record.Decode.
func (s *Segment) ReadAt(p []byte, off int64) (int, error) {
	n, err := s.file.ReadAt(p, off)
	if err != nil && err != io.EOF {
		return n, ignerrors.NewStorageError(
			err, ignerrors.ErrorCodeIO, "failed to read segment file",
		).WithSegmentID(int(s.id)).WithOffset(int(off)).WithPath(s.path)
	}
	return n, err
}

// Append writes data to the end of the segment and atomically bumps the
// tracked write offset by the number of bytes written. It returns the
// number of bytes written.
func (s *Segment) Append(data []byte) (int, error) {
	n, err := s.file.Write(data)
	if err != nil {
		return n, ignerrors.NewStorageError(
			err, ignerrors.ErrorCodeIO, "failed to append to segment file",
		).WithSegmentID(int(s.id)).WithPath(s.path)
	}
	s.writeOff.Add(int64(n))
	return n, nil
}

// Sync flushes both data and metadata to stable storage.
func (s *Segment) Sync() error {
	if err := s.file.Sync(); err != nil {
		return ignerrors.ClassifySyncError(err, seginfo.GenerateName(s.id), s.path, int(s.writeOff.Load()))
	}
	return nil
}

// Close releases the underlying file descriptor. It does not flush; callers
// that need durability must call Sync first.
func (s *Segment) Close() error {
	if s.file == nil {
		return nil
	}
	if err := s.file.Close(); err != nil {
		return ignerrors.NewStorageError(
			err, ignerrors.ErrorCodeIO, "failed to close segment file",
		).WithSegmentID(int(s.id)).WithPath(s.path)
	}
	return nil
}
