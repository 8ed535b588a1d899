package segment

import (
	"testing"

	"github.com/iamNilotpal/ignitedb/internal/record"
	"github.com/iamNilotpal/ignitedb/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestAppendAndReadRecord(t *testing.T) {
	dir := t.TempDir()
	seg, err := Open(dir, 0, logger.Noop())
	require.NoError(t, err)
	defer seg.Close()

	rec := &record.Record{Type: record.Normal, Key: []byte("name"), Value: []byte("ignitedb")}
	encoded := record.Encode(rec)

	off := seg.WriteOffset()
	require.Zero(t, off)

	n, err := seg.Append(encoded)
	require.NoError(t, err)
	require.Equal(t, len(encoded), n)
	require.Equal(t, int64(len(encoded)), seg.WriteOffset())

	decoded, size, err := record.Decode(seg, off)
	require.NoError(t, err)
	require.Equal(t, int64(len(encoded)), size)
	require.Equal(t, rec.Key, decoded.Key)
	require.Equal(t, rec.Value, decoded.Value)
}

func TestReadAtPastEndOfFileIsCleanEOF(t *testing.T) {
	dir := t.TempDir()
	seg, err := Open(dir, 1, logger.Noop())
	require.NoError(t, err)
	defer seg.Close()

	_, _, err = record.Decode(seg, 0)
	require.ErrorIs(t, err, record.ErrEOF)
}

func TestSetWriteOffsetAfterReopen(t *testing.T) {
	dir := t.TempDir()
	seg, err := Open(dir, 2, logger.Noop())
	require.NoError(t, err)

	rec := &record.Record{Type: record.Normal, Key: []byte("a"), Value: []byte("b")}
	_, err = seg.Append(record.Encode(rec))
	require.NoError(t, err)
	require.NoError(t, seg.Sync())
	require.NoError(t, seg.Close())

	reopened, err := Open(dir, 2, logger.Noop())
	require.NoError(t, err)
	defer reopened.Close()

	// A fresh handle doesn't know the prior write offset until told.
	require.Zero(t, reopened.WriteOffset())
	reopened.SetWriteOffset(int64(record.Size(rec)))
	require.Equal(t, int64(record.Size(rec)), reopened.WriteOffset())
}
