package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/ignitedb/internal/record"
	"github.com/iamNilotpal/ignitedb/pkg/options"
)

func openTestEngine(t *testing.T, mutate func(*options.Options)) *Engine {
	t.Helper()
	opts := options.NewDefaultOptions()
	opts.DirPath = t.TempDir()
	if mutate != nil {
		mutate(&opts)
	}
	e, err := Open(Config{Options: opts})
	require.NoError(t, err)
	return e
}

// S1 — basic put/get/delete.
func TestPutGetDelete(t *testing.T) {
	e := openTestEngine(t, nil)
	defer e.Close()

	require.NoError(t, e.Put([]byte("name"), []byte("bitcask-rs")))

	v, err := e.Get([]byte("name"))
	require.NoError(t, err)
	require.Equal(t, "bitcask-rs", string(v))

	require.NoError(t, e.Delete([]byte("name")))

	_, err = e.Get([]byte("name"))
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestEmptyKeyRejected(t *testing.T) {
	e := openTestEngine(t, nil)
	defer e.Close()

	require.ErrorIs(t, e.Put(nil, []byte("v")), ErrKeyIsEmpty)
	_, err := e.Get(nil)
	require.ErrorIs(t, err, ErrKeyIsEmpty)
	require.ErrorIs(t, e.Delete(nil), ErrKeyIsEmpty)
}

func TestIdempotentDelete(t *testing.T) {
	e := openTestEngine(t, nil)
	defer e.Close()

	require.NoError(t, e.Delete([]byte("absent")))
	require.Equal(t, 0, e.Stat().KeyCount)
}

// S3 — recovery across restart.
func TestRecoveryAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DirPath = dir

	e, err := Open(Config{Options: opts})
	require.NoError(t, err)

	require.NoError(t, e.Put([]byte("k1"), []byte("v1")))
	require.NoError(t, e.Put([]byte("k2"), []byte("v2")))
	require.NoError(t, e.Delete([]byte("k2")))
	require.NoError(t, e.Close())

	reopened, err := Open(Config{Options: opts})
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.Get([]byte("k1"))
	require.NoError(t, err)
	require.Equal(t, "v1", string(v))

	_, err = reopened.Get([]byte("k2"))
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.Len(t, reopened.ListKeys(), 1)
}

// S3 (continued) — recovery still works when the hint cache is missing,
// exercising the full-replay fallback path directly (the hint file written
// by the clean Close is deleted before reopening).
func TestRecoveryWithoutHintFile(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DirPath = dir

	e, err := Open(Config{Options: opts})
	require.NoError(t, err)
	require.NoError(t, e.Put([]byte("a"), []byte("1")))
	require.NoError(t, e.Close())

	require.NoError(t, os.Remove(filepath.Join(dir, hintFileName)))

	reopened, err := Open(Config{Options: opts})
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, "1", string(v))
}

// Heart of crash consistency (§4.5): a transaction whose records reached
// disk but whose TXN_FINISH sentinel never did must vanish entirely on
// reopen, not partially apply.
func TestUncommittedTransactionVanishesOnReopen(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DirPath = dir

	e, err := Open(Config{Options: opts})
	require.NoError(t, err)

	require.NoError(t, e.Put([]byte("committed"), []byte("yes")))

	seq := e.NextSeqNo()
	rec1 := &record.Record{Type: record.Normal, Key: record.EncodeSeqKey(seq, []byte("k1")), Value: []byte("v1")}
	rec2 := &record.Record{Type: record.Normal, Key: record.EncodeSeqKey(seq, []byte("k2")), Value: []byte("v2")}
	_, err = e.Append(rec1, true)
	require.NoError(t, err)
	_, err = e.Append(rec2, true)
	require.NoError(t, err)
	// No TXN_FINISH sentinel is ever appended for seq.

	require.NoError(t, e.Close())
	require.NoError(t, os.Remove(filepath.Join(dir, hintFileName)))

	reopened, err := Open(Config{Options: opts})
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.Get([]byte("committed"))
	require.NoError(t, err)
	require.Equal(t, "yes", string(v))

	_, err = reopened.Get([]byte("k1"))
	require.ErrorIs(t, err, ErrKeyNotFound)
	_, err = reopened.Get([]byte("k2"))
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.Equal(t, 1, reopened.Stat().KeyCount)
}

// S4 — CRC corruption is fatal on open.
func TestCRCCorruptionFatalOnOpen(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DirPath = dir

	e, err := Open(Config{Options: opts})
	require.NoError(t, err)
	require.NoError(t, e.Put([]byte("k"), []byte("some-value-long-enough-to-flip")))
	require.NoError(t, e.Close())
	require.NoError(t, os.Remove(filepath.Join(dir, hintFileName)))

	segPath := filepath.Join(dir, "000000000.data")
	data, err := os.ReadFile(segPath)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	mid := len(data) / 2
	data[mid] ^= 0xFF
	require.NoError(t, os.WriteFile(segPath, data, 0644))

	_, err = Open(Config{Options: opts})
	require.Error(t, err)
}

// S5 — rotation.
func TestSegmentRotation(t *testing.T) {
	// A 30-byte value makes each record 40 bytes, so three records per
	// segment (120 bytes) stays above the 100-byte minimum segment size.
	value := []byte("0123456789abcdefghijklmnopqrst")
	rec := &record.Record{Type: record.Normal, Key: record.EncodeSeqKey(0, []byte("k0")), Value: value}
	recSize := int64(len(record.Encode(rec)))

	e := openTestEngine(t, func(o *options.Options) {
		o.DataFileSize = recSize * 3
	})
	defer e.Close()

	for i := range 10 {
		key := []byte{'k', byte('0' + i)}
		require.NoError(t, e.Put(key, value))
	}

	stats := e.Stat()
	require.GreaterOrEqual(t, stats.SegmentCount, 2)

	for i := range 10 {
		key := []byte{'k', byte('0' + i)}
		v, err := e.Get(key)
		require.NoError(t, err)
		require.Equal(t, string(value), string(v))
	}
}

func TestDoubleCloseReturnsErrEngineClosed(t *testing.T) {
	e := openTestEngine(t, nil)
	require.NoError(t, e.Close())
	require.ErrorIs(t, e.Close(), ErrEngineClosed)
}

func TestSecondOpenOnLockedDirFails(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DirPath = dir

	e, err := Open(Config{Options: opts})
	require.NoError(t, err)
	defer e.Close()

	_, err = Open(Config{Options: opts})
	require.ErrorIs(t, err, ErrDatabaseLocked)
}

func TestFoldVisitsLiveKeysInOrder(t *testing.T) {
	e := openTestEngine(t, nil)
	defer e.Close()

	for _, k := range []string{"b", "a", "c"} {
		require.NoError(t, e.Put([]byte(k), []byte(k)))
	}
	require.NoError(t, e.Delete([]byte("b")))

	var seen []string
	require.NoError(t, e.Fold(func(key, value []byte) bool {
		seen = append(seen, string(key))
		return true
	}))
	require.Equal(t, []string{"a", "c"}, seen)
}
