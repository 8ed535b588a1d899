package batch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/ignitedb/internal/engine"
	"github.com/iamNilotpal/ignitedb/pkg/options"
)

func openTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	opts := options.NewDefaultOptions()
	opts.DirPath = t.TempDir()
	e, err := engine.Open(engine.Config{Options: opts})
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

// S2 — batch atomicity: staged writes aren't visible until Commit, and
// last-writer-wins within the batch.
func TestBatchAtomicity(t *testing.T) {
	e := openTestEngine(t)
	wb := New(e, options.NewDefaultWriteBatchOptions())

	require.NoError(t, wb.Put([]byte("k1"), []byte("v1")))
	require.NoError(t, wb.Put([]byte("k2"), []byte("v2")))
	require.NoError(t, wb.Put([]byte("k2"), []byte("v2b")))

	_, err := e.Get([]byte("k1"))
	require.ErrorIs(t, err, engine.ErrKeyNotFound)

	require.NoError(t, wb.Commit())

	v1, err := e.Get([]byte("k1"))
	require.NoError(t, err)
	require.Equal(t, "v1", string(v1))

	v2, err := e.Get([]byte("k2"))
	require.NoError(t, err)
	require.Equal(t, "v2b", string(v2))
}

func TestBatchDeleteOfUnknownKeyIsNoop(t *testing.T) {
	e := openTestEngine(t)
	wb := New(e, options.NewDefaultWriteBatchOptions())

	require.NoError(t, wb.Delete([]byte("never-written")))
	require.NoError(t, wb.Commit())
	require.Equal(t, 0, e.Stat().KeyCount)
}

func TestBatchExceedsMaxBatchNum(t *testing.T) {
	e := openTestEngine(t)
	opts := options.NewDefaultWriteBatchOptions()
	opts.MaxBatchNum = 1
	wb := New(e, opts)

	require.NoError(t, wb.Put([]byte("a"), []byte("1")))
	require.NoError(t, wb.Put([]byte("b"), []byte("2")))

	require.ErrorIs(t, wb.Commit(), ErrExceedMaxBatchNum)
}

func TestBatchCommitAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DirPath = dir

	e, err := engine.Open(engine.Config{Options: opts})
	require.NoError(t, err)

	wb1 := New(e, options.NewDefaultWriteBatchOptions())
	require.NoError(t, wb1.Put([]byte("k1"), []byte("v1")))
	require.NoError(t, wb1.Put([]byte("k2"), []byte("v2")))
	require.NoError(t, wb1.Put([]byte("k3"), []byte("v3")))
	require.NoError(t, wb1.Commit())

	wb2 := New(e, options.NewDefaultWriteBatchOptions())
	require.NoError(t, wb2.Put([]byte("k4"), []byte("v4")))
	require.NoError(t, wb2.Commit())

	require.NoError(t, e.Close())

	reopened, err := engine.Open(engine.Config{Options: opts})
	require.NoError(t, err)
	defer reopened.Close()

	require.Len(t, reopened.ListKeys(), 4)
}
