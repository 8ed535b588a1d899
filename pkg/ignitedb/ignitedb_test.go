package ignitedb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/ignitedb/internal/engine"
	"github.com/iamNilotpal/ignitedb/pkg/options"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open("ignitedb-test", options.WithDirPath(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutGetDeleteFacade(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Put([]byte("name"), []byte("bitcask-rs")))
	v, err := db.Get([]byte("name"))
	require.NoError(t, err)
	require.Equal(t, "bitcask-rs", string(v))

	require.NoError(t, db.Delete([]byte("name")))
	_, err = db.Get([]byte("name"))
	require.ErrorIs(t, err, engine.ErrKeyNotFound)
}

func TestSetEXExpiry(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SetEX([]byte("session"), []byte("token"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := db.GetEX([]byte("session"))
	require.ErrorIs(t, err, engine.ErrKeyNotFound)
}

func TestSetEXNoExpiry(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SetEX([]byte("k"), []byte("v"), 0))
	v, err := db.GetEX([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, "v", string(v))
}

func TestWriteBatchFacade(t *testing.T) {
	db := openTestDB(t)

	wb := db.NewWriteBatch(options.NewDefaultWriteBatchOptions())
	require.NoError(t, wb.Put([]byte("a"), []byte("1")))
	require.NoError(t, wb.Commit())

	v, err := db.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, "1", string(v))
}
