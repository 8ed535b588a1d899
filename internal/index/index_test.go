package index

import (
	"testing"

	"github.com/iamNilotpal/ignitedb/pkg/options"
	"github.com/stretchr/testify/require"
)

func newIndexers(t *testing.T) map[string]Indexer {
	t.Helper()
	return map[string]Indexer{
		"btree": NewBTree(),
		"art":   NewART(),
	}
}

func TestPutGetDelete(t *testing.T) {
	for name, idx := range newIndexers(t) {
		t.Run(name, func(t *testing.T) {
			require.True(t, idx.Put([]byte("name"), Locator{SegmentID: 0, Offset: 10}))

			loc, ok := idx.Get([]byte("name"))
			require.True(t, ok)
			require.Equal(t, Locator{SegmentID: 0, Offset: 10}, loc)

			require.True(t, idx.Delete([]byte("name")))
			_, ok = idx.Get([]byte("name"))
			require.False(t, ok)

			require.False(t, idx.Delete([]byte("name")))
		})
	}
}

func TestIteratorPrefixAndReverse(t *testing.T) {
	keys := []string{"acde", "bcde", "ccae", "ccde", "ccdf", "cfde"}

	for name, idx := range newIndexers(t) {
		t.Run(name, func(t *testing.T) {
			for i, k := range keys {
				require.True(t, idx.Put([]byte(k), Locator{SegmentID: 0, Offset: int64(i)}))
			}

			// Forward, prefix "cc".
			cur := idx.Iterator(options.IteratorOptions{Prefix: []byte("cc")})
			var got []string
			for {
				e, ok := cur.Next()
				if !ok {
					break
				}
				got = append(got, string(e.Key))
			}
			require.Equal(t, []string{"ccae", "ccde", "ccdf"}, got)

			// Reverse, no prefix.
			cur = idx.Iterator(options.IteratorOptions{Reverse: true})
			got = nil
			for {
				e, ok := cur.Next()
				if !ok {
					break
				}
				got = append(got, string(e.Key))
			}
			require.Equal(t, []string{"cfde", "ccdf", "ccde", "ccae", "bcde", "acde"}, got)
		})
	}
}

func TestIteratorSeek(t *testing.T) {
	for name, idx := range newIndexers(t) {
		t.Run(name, func(t *testing.T) {
			for i, k := range []string{"a", "c", "e", "g"} {
				idx.Put([]byte(k), Locator{Offset: int64(i)})
			}

			cur := idx.Iterator(options.IteratorOptions{})
			cur.Seek([]byte("b"))
			e, ok := cur.Next()
			require.True(t, ok)
			require.Equal(t, "c", string(e.Key))

			cur = idx.Iterator(options.IteratorOptions{Reverse: true})
			cur.Seek([]byte("f"))
			e, ok = cur.Next()
			require.True(t, ok)
			require.Equal(t, "e", string(e.Key))
		})
	}
}

func TestListKeysSorted(t *testing.T) {
	for name, idx := range newIndexers(t) {
		t.Run(name, func(t *testing.T) {
			idx.Put([]byte("b"), Locator{})
			idx.Put([]byte("a"), Locator{})
			idx.Put([]byte("c"), Locator{})

			require.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, idx.ListKeys())
			require.Equal(t, 3, idx.Size())
		})
	}
}

func TestFactoryUnsupportedIndexType(t *testing.T) {
	_, err := New(options.SkipList)
	require.ErrorIs(t, err, ErrUnsupportedIndexType)
}
