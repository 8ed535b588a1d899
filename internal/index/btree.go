package index

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/iamNilotpal/ignitedb/pkg/options"
)

// btreeItem is the value google/btree's generic BTreeG stores; comparisons
// are by Key only, so two items with equal keys are "equal" for ordering
// purposes and ReplaceOrInsert overwrites in place.
type btreeItem struct {
	key []byte
	loc Locator
}

func btreeLess(a, b btreeItem) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// BTree is the default Indexer: an ordered map over google/btree's BTreeG,
// protected by an internal read/write lock so multiple readers and a single
// writer can proceed concurrently per the spec's concurrency model.
type BTree struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[btreeItem]
}

// NewBTree constructs an empty BTree index with a reasonable default
// branching degree.
func NewBTree() *BTree {
	return &BTree{tree: btree.NewG(32, btreeLess)}
}

// Put implements Indexer.
func (b *BTree) Put(key []byte, loc Locator) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tree.ReplaceOrInsert(btreeItem{key: append([]byte(nil), key...), loc: loc})
	return true
}

// Get implements Indexer.
func (b *BTree) Get(key []byte) (Locator, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	item, ok := b.tree.Get(btreeItem{key: key})
	if !ok {
		return Locator{}, false
	}
	return item.loc, true
}

// Delete implements Indexer.
func (b *BTree) Delete(key []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.tree.Delete(btreeItem{key: key})
	return ok
}

// Size implements Indexer.
func (b *BTree) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.Len()
}

// ListKeys implements Indexer.
func (b *BTree) ListKeys() [][]byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([][]byte, 0, b.tree.Len())
	b.tree.Ascend(func(item btreeItem) bool {
		keys = append(keys, item.key)
		return true
	})
	return keys
}

// Iterator implements Indexer, taking a snapshot of the current tree
// contents in the requested order and prefix filter.
func (b *BTree) Iterator(opts options.IteratorOptions) *Cursor {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entries := make([]Entry, 0, b.tree.Len())
	walk := func(item btreeItem) bool {
		entries = append(entries, Entry{Key: item.key, Locator: item.loc})
		return true
	}
	if opts.Reverse {
		b.tree.Descend(walk)
	} else {
		b.tree.Ascend(walk)
	}

	return newCursor(filterByPrefix(entries, opts.Prefix), opts.Reverse)
}

// Close implements Indexer. The btree holds no external resources.
func (b *BTree) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tree.Clear(false)
	return nil
}
