package index

import (
	"bytes"
	"sort"
	"sync"

	art "github.com/plar/go-adaptive-radix-tree"

	"github.com/iamNilotpal/ignitedb/pkg/options"
)

// ART is the second Indexer variant: an adaptive radix tree backed by
// plar/go-adaptive-radix-tree. It trades the btree's simplicity for better
// cache locality on prefix-heavy key spaces; it satisfies exactly the same
// Indexer contract and the same iterator semantics (snapshot cursor,
// rewind/seek/next, forward/reverse, prefix filter) as BTree.
type ART struct {
	mu   sync.RWMutex
	tree art.Tree
}

// NewART constructs an empty ART index.
func NewART() *ART {
	return &ART{tree: art.New()}
}

// Put implements Indexer.
func (a *ART) Put(key []byte, loc Locator) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tree.Insert(art.Key(append([]byte(nil), key...)), loc)
	return true
}

// Get implements Indexer.
func (a *ART) Get(key []byte) (Locator, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, found := a.tree.Search(art.Key(key))
	if !found {
		return Locator{}, false
	}
	return v.(Locator), true
}

// Delete implements Indexer.
func (a *ART) Delete(key []byte) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, deleted := a.tree.Delete(art.Key(key))
	return deleted
}

// Size implements Indexer.
func (a *ART) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tree.Size()
}

// ListKeys implements Indexer. ART's ForEach walks keys in ascending
// lexicographic order, the same total order BTree uses.
func (a *ART) ListKeys() [][]byte {
	a.mu.RLock()
	defer a.mu.RUnlock()

	keys := make([][]byte, 0, a.tree.Size())
	a.tree.ForEach(func(node art.Node) bool {
		keys = append(keys, append([]byte(nil), node.Key()...))
		return true
	})
	return keys
}

// Iterator implements Indexer, taking a snapshot of the current tree
// contents in the requested order and prefix filter.
func (a *ART) Iterator(opts options.IteratorOptions) *Cursor {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entries := make([]Entry, 0, a.tree.Size())
	a.tree.ForEach(func(node art.Node) bool {
		entries = append(entries, Entry{
			Key:     append([]byte(nil), node.Key()...),
			Locator: node.Value().(Locator),
		})
		return true
	})

	if opts.Reverse {
		sort.Slice(entries, func(i, j int) bool {
			return bytes.Compare(entries[i].Key, entries[j].Key) > 0
		})
	}

	return newCursor(filterByPrefix(entries, opts.Prefix), opts.Reverse)
}

// Close implements Indexer. The radix tree holds no external resources.
func (a *ART) Close() error {
	return nil
}
