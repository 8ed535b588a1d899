// Package index provides ignitedb's in-memory key→locator mapping: the
// Bitcask "keydir". It defines the Indexer capability set and two
// implementations that both satisfy it — an ordered map backed by
// google/btree (the default) and an adaptive radix tree backed by
// plar/go-adaptive-radix-tree — so the engine can swap index data
// structures without changing any call site.
//
// A key is present in the index iff the latest log record for it, in
// id/offset order, is NORMAL. Index entries never cover the transaction
// sentinel key.
package index

import (
	"bytes"
	"sort"

	"github.com/iamNilotpal/ignitedb/pkg/options"
)

// Locator pins a record to the first byte of its encoding in a specific
// segment. Locators are immutable values; updating a key's entry replaces
// one locator with another.
type Locator struct {
	SegmentID uint32
	Offset    int64
}

// Entry is one key/locator pair, used when listing keys or iterating.
type Entry struct {
	Key     []byte
	Locator Locator
}

// Indexer is the capability set every index implementation provides: point
// put/get/delete, prefix-filtered forward/reverse iteration, and full key
// listing.
type Indexer interface {
	// Put inserts or overwrites key's locator. Returns true on success.
	Put(key []byte, loc Locator) bool

	// Get returns key's locator and whether it was present.
	Get(key []byte) (Locator, bool)

	// Delete removes key. Returns true iff the key was present.
	Delete(key []byte) bool

	// Iterator returns a snapshot cursor over the index per opts.
	Iterator(opts options.IteratorOptions) *Cursor

	// ListKeys returns every live key, ascending.
	ListKeys() [][]byte

	// Size returns the number of live keys.
	Size() int

	// Close releases any resources the index holds.
	Close() error
}

// Cursor is a snapshot-style iterator: it captures the key/locator pairs
// matching its options at construction time and is unaffected by
// subsequent mutations to the index it came from.
type Cursor struct {
	entries []Entry
	reverse bool
	pos     int
}

// newCursor builds a Cursor from entries already sorted in iteration order
// (ascending if !reverse, descending if reverse) and already filtered to
// opts.Prefix.
func newCursor(entries []Entry, reverse bool) *Cursor {
	return &Cursor{entries: entries, reverse: reverse, pos: -1}
}

// Rewind positions the cursor before the first captured element.
func (c *Cursor) Rewind() { c.pos = -1 }

// Seek positions the cursor so the next call to Next returns the smallest
// captured key >= k in forward mode, or the largest captured key <= k in
// reverse mode. Implemented as a binary search over the captured sequence.
func (c *Cursor) Seek(k []byte) {
	idx := sort.Search(len(c.entries), func(i int) bool {
		if c.reverse {
			return bytes.Compare(c.entries[i].Key, k) <= 0
		}
		return bytes.Compare(c.entries[i].Key, k) >= 0
	})
	c.pos = idx - 1
}

// Next advances the cursor and returns the next entry, or (Entry{}, false)
// when the captured sequence is exhausted. Every entry already satisfies
// the cursor's prefix filter.
func (c *Cursor) Next() (Entry, bool) {
	c.pos++
	if c.pos >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[c.pos], true
}

// Len returns the number of entries captured by this cursor.
func (c *Cursor) Len() int { return len(c.entries) }

// filterByPrefix returns the subslice of a sorted entries slice whose keys
// start with prefix, without allocating when prefix is empty.
func filterByPrefix(entries []Entry, prefix []byte) []Entry {
	if len(prefix) == 0 {
		return entries
	}
	out := entries[:0:0]
	for _, e := range entries {
		if bytes.HasPrefix(e.Key, prefix) {
			out = append(out, e)
		}
	}
	return out
}
