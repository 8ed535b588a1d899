package index

import (
	"fmt"

	"github.com/iamNilotpal/ignitedb/pkg/options"
)

// ErrUnsupportedIndexType is returned by New when opts.IndexType names a
// variant that is reserved at the interface but not implemented (SkipList).
var ErrUnsupportedIndexType = fmt.Errorf("index: unsupported index type")

// New constructs the Indexer named by t.
func New(t options.IndexType) (Indexer, error) {
	switch t {
	case options.BTREE, 0:
		return NewBTree(), nil
	case options.ART:
		return NewART(), nil
	default:
		return nil, ErrUnsupportedIndexType
	}
}
