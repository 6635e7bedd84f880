// Package reorder: default reorder factory.
//
// The factory creates the conversion operators that materialization
// splices onto edges. Requests are keyed on (producer, in-layout,
// out-layout): the first request builds a fresh node, repeats return the
// cached node with the existing flag raised so several consumers of one
// producer share a single conversion.

package reorder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/layopt/core"
)

// factory is the default Factory implementation bound to one graph.
type factory struct {
	g     *core.Graph
	cache map[string]*core.Node
	seq   int
}

// NewFactory returns a Factory that creates reorder nodes inside g and
// dedups them by (producerID, in, out). Not safe for concurrent use; the
// pass is single-threaded.
func NewFactory(g *core.Graph) Factory {
	return &factory{g: g, cache: make(map[string]*core.Node)}
}

// GetReorder returns the reorder converting in→out after producerID, or
// (nil, false) when the layouts already match. The second value reports
// whether the node was served from the cache.
// Complexity: O(1) amortized.
func (f *factory) GetReorder(producerID string, in, out core.Layout) (*core.Node, bool) {
	if in.Equal(out) {
		return nil, false
	}

	key := producerID + "|" + in.String() + "|" + out.String()
	if op, ok := f.cache[key]; ok {
		return op, true
	}

	// Fresh node; bump the sequence past any ID the host graph already took.
	var op *core.Node
	for {
		f.seq++
		id := fmt.Sprintf("reorder_%s_%d", producerID, f.seq)
		n, err := f.g.AddNode(id, core.KindReorder, out)
		if errors.Is(err, core.ErrDuplicateNode) {
			continue
		}
		if err != nil {
			// Only duplicate IDs are recoverable; anything else means the
			// graph is gone and there is no conversion to offer.
			return nil, false
		}
		op = n
		break
	}
	f.cache[key] = op

	return op, false
}
