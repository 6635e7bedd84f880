// Package reorder: traversal-direction abstraction.
//
// Every graph walk in this pass runs once forward (users) and once
// backward (dependencies). The two walks must have identical semantics,
// so the recursion is written once against this type and the direction
// only chooses the adjacency accessor and orders each (a, b) pair so the
// data producer always comes first; fuse queries and layout construction
// depend on that orientation.

package reorder

import "github.com/katalvlaran/layopt/core"

// direction selects successor or predecessor traversal.
type direction int

const (
	forward  direction = iota // toward users
	backward                  // toward dependencies
)

// directions is the canonical iteration order: forward, then backward.
var directions = [2]direction{forward, backward}

// next returns the adjacent nodes of n in traversal direction d.
func (d direction) next(n *core.Node) []*core.Node {
	if d == forward {
		return n.Users()
	}

	return n.Dependencies()
}

// align orders the pair (current, neighbor) as (source, sink): traveling
// forward the current node produces for the neighbor; traveling backward
// the neighbor produces for the current node.
func (d direction) align(cur, nb *core.Node) (source, sink *core.Node) {
	if d == forward {
		return cur, nb
	}

	return nb, cur
}

// alignFormats applies the same ordering to the formats carried by the
// (current, neighbor) pair.
func (d direction) alignFormats(cur, nb core.Format) (source, sink core.Format) {
	if d == forward {
		return cur, nb
	}

	return nb, cur
}

// String names the direction for diagnostics.
func (d direction) String() string {
	if d == forward {
		return "forward"
	}

	return "backward"
}
