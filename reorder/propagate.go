// Package reorder: format propagation (region growing).
//
// Each node with a concrete format tries to spread it into the connected
// region of unconstrained neighbors around it. An attempt either proves
// the whole region can take the format (every boundary is the same
// format, a fusible conversion, or untouched) or it fails and leaves the
// map exactly as it was. Fusible boundaries are remembered as deferred
// roots: seeds for independent secondary regions on their far side.

package reorder

import "github.com/katalvlaran/layopt/core"

// growth is the outcome of one breadth-first extent attempt.
type growth struct {
	added []*core.Node // nodes tentatively absorbed into the extent
	cands []*core.Node // fusible boundaries usable as deferred roots
	ok    bool
}

// propagate iterates seeds in processing order and commits every
// successful extent. Only nodes holding FormatAny are ever overwritten.
// Complexity: O(V·(V+E)) worst case, linear on typical graphs.
func (p *pass) propagate() {
	for _, n := range p.order {
		if !n.InDataFlow() {
			continue
		}
		f, ok := p.fmtAt(n)
		if !ok || f.IsAny() {
			continue
		}
		p.propagateFrom(n, f)
	}
}

// propagateFrom runs the primary extent attempt for root, then drains the
// deferred-root queue under the rejected-checkpoint discipline: the first
// failure marks a checkpoint and requeues the candidate; any success
// clears the checkpoint; a second failure of the checkpointed candidate
// with no success in between means the whole remaining queue has failed
// once, and the loop stops. Commit happens only if the primary attempt
// succeeded.
func (p *pass) propagateFrom(root *core.Node, want core.Format) {
	extent := make(map[*core.Node]bool)
	seen := make(map[*core.Node]bool) // nodes already queued as deferred roots

	primary := p.grow(root, want, extent, true, directions[:])
	if !primary.ok {
		return
	}
	members := primary.added
	queue := p.filterCands(primary.cands, seen)

	var checkpoint *core.Node
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		g := p.grow(c, want, extent, true, directions[:])
		if g.ok {
			checkpoint = nil
			members = append(members, g.added...)
			queue = append(queue, p.filterCands(g.cands, seen)...)
			continue
		}
		switch {
		case checkpoint == nil:
			checkpoint = c
			queue = append(queue, c)
		case checkpoint == c:
			queue = nil
		default:
			queue = append(queue, c)
		}
	}

	for _, n := range members {
		p.fmts[n] = want
	}
	if len(members) > 0 {
		p.logf("propagate: %s spread %s to %d nodes", root.ID(), want, len(members))
	}
}

// filterCands drops candidates that were already queued during this
// propagation; without the cap, two fusible boundaries facing each other
// would requeue one another forever.
func (p *pass) filterCands(cands []*core.Node, seen map[*core.Node]bool) []*core.Node {
	out := cands[:0]
	for _, c := range cands {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}

	return out
}

// grow attempts one breadth-first extent starting at seed. The seed
// itself is never classified, only the edges leaving it are: it is
// either the concrete root or a deferred boundary. Nodes absorbed into
// the extent are recorded in the shared extent set so later attempts see
// them as already converted; on failure every absorption of this attempt
// is rolled back and no candidate escapes.
//
// Edge classification for an edge from in-extent node cur to neighbor nb
// holding sel:
//
//	sel == want                → compatible wall, stop
//	conversion fuses at edge   → wall; nb becomes a deferred root when it
//	                             supports want (tried with sel, then with
//	                             nb's output-layout format)
//	sel concrete, no fuse      → attempt fails
//	sel any, want unsupported  → attempt fails
//	sel any, supported         → absorb nb, keep growing
func (p *pass) grow(seed *core.Node, want core.Format, extent map[*core.Node]bool, allowFuse bool, dirs []direction) growth {
	var g growth
	visited := map[*core.Node]bool{seed: true}
	queue := []*core.Node{seed}

	fail := func() growth {
		for _, n := range g.added {
			delete(extent, n)
		}

		return growth{}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range dirs {
			for _, nb := range d.next(cur) {
				if !nb.InDataFlow() || visited[nb] {
					continue
				}
				sel, known := p.fmtAt(nb)
				if !known {
					continue
				}
				if extent[nb] {
					sel = want
				}

				// Compatible wall.
				if sel == want {
					visited[nb] = true
					continue
				}

				// Fusible boundary: the conversion is absorbed by the
				// consumer side, so growth stops here; a supported
				// boundary seeds its own region later.
				if allowFuse && p.edgeFuses(d, cur, nb, want, sel) {
					visited[nb] = true
					if p.adv.IsFormatSupported(nb, want) {
						g.cands = append(g.cands, nb)
					}
					continue
				}

				// Conflicting concrete format: growing here would push an
				// unwanted conversion somewhere else in the graph.
				if !sel.IsAny() {
					return fail()
				}
				// Unconstrained but unable to run in want.
				if !p.adv.IsFormatSupported(nb, want) {
					return fail()
				}

				// Absorb and keep growing in both directions.
				visited[nb] = true
				extent[nb] = true
				g.added = append(g.added, nb)
				queue = append(queue, nb)
			}
		}
	}
	g.ok = true

	return g
}

// edgeFuses asks the advisor whether the conversion on the cur→nb edge
// can be absorbed, orienting producer first; when the neighbor's map
// entry gives no answer, its current output-layout format is tried as a
// fallback.
func (p *pass) edgeFuses(d direction, cur, nb *core.Node, want, sel core.Format) bool {
	src, snk := d.align(cur, nb)
	sf, kf := d.alignFormats(want, sel)
	if p.adv.CanFuseReorder(src, snk, sf, kf) {
		return true
	}
	sf, kf = d.alignFormats(want, nb.OutputLayout().Format)

	return p.adv.CanFuseReorder(src, snk, sf, kf)
}

// admissibleBackward is the dry-run used by the fully-connected override:
// would propagating want from n through its dependencies succeed with
// fusing disabled? Nothing is committed either way.
func (p *pass) admissibleBackward(n *core.Node, want core.Format) bool {
	scratch := make(map[*core.Node]bool)

	return p.grow(n, want, scratch, false, []direction{backward}).ok
}
