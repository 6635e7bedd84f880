// Package reorder: local conversion minimization.
//
// After propagation, a node the advisor left unconstrained may still sit
// between neighbors of differing formats. For each such node the pass
// picks, from the formats its immediate neighborhood already uses, the
// one that induces the fewest conversions. Neighbor assignments are fixed
// at this point and the graph is acyclic, so one greedy sweep in
// processing order is exact for the local metric.

package reorder

import "github.com/katalvlaran/layopt/core"

// localCost is the lexicographic conversion metric: number of non-fusible
// differing neighbors first, converted element volume second.
type localCost struct {
	count  int
	volume int64
}

// less orders costs lexicographically; equal costs keep the incumbent.
func (c localCost) less(o localCost) bool {
	if c.count != o.count {
		return c.count < o.count
	}

	return c.volume < o.volume
}

// minimize sweeps nodes whose advisor preference is unconstrained and
// re-picks their format from the neighborhood. Concrete advisor
// preferences are never reconsidered here.
// Complexity: O(Σ deg²) worst case over swept nodes.
func (p *pass) minimize() {
	for _, n := range p.order {
		if !n.InDataFlow() {
			continue
		}
		if _, ok := p.fmtAt(n); !ok {
			continue
		}
		if !p.adv.PreferredFormat(n).IsAny() {
			continue
		}

		// Still unconstrained: fall back to the node's own output layout
		// when that format has an implementation.
		if p.fmts[n].IsAny() {
			if own := n.OutputLayout().Format; !own.IsAny() && p.adv.IsFormatSupported(n, own) {
				p.fmts[n] = own
			}
		}

		base := p.localMetric(n)
		if base.count == 0 {
			continue
		}

		best, bestCost := p.fmts[n], base
		for _, cand := range p.neighborFormats(n) {
			if cand == best {
				continue
			}
			p.fmts[n] = cand
			if cost := p.localMetric(n); cost.less(bestCost) {
				best, bestCost = cand, cost
			}
		}
		p.fmts[n] = best
		if best != core.FormatAny && bestCost.count < base.count {
			p.logf("minimize: %s -> %s (%d conversions)", n.ID(), best, bestCost.count)
		}
	}
}

// localMetric counts the conversions n's current assignment induces
// against both neighborhoods. A neighbor costs nothing when it matches,
// or when the advisor absorbs the conversion at that edge; otherwise it
// adds one conversion and the producing side's element volume.
func (p *pass) localMetric(n *core.Node) localCost {
	f := p.fmts[n]
	var cost localCost
	for _, d := range directions {
		for _, nb := range d.next(n) {
			if !nb.InDataFlow() {
				continue
			}
			nf, ok := p.fmtAt(nb)
			if !ok || nf == f {
				continue
			}
			src, snk := d.align(n, nb)
			if !f.IsAny() && !nf.IsAny() {
				sf, kf := d.alignFormats(f, nf)
				if p.adv.CanFuseReorder(src, snk, sf, kf) {
					continue
				}
			}
			cost.count++
			cost.volume += src.OutputLayout().Elements()
		}
	}

	return cost
}

// neighborFormats returns the concrete formats used around n that n
// supports (dependencies first, then users, first occurrence wins) as
// the candidate set for minimization.
func (p *pass) neighborFormats(n *core.Node) []core.Format {
	var out []core.Format
	seen := make(map[core.Format]bool)
	for _, list := range [][]*core.Node{n.Dependencies(), n.Users()} {
		for _, nb := range list {
			if !nb.InDataFlow() {
				continue
			}
			nf, ok := p.fmtAt(nb)
			if !ok || nf.IsAny() || seen[nf] {
				continue
			}
			seen[nf] = true
			if !p.adv.IsFormatSupported(n, nf) {
				continue
			}
			out = append(out, nf)
		}
	}

	return out
}
