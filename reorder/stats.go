// Package reorder: diagnostic statistics.

package reorder

// computeStats counts, over the final format map and the pre-splice
// graph, the conversions that remain between neighbors of differing
// formats and the nodes with at least one fusible incoming conversion.
// Every data-flow edge is inspected from both endpoints, so the raw
// conversion tally is halved; edges to boundary nodes outside data flow
// are never inspected at all and do not disturb the division.
// Complexity: O(V + E).
func (p *pass) computeStats() *Stats {
	s := &Stats{}
	total := 0
	for _, n := range p.order {
		if !n.InDataFlow() {
			continue
		}
		f, ok := p.fmtAt(n)
		if !ok || f.IsAny() {
			continue
		}
		fusedIn := false
		for _, d := range directions {
			for _, nb := range d.next(n) {
				if !nb.InDataFlow() {
					continue
				}
				nf, ok := p.fmtAt(nb)
				if !ok || nf.IsAny() || nf == f {
					continue
				}
				src, snk := d.align(n, nb)
				sf, kf := d.alignFormats(f, nf)
				if p.adv.CanFuseReorder(src, snk, sf, kf) {
					if d == backward {
						fusedIn = true
					}
					continue
				}
				total++
			}
		}
		if fusedIn {
			s.FusedNodes++
		}
	}
	s.Reorders = total / 2
	p.logf("stats: %d reorders, %d nodes with fused input", s.Reorders, s.FusedNodes)

	return s
}
