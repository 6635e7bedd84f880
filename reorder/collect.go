// Package reorder: preference collection.

package reorder

// collect queries the advisor for every data-flow node in processing
// order and records the preference in the format map. Nodes without a
// preference get FormatAny; nodes outside data flow stay absent.
// Complexity: O(V).
func (p *pass) collect() {
	for _, n := range p.order {
		if !n.InDataFlow() {
			continue
		}
		p.fmts[n] = p.adv.PreferredFormat(n)
	}
	p.logf("collect: %d data-flow nodes", len(p.fmts))
}
