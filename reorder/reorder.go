// Package reorder implements the layout-reorder insertion pass: assign a
// concrete format to every data-flow node, minimize the conversions
// between neighbors, and splice explicit reorder operators onto the edges
// where a conversion must remain.

package reorder

import (
	"fmt"

	"github.com/katalvlaran/layopt/core"
)

// pass bundles the per-Run state: the graph, the collaborators, the
// format map, and a snapshot of the processing order. It lives for one
// Run invocation only.
type pass struct {
	g    *core.Graph
	adv  Advisor
	fab  Factory
	opts Options

	order []*core.Node               // processing-order snapshot from pass start
	fmts  map[*core.Node]core.Format // format assignment per data-flow node

	inserted []string // IDs of spliced reorders, in splice order
}

// Run executes the pass on g, consulting adv for preferences and fab for
// conversion operators, and applying any number of functional Options.
// Returns ErrGraphNil/ErrAdvisorNil/ErrFactoryNil for invalid input and
// wrapped core errors if the graph rejects a splice; per-node decisions
// never fail, they only skip.
func Run(g *core.Graph, adv Advisor, fab Factory, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if adv == nil {
		return nil, ErrAdvisorNil
	}
	if fab == nil {
		return nil, ErrFactoryNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	order, err := g.ProcessingOrder()
	if err != nil {
		return nil, fmt.Errorf("reorder: %w", err)
	}

	p := &pass{
		g:     g,
		adv:   adv,
		fab:   fab,
		opts:  o,
		order: order,
		fmts:  make(map[*core.Node]core.Format, len(order)),
	}

	// 1) Collect advisor preferences into the format map.
	p.collect()
	// 2) Apply the domain override rules on the raw preferences.
	p.demoteFullyConnected()
	p.applyInt8MVNPattern()
	// 3) Grow concrete formats into adjacent unconstrained regions.
	p.propagate()
	// 4) Locally minimize the remaining conversions.
	p.minimize()

	// 5) Optional diagnostics, computed while the graph still matches the
	// format map edge for edge.
	var stats *Stats
	if o.Statistics {
		stats = p.computeStats()
	}

	// 6) Materialize the remaining conversions as reorder nodes.
	if err := p.materialize(); err != nil {
		return nil, err
	}

	res := &Result{
		Formats:  make(map[string]core.Format, len(p.fmts)),
		Inserted: p.inserted,
		Stats:    stats,
	}
	for n, f := range p.fmts {
		res.Formats[n.ID()] = f
	}

	if err := p.writeTraces(res); err != nil {
		return nil, err
	}

	return res, nil
}

// fmtAt looks up the format of n, defaulting to "absent" for nodes the
// pass does not manage (non-data-flow nodes, freshly spliced reorders).
func (p *pass) fmtAt(n *core.Node) (core.Format, bool) {
	f, ok := p.fmts[n]

	return f, ok
}

// logf prints a diagnostic line when verbose mode is on.
func (p *pass) logf(format string, args ...any) {
	if p.opts.Verbose {
		fmt.Printf("reorder: "+format+"\n", args...)
	}
}
