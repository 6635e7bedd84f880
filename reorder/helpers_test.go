package reorder_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/layopt/core"
	"github.com/katalvlaran/layopt/reorder"
)

// fakeAdvisor is a table-driven Advisor for tests: preferences and
// support denials are keyed by node ID, fuse permissions by oriented
// edge+format tuples. Like production advisors, it always absorbs a
// conversion whose consumer is itself a reorder.
type fakeAdvisor struct {
	prefs  map[string]core.Format
	denied map[string]map[core.Format]bool
	fuses  map[string]bool
	attrs  reorder.Attributes
}

func newAdvisor() *fakeAdvisor {
	return &fakeAdvisor{
		prefs:  make(map[string]core.Format),
		denied: make(map[string]map[core.Format]bool),
		fuses:  make(map[string]bool),
	}
}

// prefer records the advisor preference for a node ID.
func (a *fakeAdvisor) prefer(id string, f core.Format) *fakeAdvisor {
	a.prefs[id] = f

	return a
}

// deny marks format f unsupported on node id.
func (a *fakeAdvisor) deny(id string, f core.Format) *fakeAdvisor {
	if a.denied[id] == nil {
		a.denied[id] = make(map[core.Format]bool)
	}
	a.denied[id][f] = true

	return a
}

// allowFuse permits absorbing the pf→cf conversion on the src→dst edge.
func (a *fakeAdvisor) allowFuse(src, dst string, pf, cf core.Format) *fakeAdvisor {
	a.fuses[fuseKey(src, dst, pf, cf)] = true

	return a
}

func fuseKey(src, dst string, pf, cf core.Format) string {
	return fmt.Sprintf("%s->%s|%s->%s", src, dst, pf, cf)
}

func (a *fakeAdvisor) PreferredFormat(n *core.Node) core.Format {
	if f, ok := a.prefs[n.ID()]; ok {
		return f
	}

	return core.FormatAny
}

func (a *fakeAdvisor) IsFormatSupported(n *core.Node, f core.Format) bool {
	return !a.denied[n.ID()][f]
}

func (a *fakeAdvisor) CanFuseReorder(producer, consumer *core.Node, pf, cf core.Format) bool {
	if consumer.Kind() == core.KindReorder {
		return true
	}

	return a.fuses[fuseKey(producer.ID(), consumer.ID(), pf, cf)]
}

func (a *fakeAdvisor) OptimizationAttributes() reorder.Attributes { return a.attrs }

// layoutOf builds a layout with the module's test defaults.
func layoutOf(f core.Format, t core.DataType, feature int64, spatial ...int64) core.Layout {
	return core.Layout{
		Format: f,
		Type:   t,
		Shape:  core.Shape{Batch: 1, Feature: feature, Spatial: spatial},
	}
}

// chain builds id[0]→id[1]→… with the given layout on every node.
func chain(t *testing.T, l core.Layout, ids ...string) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for i, id := range ids {
		if _, err := g.AddNode(id, core.KindConvolution, l); err != nil {
			t.Fatal(err)
		}
		if i > 0 {
			if err := g.Connect(ids[i-1], id); err != nil {
				t.Fatal(err)
			}
		}
	}

	return g
}

// run invokes the pass with the default factory and fails the test on error.
func run(t *testing.T, g *core.Graph, adv reorder.Advisor, opts ...reorder.Option) *reorder.Result {
	t.Helper()
	res, err := reorder.Run(g, adv, reorder.NewFactory(g), opts...)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	return res
}

// ids projects nodes onto their IDs.
func ids(nodes []*core.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID())
	}

	return out
}

// reorderIDs returns the IDs of every reorder-kind node in g.
func reorderIDs(g *core.Graph) []string {
	var out []string
	for _, n := range g.Nodes() {
		if n.Kind() == core.KindReorder {
			out = append(out, n.ID())
		}
	}

	return out
}
