package core_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/layopt/core"
)

func bfyx(f int64, spatial ...int64) core.Layout {
	return core.Layout{
		Format: core.FormatBfyx,
		Type:   core.TypeF32,
		Shape:  core.Shape{Batch: 1, Feature: f, Spatial: spatial},
	}
}

// TestAddNode_Errors verifies ID validation and duplicate rejection.
func TestAddNode_Errors(t *testing.T) {
	g := core.NewGraph()
	if _, err := g.AddNode("", core.KindData, bfyx(1)); !errors.Is(err, core.ErrEmptyNodeID) {
		t.Errorf("empty ID: want ErrEmptyNodeID, got %v", err)
	}
	if _, err := g.AddNode("a", core.KindData, bfyx(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.AddNode("a", core.KindData, bfyx(1)); !errors.Is(err, core.ErrDuplicateNode) {
		t.Errorf("duplicate: want ErrDuplicateNode, got %v", err)
	}
}

// TestConnect_Errors verifies endpoint, self-edge, and duplicate checks.
func TestConnect_Errors(t *testing.T) {
	g := core.NewGraph()
	if _, err := g.AddNode("a", core.KindData, bfyx(1)); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddNode("b", core.KindData, bfyx(1)); err != nil {
		t.Fatal(err)
	}
	if err := g.Connect("a", "missing"); !errors.Is(err, core.ErrNodeNotFound) {
		t.Errorf("missing sink: want ErrNodeNotFound, got %v", err)
	}
	if err := g.Connect("a", "a"); !errors.Is(err, core.ErrSelfEdge) {
		t.Errorf("self edge: want ErrSelfEdge, got %v", err)
	}
	if err := g.Connect("a", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.Connect("a", "b"); !errors.Is(err, core.ErrDuplicateEdge) {
		t.Errorf("duplicate edge: want ErrDuplicateEdge, got %v", err)
	}
}

// TestAdjacency_Order verifies dependency and user lists keep edge order.
func TestAdjacency_Order(t *testing.T) {
	g := core.NewGraph()
	for _, id := range []string{"w", "x", "sum"} {
		if _, err := g.AddNode(id, core.KindData, bfyx(1)); err != nil {
			t.Fatal(err)
		}
	}
	// Operand order matters: w first, x second.
	if err := g.Connect("w", "sum"); err != nil {
		t.Fatal(err)
	}
	if err := g.Connect("x", "sum"); err != nil {
		t.Fatal(err)
	}

	sum, err := g.Node("sum")
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, d := range sum.Dependencies() {
		ids = append(ids, d.ID())
	}
	if want := []string{"w", "x"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Dependencies = %v; want %v", ids, want)
	}
}

// TestAccessors_DefensiveCopies verifies mutation of returned slices is safe.
func TestAccessors_DefensiveCopies(t *testing.T) {
	g := core.NewGraph()
	a, _ := g.AddNode("a", core.KindData, bfyx(1))
	if _, err := g.AddNode("b", core.KindData, bfyx(1)); err != nil {
		t.Fatal(err)
	}
	if err := g.Connect("a", "b"); err != nil {
		t.Fatal(err)
	}
	users := a.Users()
	users[0] = nil
	if a.Users()[0] == nil {
		t.Error("Users() returned the internal slice")
	}
}

// TestNodeOptions verifies data-flow flag and attribute attachment.
func TestNodeOptions(t *testing.T) {
	g := core.NewGraph()
	w, _ := g.AddNode("weights", core.KindData, bfyx(3), core.WithDataFlow(false))
	if w.InDataFlow() {
		t.Error("WithDataFlow(false) ignored")
	}
	conv, _ := g.AddNode("conv", core.KindConvolution, bfyx(3),
		core.WithConvolution(core.ConvolutionAttrs{StrideX: 2}))
	attrs, ok := conv.Convolution()
	if !ok || attrs.StrideX != 2 {
		t.Errorf("Convolution() = %+v, %v; want StrideX 2", attrs, ok)
	}
	if _, ok = w.Convolution(); ok {
		t.Error("data node must not report convolution attrs")
	}
	mvn, _ := g.AddNode("mvn", core.KindMVN, bfyx(3),
		core.WithMVN(core.MVNAttrs{AcrossChannels: true}))
	mattrs, ok := mvn.MVN()
	if !ok || !mattrs.AcrossChannels {
		t.Errorf("MVN() = %+v, %v; want AcrossChannels", mattrs, ok)
	}
}

// TestSetOutputFormat verifies format rewrite keeps type and shape.
func TestSetOutputFormat(t *testing.T) {
	g := core.NewGraph()
	n, _ := g.AddNode("a", core.KindConvolution, bfyx(8, 4, 4))
	n.SetOutputFormat(core.FormatBFsYxFsv16)
	got := n.OutputLayout()
	if got.Format != core.FormatBFsYxFsv16 {
		t.Errorf("Format = %v; want b_fs_yx_fsv16", got.Format)
	}
	if got.Type != core.TypeF32 || got.Shape.Feature != 8 {
		t.Error("SetOutputFormat must not touch type or shape")
	}
}
