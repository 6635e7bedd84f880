package reorder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/layopt/core"
)

// TestMaterialize_ReorderLayout: the spliced conversion carries the
// producer's shape and type with the consumer's format.
func TestMaterialize_ReorderLayout(t *testing.T) {
	g := chain(t, layoutOf(core.FormatBfyx, core.TypeF16, 8, 16, 16), "A", "B")
	adv := newAdvisor().
		prefer("A", core.FormatBfyx).
		prefer("B", core.FormatBFsYxFsv16)

	res := run(t, g, adv)
	require.Len(t, res.Inserted, 1)

	a, err := g.Node("A")
	require.NoError(t, err)
	r := a.Users()[0]
	require.Equal(t, core.KindReorder, r.Kind())
	got := r.OutputLayout()
	require.Equal(t, core.FormatBFsYxFsv16, got.Format)
	require.Equal(t, core.TypeF16, got.Type)
	require.Equal(t, int64(8), got.Shape.Feature)
	require.Equal(t, []int64{16, 16}, got.Shape.Spatial)
}

// TestMaterialize_SharedAcrossUsers: two consumers needing the same
// conversion share one spliced reorder via the factory cache.
func TestMaterialize_SharedAcrossUsers(t *testing.T) {
	g := core.NewGraph()
	l := layoutOf(core.FormatBfyx, core.TypeF32, 8, 16, 16)
	for _, id := range []string{"A", "U1", "U2"} {
		if _, err := g.AddNode(id, core.KindConvolution, l); err != nil {
			t.Fatal(err)
		}
	}
	require.NoError(t, g.Connect("A", "U1"))
	require.NoError(t, g.Connect("A", "U2"))
	adv := newAdvisor().
		prefer("A", core.FormatBfyx).
		prefer("U1", core.FormatYxfb).
		prefer("U2", core.FormatYxfb)

	res := run(t, g, adv)
	require.Len(t, res.Inserted, 1, "one shared conversion, recorded once")

	a, err := g.Node("A")
	require.NoError(t, err)
	users := a.Users()
	require.Len(t, users, 1)
	r := users[0]
	require.Equal(t, core.KindReorder, r.Kind())
	require.Equal(t, []string{"U1", "U2"}, ids(r.Users()))
}

// TestMaterialize_ImageFormatSkipped: image-formatted endpoints never
// grow conversions; the runtime owns those.
func TestMaterialize_ImageFormatSkipped(t *testing.T) {
	g := chain(t, layoutOf(core.FormatBfyx, core.TypeF32, 8, 16, 16), "A", "B")
	adv := newAdvisor().
		prefer("A", core.FormatImageBfyx).
		prefer("B", core.FormatBfyx)

	res := run(t, g, adv)
	require.Empty(t, res.Inserted)
	require.Empty(t, reorderIDs(g))
}

// TestMaterialize_DetectionOutputInputs: every detection-output input is
// forced to f32 bfyx.
func TestMaterialize_DetectionOutputInputs(t *testing.T) {
	g := core.NewGraph()
	if _, err := g.AddNode("loc", core.KindConvolution, layoutOf(core.FormatYxfb, core.TypeF16, 8, 16, 16)); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddNode("conf", core.KindConvolution, layoutOf(core.FormatYxfb, core.TypeF16, 8, 16, 16)); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddNode("det", core.KindDetectionOutput, layoutOf(core.FormatBfyx, core.TypeF32, 1, 200)); err != nil {
		t.Fatal(err)
	}
	require.NoError(t, g.Connect("loc", "det"))
	require.NoError(t, g.Connect("conf", "det"))
	adv := newAdvisor().
		prefer("loc", core.FormatYxfb).
		prefer("conf", core.FormatYxfb).
		prefer("det", core.FormatYxfb) // uniform, so only the kind rule fires

	_ = run(t, g, adv)

	det, err := g.Node("det")
	require.NoError(t, err)
	for _, dep := range det.Dependencies() {
		require.Equal(t, core.KindReorder, dep.Kind())
		l := dep.OutputLayout()
		require.Equal(t, core.FormatBfyx, l.Format)
		require.Equal(t, core.TypeF32, l.Type)
	}
}

// TestMaterialize_BinaryConvolutionInput: the first input's element type
// becomes bin while its format survives.
func TestMaterialize_BinaryConvolutionInput(t *testing.T) {
	g := core.NewGraph()
	if _, err := g.AddNode("src", core.KindConvolution, layoutOf(core.FormatBFsYxFsv16, core.TypeF32, 8, 16, 16)); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddNode("bconv", core.KindBinaryConv, layoutOf(core.FormatBFsYxFsv16, core.TypeF32, 8, 16, 16)); err != nil {
		t.Fatal(err)
	}
	require.NoError(t, g.Connect("src", "bconv"))
	adv := newAdvisor().
		prefer("src", core.FormatBFsYxFsv16).
		prefer("bconv", core.FormatBFsYxFsv16)

	_ = run(t, g, adv)

	bconv, err := g.Node("bconv")
	require.NoError(t, err)
	in := bconv.Dependencies()[0]
	require.Equal(t, core.KindReorder, in.Kind())
	require.Equal(t, core.TypeBin, in.OutputLayout().Type)
	require.Equal(t, core.FormatBFsYxFsv16, in.OutputLayout().Format, "format is kept")
}

// TestMaterialize_DeconvolutionInput: a zyx-blocked preference pulls the
// first input into that format.
func TestMaterialize_DeconvolutionInput(t *testing.T) {
	g := core.NewGraph()
	if _, err := g.AddNode("src", core.KindConvolution, layoutOf(core.FormatBfyx, core.TypeF32, 8, 8, 8, 8)); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddNode("deconv", core.KindDeconvolution, layoutOf(core.FormatBFsZyxFsv16, core.TypeF32, 8, 8, 8, 8)); err != nil {
		t.Fatal(err)
	}
	require.NoError(t, g.Connect("src", "deconv"))
	adv := newAdvisor().
		prefer("src", core.FormatBfyx).
		prefer("deconv", core.FormatBFsZyxFsv16).
		deny("src", core.FormatBFsZyxFsv16)

	_ = run(t, g, adv)

	deconv, err := g.Node("deconv")
	require.NoError(t, err)
	in := deconv.Dependencies()[0]
	require.Equal(t, core.KindReorder, in.Kind())
	require.Equal(t, core.FormatBFsZyxFsv16, in.OutputLayout().Format)
}
