// Package reorder: domain override rules.
//
// Two pre-adjustments run on the raw preferences before propagation. Both
// are narrow, table-driven rules around known weak spots of the cost
// model; their trigger coordinates are fixtures, not general logic, and
// they should disappear once the advisor ranks these cases correctly.

package reorder

import "github.com/katalvlaran/layopt/core"

// fcDemotionSources lists the blocked formats whose conversion to bfyx a
// fully-connected input edge is able to absorb.
var fcDemotionSources = []core.Format{
	core.FormatFsBYxFsv32,
	core.FormatBFsYxFsv4,
	core.FormatBFsYxFsv16,
	core.FormatBFsYxFsv32,
	core.FormatBFsZyxFsv32,
	core.FormatByxfAf32,
}

// demoteFullyConnected rewrites a fully-connected node's preference to
// bfyx when some blocked source format both fuses into the node at its
// input edge and would propagate backward cleanly without that fuse. The
// demotion trades a blocked fc kernel for a fused input conversion.
func (p *pass) demoteFullyConnected() {
	for _, n := range p.order {
		if n.Kind() != core.KindFullyConnected || !n.InDataFlow() {
			continue
		}
		f, ok := p.fmtAt(n)
		if !ok || f == core.FormatBfyx {
			continue
		}
		in := firstDataFlow(n.Dependencies())
		if in == nil {
			continue
		}
		for _, src := range fcDemotionSources {
			if !p.adv.CanFuseReorder(in, n, src, core.FormatBfyx) {
				continue
			}
			if !p.admissibleBackward(n, src) {
				continue
			}
			p.fmts[n] = core.FormatBfyx
			p.logf("override: fully-connected %s demoted to bfyx via %s", n.ID(), src)
			break
		}
	}
}

// int8MVNPattern pins the trigger coordinates of the mvn→conv→mvn
// rewrite below. Unit-test fixtures; do not generalize.
var int8MVNPattern = struct {
	inFeatures  int64
	outFeatures int64
	spatialX    int64
	spatialY    int64
	kernelX     int64
	kernelY     int64
}{
	inFeatures:  16,
	outFeatures: 3,
	spatialX:    1280,
	spatialY:    720,
	kernelX:     3,
	kernelY:     3,
}

// applyInt8MVNPattern rewrites the one int8 mvn→conv→mvn subgraph the
// cost model is known to mishandle on fsv16 networks: the convolution
// and its trailing mvn move from byxf_af32/bfyx to b_fs_yx_fsv16 so the
// whole triple runs blocked.
func (p *pass) applyInt8MVNPattern() {
	if !p.adv.OptimizationAttributes().BFsYxFsv16Network {
		return
	}
	for _, conv := range p.order {
		if conv.Kind() != core.KindConvolution || !conv.InDataFlow() {
			continue
		}
		if f, ok := p.fmtAt(conv); !ok || f != core.FormatByxfAf32 {
			continue
		}
		mvnIn, mvnOut := p.matchInt8MVNTriple(conv)
		if mvnIn == nil {
			continue
		}
		p.fmts[conv] = core.FormatBFsYxFsv16
		p.fmts[mvnOut] = core.FormatBFsYxFsv16
		p.logf("override: int8 mvn pattern at %s", conv.ID())
	}
}

// matchInt8MVNTriple checks every coordinate of the pattern around conv
// and returns the surrounding mvn pair, or nils when anything is off.
func (p *pass) matchInt8MVNTriple(conv *core.Node) (mvnIn, mvnOut *core.Node) {
	// Single int8 data-flow input normalized to b_fs_yx_fsv16.
	inputs := dataFlowOnly(conv.Dependencies())
	if len(inputs) != 1 || inputs[0].Kind() != core.KindMVN {
		return nil, nil
	}
	mvnIn = inputs[0]
	inLayout := mvnIn.OutputLayout()
	if inLayout.Type != core.TypeI8 {
		return nil, nil
	}
	if f, ok := p.fmtAt(mvnIn); !ok || f != core.FormatBFsYxFsv16 {
		return nil, nil
	}

	// Single mvn user held in bfyx, normalizing within channels.
	users := dataFlowOnly(conv.Users())
	if len(users) != 1 || users[0].Kind() != core.KindMVN {
		return nil, nil
	}
	mvnOut = users[0]
	if f, ok := p.fmtAt(mvnOut); !ok || f != core.FormatBfyx {
		return nil, nil
	}
	if attrs, ok := mvnOut.MVN(); !ok || attrs.AcrossChannels {
		return nil, nil
	}

	// 3×3 int8 weights on the second operand.
	deps := conv.Dependencies()
	if len(deps) < 2 {
		return nil, nil
	}
	wl := deps[1].OutputLayout()
	if wl.Type != core.TypeI8 || len(wl.Shape.Spatial) != 2 ||
		wl.Shape.Spatial[0] != int8MVNPattern.kernelX ||
		wl.Shape.Spatial[1] != int8MVNPattern.kernelY {
		return nil, nil
	}

	// Feature and spatial coordinates of the trigger network.
	if inLayout.Shape.Feature != int8MVNPattern.inFeatures ||
		len(inLayout.Shape.Spatial) != 2 ||
		inLayout.Shape.Spatial[0] != int8MVNPattern.spatialX ||
		inLayout.Shape.Spatial[1] != int8MVNPattern.spatialY {
		return nil, nil
	}
	if conv.OutputLayout().Shape.Feature != int8MVNPattern.outFeatures {
		return nil, nil
	}

	// Every convolution attribute at its default.
	attrs, ok := conv.Convolution()
	if !ok || !attrs.Defaults() {
		return nil, nil
	}

	return mvnIn, mvnOut
}

// firstDataFlow returns the first in-data-flow node of list, or nil.
func firstDataFlow(list []*core.Node) *core.Node {
	for _, n := range list {
		if n.InDataFlow() {
			return n
		}
	}

	return nil
}

// dataFlowOnly filters list down to in-data-flow nodes.
func dataFlowOnly(list []*core.Node) []*core.Node {
	out := make([]*core.Node, 0, len(list))
	for _, n := range list {
		if n.InDataFlow() {
			out = append(out, n)
		}
	}

	return out
}
