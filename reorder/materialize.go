// Package reorder: conversion materialization.
//
// The final stage makes the format map real: chosen formats are written
// into the nodes' output layouts, every remaining non-fusible conversion
// between neighbors becomes a reorder node spliced onto the edge, layouts
// are recomputed in processing order, and a last walk applies the
// per-kind input adjustments some operators require.

package reorder

import (
	"fmt"

	"github.com/katalvlaran/layopt/core"
)

// materialize runs the four sub-steps above. Graph splice failures are
// surfaced; everything else skips.
func (p *pass) materialize() error {
	p.applyFormats()
	if err := p.insertReorders(); err != nil {
		return err
	}
	if err := p.recalcLayouts(); err != nil {
		return err
	}

	return p.adjustKindInputs()
}

// applyFormats writes every concrete assignment into its node's output
// layout so that reorder construction sees the layouts the graph will
// actually run with.
func (p *pass) applyFormats() {
	for _, n := range p.order {
		if f, ok := p.fmtAt(n); ok && !f.IsAny() {
			n.SetOutputFormat(f)
		}
	}
}

// insertReorders walks every data-flow node once forward and once
// backward and splices a conversion onto each edge whose endpoints
// disagree and cannot fuse. Image formats are left to the runtime.
// Spliced reorders are absent from the format map, so the opposite
// endpoint skips the already-converted edge when its turn comes.
func (p *pass) insertReorders() error {
	for _, n := range p.order {
		if !n.InDataFlow() {
			continue
		}
		f, ok := p.fmtAt(n)
		if !ok || f.IsAny() || f.IsImage() {
			continue
		}
		for _, d := range directions {
			for _, nb := range d.next(n) {
				if !nb.InDataFlow() {
					continue
				}
				nf, ok := p.fmtAt(nb)
				if !ok || nf == f || nf.IsAny() || nf.IsImage() {
					continue
				}
				src, snk := d.align(n, nb)
				sf, kf := d.alignFormats(f, nf)
				if p.adv.CanFuseReorder(src, snk, sf, kf) {
					continue
				}

				// Both layouts derive from the producing side; only the
				// format changes, to the sink's assignment.
				in := src.OutputLayout()
				out := in
				out.Format = kf
				op, existing := p.fab.GetReorder(src.ID(), in, out)
				if op == nil {
					continue
				}
				if err := p.g.AddIntermediate(op, snk, src, existing); err != nil {
					return fmt.Errorf("reorder: splice %s between %s and %s: %w",
						op.ID(), src.ID(), snk.ID(), err)
				}
				p.recordInsert(op)
				p.logf("materialize: %s %s %s->%s on %s->%s",
					op.ID(), d, sf, kf, src.ID(), snk.ID())
			}
		}
	}

	return nil
}

// recordInsert remembers a spliced reorder once, even when shared.
func (p *pass) recordInsert(op *core.Node) {
	for _, id := range p.inserted {
		if id == op.ID() {
			return
		}
	}
	p.inserted = append(p.inserted, op.ID())
}

// recalcLayouts refreshes every output layout in the post-splice
// processing order so spliced reorders pick up their producers' shapes.
func (p *pass) recalcLayouts() error {
	order, err := p.g.ProcessingOrder()
	if err != nil {
		return fmt.Errorf("reorder: %w", err)
	}
	for _, n := range order {
		n.RecalcOutputLayout(true)
	}

	return nil
}

// adjustKindInputs applies the per-kind input rules:
//
//   - detection-output consumes plain f32 bfyx on every input;
//   - binary-convolution packs its first input's elements to bin,
//     keeping the format;
//   - deconvolution pulls its first input into the advisor's preferred
//     zyx-blocked format when one is preferred.
func (p *pass) adjustKindInputs() error {
	order, err := p.g.ProcessingOrder()
	if err != nil {
		return fmt.Errorf("reorder: %w", err)
	}
	for _, n := range order {
		switch n.Kind() {
		case core.KindDetectionOutput:
			for _, dep := range n.Dependencies() {
				out := dep.OutputLayout()
				out.Format = core.FormatBfyx
				out.Type = core.TypeF32
				if err := p.adjustInput(n, dep, out); err != nil {
					return err
				}
			}
		case core.KindBinaryConv:
			deps := n.Dependencies()
			if len(deps) == 0 {
				continue
			}
			out := deps[0].OutputLayout()
			out.Type = core.TypeBin
			if err := p.adjustInput(n, deps[0], out); err != nil {
				return err
			}
		case core.KindDeconvolution:
			pref := p.adv.PreferredFormat(n)
			if pref != core.FormatBFsZyxFsv16 && pref != core.FormatBsFsZyxBsv16Fsv16 {
				continue
			}
			deps := n.Dependencies()
			if len(deps) == 0 {
				continue
			}
			out := deps[0].OutputLayout()
			out.Format = pref
			if err := p.adjustInput(n, deps[0], out); err != nil {
				return err
			}
		}
	}

	return nil
}

// adjustInput splices a conversion of dep's output to want in front of n.
// A factory miss means the layouts already agree.
func (p *pass) adjustInput(n, dep *core.Node, want core.Layout) error {
	op, existing := p.fab.GetReorder(dep.ID(), dep.OutputLayout(), want)
	if op == nil {
		return nil
	}
	if err := p.g.AddIntermediate(op, n, dep, existing); err != nil {
		return fmt.Errorf("reorder: adjust input %s of %s: %w", dep.ID(), n.ID(), err)
	}
	op.RecalcOutputLayout(true)
	p.recordInsert(op)
	p.logf("materialize: %s input %s adjusted to %s", n.ID(), dep.ID(), want)

	return nil
}
