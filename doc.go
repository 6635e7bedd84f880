// Package layopt assigns tensor memory layouts to the operators of a
// neural-network computation graph and splices in the reorder nodes that
// convert between neighboring operators of differing layouts.
//
// 🚀 What is layopt?
//
//	A compiler middle-end pass, packaged as a plain Go library:
//
//	  • core/    — the computation graph: nodes, kinds, layouts, formats,
//	               deterministic processing order, edge splicing
//	  • builder/ — fluent generators for chain/branch/diamond graphs
//	  • reorder/ — the five-stage pass: collect preferred formats, apply
//	               domain overrides, propagate formats into unconstrained
//	               regions, minimize local conversions, materialize reorders
//
// ✨ Why choose layopt?
//
//   - Deterministic     — identical graphs and advisors produce identical output
//   - Non-intrusive     — the only topology change is inserting reorder nodes
//   - Oracle-driven     — format preference, support, and fusibility are
//     delegated to a pluggable Advisor; reorder construction to a Factory
//   - Pure Go           — no cgo, a small and boring dependency set
//
// Quick ASCII example:
//
//	    A(bfyx)──▶B(any)──▶C(any)──▶D(fsv16)
//
//	with every output layout in bfyx: growing A's format forward or D's
//	format backward reaches the other end's conflicting format, so
//	propagation commits nothing; minimization settles B and C on bfyx,
//	and materialization inserts a single reorder on the C→D edge.
//
// Dive into the per-package doc.go files for tutorials, complexity notes,
// and the full option reference.
//
//	go get github.com/katalvlaran/layopt
package layopt
