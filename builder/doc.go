// Package builder provides deterministic constructors for the small graph
// shapes the layout passes are exercised with: chains, fans, diamonds.
//
// What
//
//   - Build(opts, cons...) — one orchestrator: creates the graph, resolves
//     functional options into an immutable config, applies constructors in
//     order.
//   - Chain(n), Branch(fanOut), Diamond() — topology constructors with
//     prefix+index node IDs and stable edge emission order.
//   - WithLayout / WithKind / WithIDPrefix — stamp every generated node.
//
// Why
//
//   - Tests and examples for the reorder pass need many tiny graphs whose
//     traversal order is byte-for-byte reproducible; hand-wiring them is
//     noise. One builder call replaces a dozen AddNode/Connect lines.
//
// Determinism
//
//	No randomness anywhere: IDs are "<prefix><index>", nodes and edges are
//	emitted in ascending index order, so two Build calls with equal inputs
//	produce graphs with identical processing orders.
//
// Errors
//
//   - ErrBadCount        — size parameter below the constructor's minimum.
//   - ErrConstructFailed — nil constructor passed to Build.
package builder
