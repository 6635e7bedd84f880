// Package reorder assigns a concrete memory format to every data-flow
// node of a computation graph and splices explicit reorder operators onto
// the edges where neighbors disagree and cannot absorb the conversion.
//
// What
//
//	Run drives a five-stage pipeline over the graph's processing order:
//
//	  1. Collect   — record each node's advisor preference (possibly any).
//	  2. Override  — apply the domain rules: fully-connected demotion to
//	     bfyx and the int8 mvn→conv→mvn rewrite on fsv16 networks.
//	  3. Propagate — grow each concrete format breadth-first into the
//	     connected region of unconstrained neighbors around it; a region
//	     commits only when every boundary is compatible, fusible, or
//	     untouched. Fusible boundaries seed deferred secondary regions,
//	     retried under a single rejected-checkpoint discipline.
//	  4. Minimize  — for nodes the advisor left unconstrained, pick the
//	     neighborhood format with the lexicographically smallest
//	     (conversion count, converted volume) cost.
//	  5. Materialize — write the assignments into the output layouts,
//	     splice a reorder onto every remaining non-fusible mismatch (image
//	     formats excepted), recompute layouts, and apply the per-kind
//	     input adjustments (detection-output, binary-convolution,
//	     deconvolution).
//
// Why
//
//   - Each operator kernel prefers a particular arrangement; conversions
//     between arrangements cost real time. Spreading formats and deciding
//     the leftovers locally keeps the inserted-reorder count near the
//     minimum the preferences admit without a global search.
//
// Determinism
//
//	Seeds, sweeps, and splices all follow the graph's processing order;
//	extent growth is FIFO; candidate sets preserve first-occurrence
//	order. Identical graphs, advisors, and factories produce identical
//	assignments and identical spliced nodes.
//
// Error posture
//
//	Every per-node decision either applies or skips; the pass never
//	aborts a compilation over a missing map entry or an unsupported
//	format. Errors are reserved for nil collaborators and graph splice
//	failures, which indicate bugs rather than layout conflicts.
//
// Complexity (V = |Nodes|, E = |Edges|)
//
//   - Collect, Minimize, Materialize: O(V + E) sweeps (Minimize adds a
//     deg² factor on swept nodes).
//   - Propagate: O(V·(V+E)) worst case, linear on typical graphs.
//   - Memory: O(V) for the format map and per-seed queues.
//
// Usage
//
//	adv := myAdvisor{}                    // layout oracle
//	res, err := reorder.Run(g, adv, reorder.NewFactory(g),
//	    reorder.WithStatistics(),
//	    reorder.WithVerbose(),
//	)
//	if err != nil {
//	    // ErrGraphNil, ErrAdvisorNil, ErrFactoryNil, or a wrapped core error
//	}
//	_ = res.Formats  // final assignment by node ID
//	_ = res.Inserted // spliced reorder IDs
//
// Options
//
//   - WithVerbose():     print per-stage diagnostics.
//   - WithStatistics():  fill Result.Stats with the reorder counters.
//   - WithTrace(w):      dump a gob+s2 snapshot of the decisions to w.
//   - WithTraceYAML(w):  dump the same snapshot as YAML.
package reorder
