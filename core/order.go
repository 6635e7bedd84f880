// Package core: deterministic processing order.
//
// The processing order is a fixed topological order of the graph: every
// producer precedes all of its consumers, and ties are broken by node
// insertion sequence. All layout passes iterate in this order, which is
// what makes their output reproducible run to run.

package core

// ProcessingOrder returns the graph's topological order, producers first,
// ties broken by insertion sequence. The order is cached and invalidated
// by any mutation. Returns ErrCycleDetected if the graph is not a DAG.
// Complexity: O(V + E) on a cache miss, O(V) to copy on a hit.
func (g *Graph) ProcessingOrder() ([]*Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.order == nil {
		order, err := g.topoSort()
		if err != nil {
			return nil, err
		}
		g.order = order
	}

	return append([]*Node(nil), g.order...), nil
}

// topoSort runs Kahn's algorithm with a FIFO frontier seeded in insertion
// order. Caller must hold the write lock.
func (g *Graph) topoSort() ([]*Node, error) {
	indegree := make(map[*Node]int, len(g.seq))
	for _, n := range g.seq {
		indegree[n] = len(n.deps)
	}

	// Seed the frontier with source nodes, oldest first.
	frontier := make([]*Node, 0, len(g.seq))
	for _, n := range g.seq {
		if indegree[n] == 0 {
			frontier = append(frontier, n)
		}
	}

	order := make([]*Node, 0, len(g.seq))
	for len(frontier) > 0 {
		n := frontier[0]
		frontier = frontier[1:]
		order = append(order, n)
		// Release users in edge order so the frontier stays deterministic.
		for _, u := range n.users {
			indegree[u]--
			if indegree[u] == 0 {
				frontier = append(frontier, u)
			}
		}
	}

	if len(order) != len(g.seq) {
		return nil, ErrCycleDetected
	}

	return order, nil
}
