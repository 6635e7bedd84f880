// Package: layopt/builder
//
// impl_chain.go — implementation of the Chain(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrBadCount).
//   - Adds nodes via cfg.id in ascending index order (0..n-1).
//   - Emits edges (i-1) → i for i=1..n-1 in stable increasing order.
//
// Complexity:
//   - Time: O(n) nodes + O(n-1) edges. Space: O(1) extra.

package builder

import (
	"fmt"

	"github.com/katalvlaran/layopt/core"
)

const minChainNodes = 2

// Chain returns a Constructor that builds a linear operator chain
// n0 → n1 → … → n(n-1).
func Chain(n int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if n < minChainNodes {
			return fmt.Errorf("Chain(%d): %w", n, ErrBadCount)
		}
		for i := 0; i < n; i++ {
			if _, err := g.AddNode(cfg.id(i), cfg.kind, cfg.layout); err != nil {
				return fmt.Errorf("Chain: %w", err)
			}
			if i > 0 {
				if err := g.Connect(cfg.id(i-1), cfg.id(i)); err != nil {
					return fmt.Errorf("Chain: %w", err)
				}
			}
		}

		return nil
	}
}
