// Package: layopt/builder
//
// impl_fan.go — Branch(fanOut) and Diamond() constructors.
//
// Contract:
//   - Branch: fanOut ≥ 1 (else ErrBadCount); one producer "n0" feeding
//     users "n1".."n<fanOut>" in ascending order.
//   - Diamond: fixed shape n0 → {n1, n2} → n3; edge order n1 before n2.
//
// Complexity: O(fanOut) / O(1).

package builder

import (
	"fmt"

	"github.com/katalvlaran/layopt/core"
)

const minFanOut = 1

// Branch returns a Constructor that builds one producer feeding fanOut
// independent consumers.
func Branch(fanOut int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if fanOut < minFanOut {
			return fmt.Errorf("Branch(%d): %w", fanOut, ErrBadCount)
		}
		if _, err := g.AddNode(cfg.id(0), cfg.kind, cfg.layout); err != nil {
			return fmt.Errorf("Branch: %w", err)
		}
		for i := 1; i <= fanOut; i++ {
			if _, err := g.AddNode(cfg.id(i), cfg.kind, cfg.layout); err != nil {
				return fmt.Errorf("Branch: %w", err)
			}
			if err := g.Connect(cfg.id(0), cfg.id(i)); err != nil {
				return fmt.Errorf("Branch: %w", err)
			}
		}

		return nil
	}
}

// Diamond returns a Constructor that builds the four-node diamond
// n0 → {n1, n2} → n3.
func Diamond() Constructor {
	return func(g *core.Graph, cfg config) error {
		for i := 0; i < 4; i++ {
			if _, err := g.AddNode(cfg.id(i), cfg.kind, cfg.layout); err != nil {
				return fmt.Errorf("Diamond: %w", err)
			}
		}
		for _, e := range [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}} {
			if err := g.Connect(cfg.id(e[0]), cfg.id(e[1])); err != nil {
				return fmt.Errorf("Diamond: %w", err)
			}
		}

		return nil
	}
}
