// Package: layopt/builder
//
// api.go — thin public entry-point for the builder package.
//
// Design contract (strict):
//   - One orchestrator: Build(opts, cons...). Creates the graph, resolves
//     the config, runs constructors in order.
//   - Functional options resolve into an immutable config (no global state).
//   - Determinism: same options and constructor order ⇒ identical graphs.
//   - Safety: never panic; constructors return sentinel errors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/layopt/core"
)

// Constructor applies one deterministic graph mutation using the resolved
// config. Constructors validate parameters early, emit nodes and edges in
// ascending index order, and return only sentinel errors.
type Constructor func(g *core.Graph, cfg config) error

// Build creates a new core.Graph, resolves the configuration from opts,
// and applies all constructors in order. The first constructor error is
// wrapped with "Build: %w" and returned; no partial cleanup is attempted.
// Complexity: O(len(opts)) resolution + Σ constructor cost.
func Build(opts []Option, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph()
	cfg := newConfig(opts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return g, nil
}
