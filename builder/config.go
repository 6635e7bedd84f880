// Package: layopt/builder
//
// config.go — functional options resolved into an immutable build config.
//
// Determinism: the config carries no randomness; node IDs come from a
// deterministic prefix+index scheme and every constructor emits nodes and
// edges in ascending index order.

package builder

import (
	"fmt"

	"github.com/katalvlaran/layopt/core"
)

// defaultLayout is used for every generated node unless overridden.
var defaultLayout = core.Layout{
	Format: core.FormatBfyx,
	Type:   core.TypeF32,
	Shape:  core.Shape{Batch: 1, Feature: 8, Spatial: []int64{16, 16}},
}

// config is the resolved, immutable build configuration.
type config struct {
	layout core.Layout
	kind   core.Kind
	prefix string
}

// Option mutates the build configuration before any constructor runs.
type Option func(*config)

// WithLayout sets the output layout stamped on every generated node.
func WithLayout(l core.Layout) Option {
	return func(c *config) { c.layout = l }
}

// WithKind sets the operator kind of every generated node.
func WithKind(k core.Kind) Option {
	return func(c *config) { c.kind = k }
}

// WithIDPrefix sets the prefix of generated node IDs ("<prefix><index>").
func WithIDPrefix(p string) Option {
	return func(c *config) { c.prefix = p }
}

// newConfig resolves options over the defaults.
func newConfig(opts ...Option) config {
	c := config{layout: defaultLayout, kind: core.KindConvolution, prefix: "n"}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// id renders the deterministic node ID for index i.
func (c config) id(i int) string { return fmt.Sprintf("%s%d", c.prefix, i) }
