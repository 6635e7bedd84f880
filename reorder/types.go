// Package reorder: options, errors, collaborator interfaces, and results
// for the layout-reorder insertion pass.
package reorder

import (
	"errors"
	"io"

	"github.com/katalvlaran/layopt/core"
)

// Sentinel errors for pass invocation.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("reorder: graph is nil")

	// ErrAdvisorNil is returned if a nil advisor is passed.
	ErrAdvisorNil = errors.New("reorder: advisor is nil")

	// ErrFactoryNil is returned if a nil reorder factory is passed.
	ErrFactoryNil = errors.New("reorder: factory is nil")
)

// Attributes is the flag-bag of network-level hints exposed by the advisor
// and read by the override rules.
type Attributes struct {
	// BFsYxFsv16Network marks a network whose advisor steers most
	// operators toward b_fs_yx_fsv16.
	BFsYxFsv16Network bool
}

// Advisor is the layout oracle. It ranks formats per node and answers the
// two predicates the pass needs; it is trusted for correctness and must be
// deterministic for identical inputs.
type Advisor interface {
	// PreferredFormat returns the advisor's preference for n, or
	// core.FormatAny when the node is unconstrained.
	PreferredFormat(n *core.Node) core.Format

	// IsFormatSupported reports whether n has an implementation for f.
	IsFormatSupported(n *core.Node, f core.Format) bool

	// CanFuseReorder reports whether a conversion on the producer→consumer
	// edge from pf to cf can be absorbed into the consumer's kernel.
	CanFuseReorder(producer, consumer *core.Node, pf, cf core.Format) bool

	// OptimizationAttributes returns network-level hint flags.
	OptimizationAttributes() Attributes
}

// Factory builds reorder operators. GetReorder returns the operator to
// splice onto the producer's edge (nil when no conversion is needed) and
// an existing flag: true when the operator is a cached/shared node that is
// already wired to the producer, which changes how splicing rewires users.
type Factory interface {
	GetReorder(producerID string, in, out core.Layout) (op *core.Node, existing bool)
}

// Option configures pass behavior via functional arguments.
type Option func(*Options)

// Options holds parameters to customize a Run invocation.
type Options struct {
	// Verbose enables per-stage diagnostics on stdout.
	Verbose bool

	// Statistics fills Result.Stats with the diagnostic reorder counts.
	Statistics bool

	// Trace, if set, receives a gob-encoded, s2-compressed snapshot of the
	// pass decisions after Run completes.
	Trace io.Writer

	// TraceYAML, if set, receives the same snapshot as YAML.
	TraceYAML io.Writer
}

// DefaultOptions returns Options with everything off: silent, no
// statistics, no trace output.
func DefaultOptions() Options { return Options{} }

// WithVerbose enables per-stage diagnostic printing.
func WithVerbose() Option {
	return func(o *Options) { o.Verbose = true }
}

// WithStatistics enables the diagnostic reorder counters.
func WithStatistics() Option {
	return func(o *Options) { o.Statistics = true }
}

// WithTrace streams the compressed binary snapshot to w.
// A nil writer is ignored.
func WithTrace(w io.Writer) Option {
	return func(o *Options) {
		if w != nil {
			o.Trace = w
		}
	}
}

// WithTraceYAML streams the YAML snapshot to w. A nil writer is ignored.
func WithTraceYAML(w io.Writer) Option {
	return func(o *Options) {
		if w != nil {
			o.TraceYAML = w
		}
	}
}

// Stats carries the diagnostic counters of statistics mode:
//   - Reorders: conversions remaining between neighbors of differing
//     formats, halved because every edge is inspected from both endpoints.
//   - FusedNodes: nodes with at least one fusible incoming conversion.
type Stats struct {
	Reorders   int `yaml:"reorders"`
	FusedNodes int `yaml:"fused_nodes"`
}

// Result holds the outcome of a Run:
//   - Formats: final format assignment by node ID (data-flow nodes only).
//   - Inserted: IDs of the reorder nodes spliced into the graph, in
//     insertion order.
//   - Stats: diagnostic counters; nil unless WithStatistics was passed.
type Result struct {
	Formats  map[string]core.Format
	Inserted []string
	Stats    *Stats
}
