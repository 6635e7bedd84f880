// Package: layopt/builder
//
// errors.go — sentinel errors for the builder package.
//
// Error policy (explicit and strict):
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context using `%w` wrapping.
//   • Constructors MUST NOT panic at runtime; invalid parameters surface
//     as sentinels from the Build call.

package builder

import "errors"

// ErrBadCount indicates a size parameter (chain length, fan-out) below the
// minimum for the requested constructor.
var ErrBadCount = errors.New("builder: node count below minimum")

// ErrConstructFailed indicates a nil constructor passed to Build. A
// constructor that fails returns its own error, which Build wraps.
var ErrConstructFailed = errors.New("builder: constructor failed")
