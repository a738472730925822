// Package vanilla implements the plain one-asset option problem and a
// closed-form European engine for it. The engine doubles as the reference
// delegate for the strike-resetting decorators in package forward.
package vanilla

import "github.com/meenmo/optlib/engine"

// Arguments describes a plain vanilla option. It is exactly the shared
// option block; specialized families embed and extend it.
type Arguments struct {
	engine.Option
}

// Results carries the vanilla engine's output. It is exactly the shared
// sensitivity block.
type Results struct {
	engine.Greeks
}
