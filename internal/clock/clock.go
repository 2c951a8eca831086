// Package clock provides an injectable time source so period boundaries
// can be computed against a fixed instant in tests.
package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts wall-clock access.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Module wires the system clock.
var Module = fx.Module("clock",
	fx.Provide(func() Clock { return SystemClock{} }),
)
