// Package function implements the VBA-style built-in function library:
// control-flow, null-coalescing, type-test/conversion, numeric, hex/oct,
// text, date, and financial families, dispatched by case-insensitive name
// through a process-wide Registry.
package function

import (
	"time"

	"github.com/gordthompson/jackcess-go/value"
)

// Context is the per-evaluation state a Func needs beyond its arguments:
// the result type a caller requested (used by Nz and CDate), user
// bindings, the Rnd LCG state, and an injectable clock for Now/Date/Time.
type Context struct {
	ResultType value.Kind
	Bindings   map[string]value.Value
	Rand       *RandState
	Clock      func() time.Time
}

// NewContext returns a Context with a fresh Rnd sequence and the real
// system clock.
func NewContext() *Context {
	return &Context{
		Rand:  NewRandState(),
		Clock: time.Now,
	}
}

func (c *Context) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}
