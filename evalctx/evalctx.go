// Package evalctx ties the function registry, user variable bindings, and
// the caller's requested result type into the single context object the
// operator and function packages thread through expression evaluation.
package evalctx

import (
	"strings"
	"time"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/function"
	"github.com/gordthompson/jackcess-go/value"
)

// FunctionLookup is a pluggable, case-insensitive name→function resolver.
// *function.Registry satisfies this directly.
type FunctionLookup interface {
	Lookup(name string) (function.Func, bool)
}

// EvalContext is the evaluation-wide state threaded through operator and
// function dispatch: the requested result type (affects Nz, CDate), named
// user bindings ([id]-style column references resolve through here), the
// function resolver, and the function library's own Rnd/clock state.
type EvalContext struct {
	*function.Context
	Lookup FunctionLookup
}

// New builds an EvalContext backed by the process-wide builtin registry.
func New() *EvalContext {
	return &EvalContext{
		Context: function.NewContext(),
		Lookup:  function.Builtins(),
	}
}

// NewWithLookup builds an EvalContext backed by a custom FunctionLookup,
// for callers that register additional or replacement functions.
func NewWithLookup(lookup FunctionLookup) *EvalContext {
	return &EvalContext{
		Context: function.NewContext(),
		Lookup:  lookup,
	}
}

// WithResultType returns a shallow copy of ctx with ResultType set to kind,
// used when descending into a sub-expression whose requested output type
// differs (e.g. evaluating a calculated column's default-value expression).
func (ctx *EvalContext) WithResultType(kind value.Kind) *EvalContext {
	cp := *ctx
	childFn := *ctx.Context
	childFn.ResultType = kind
	cp.Context = &childFn
	return &cp
}

// Bind records a named value for later [name]-style reference resolution.
func (ctx *EvalContext) Bind(name string, v value.Value) {
	if ctx.Bindings == nil {
		ctx.Bindings = make(map[string]value.Value)
	}
	ctx.Bindings[strings.ToLower(name)] = v
}

// Binding resolves name against the current bindings, case-insensitively.
func (ctx *EvalContext) Binding(name string) (value.Value, bool) {
	if ctx.Bindings == nil {
		return value.Value{}, false
	}
	v, ok := ctx.Bindings[strings.ToLower(name)]
	return v, ok
}

// Call resolves name through Lookup and invokes it with args.
func (ctx *EvalContext) Call(name string, args []value.Value) (value.Value, error) {
	fn, ok := ctx.Lookup.Lookup(name)
	if !ok {
		return value.Value{}, unknownFunctionError(name)
	}
	return fn(ctx.Context, args)
}

// WithClock overrides the clock Now/Date/Time consult, for deterministic
// tests.
func (ctx *EvalContext) WithClock(clock func() time.Time) {
	ctx.Context.Clock = clock
}

func unknownFunctionError(name string) error {
	return jerrors.NewArgument(name, "unknown function")
}
