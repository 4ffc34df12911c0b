package function

import (
	"strings"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/value"
)

// Func is the shape of a built-in function: canonical-named, dispatched
// with the evaluation context and its already-evaluated arguments.
type Func func(ctx *Context, args []value.Value) (value.Value, error)

// entry pairs a Func with its arity: MaxArgs == -1 means unbounded.
type entry struct {
	minArgs int
	maxArgs int
	call    Func
}

// Registry is a case-insensitive name→function table. The zero Registry is
// usable; Builtins() returns the process-wide table of every built-in
// function this package provides.
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds fn under name (arity min..max, max -1 for unbounded),
// canonicalizing name to lowercase for lookup.
func (r *Registry) Register(name string, minArgs, maxArgs int, fn Func) {
	r.entries[strings.ToLower(name)] = entry{minArgs: minArgs, maxArgs: maxArgs, call: fn}
}

// Lookup finds name's function, case-insensitively.
func (r *Registry) Lookup(name string) (Func, bool) {
	e, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return e.call, true
}

// Call looks up name, checks its arity, and invokes it with args.
func (r *Registry) Call(ctx *Context, name string, args []value.Value) (value.Value, error) {
	e, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return value.Value{}, jerrors.NewArgument(name, "unknown function")
	}
	if len(args) < e.minArgs || (e.maxArgs >= 0 && len(args) > e.maxArgs) {
		return value.Value{}, jerrors.NewArgument(name, "wrong number of arguments: got %d", len(args))
	}
	return e.call(ctx, args)
}

var builtins = buildBuiltins()

// Builtins returns the process-wide registry of every built-in function.
func Builtins() *Registry { return builtins }

func buildBuiltins() *Registry {
	r := NewRegistry()
	registerControlFlow(r)
	registerTypeTests(r)
	registerConverters(r)
	registerNumeric(r)
	registerHexOct(r)
	registerText(r)
	registerDate(r)
	registerFinancial(r)
	return r
}
