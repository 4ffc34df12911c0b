package function

import (
	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/value"
)

func registerControlFlow(r *Registry) {
	r.Register("IIf", 3, 3, iifFunc)
	r.Register("Choose", 2, -1, chooseFunc)
	r.Register("Switch", 2, -1, switchFunc)
	r.Register("Nz", 1, 2, nzFunc)
}

// iifFunc implements IIf(cond, a, b): both branches are already evaluated
// by the caller's eager model, so this only selects one; a NULL condition
// is treated as FALSE.
func iifFunc(ctx *Context, args []value.Value) (value.Value, error) {
	cond := args[0]
	truthy := false
	if !cond.IsNull() {
		b, err := cond.AsBoolean()
		if err != nil {
			return value.Value{}, err
		}
		truthy = b
	}
	if truthy {
		return args[1], nil
	}
	return args[2], nil
}

// chooseFunc implements 1-based Choose(n, v1...vk); an out-of-range or
// NULL index yields NULL.
func chooseFunc(ctx *Context, args []value.Value) (value.Value, error) {
	n := args[0]
	if n.IsNull() {
		return value.Null(), nil
	}
	idx, err := n.AsLong()
	if err != nil {
		return value.Value{}, err
	}
	choices := args[1:]
	if idx < 1 || int(idx) > len(choices) {
		return value.Null(), nil
	}
	return choices[idx-1], nil
}

// switchFunc implements Switch(c1, v1, c2, v2, ...): the first pair whose
// condition is true wins; a NULL condition is treated as FALSE; no match
// yields NULL.
func switchFunc(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args)%2 != 0 {
		return value.Value{}, jerrors.NewArgument("Switch", "expected an even number of arguments, got %d", len(args))
	}
	for i := 0; i+1 < len(args); i += 2 {
		cond := args[i]
		if cond.IsNull() {
			continue
		}
		truthy, err := cond.AsBoolean()
		if err != nil {
			return value.Value{}, err
		}
		if truthy {
			return args[i+1], nil
		}
	}
	return value.Null(), nil
}

// nzFunc implements Nz(v) / Nz(v, default). With no default, a NULL v
// falls back to "" when the caller's result type is STRING, otherwise to
// LONG(0) — including for a temporal result type, per the open-question
// decision recorded in DESIGN.md.
func nzFunc(ctx *Context, args []value.Value) (value.Value, error) {
	v := args[0]
	if !v.IsNull() {
		return v, nil
	}
	if len(args) == 2 {
		return args[1], nil
	}
	if ctx != nil && ctx.ResultType == value.KindString {
		return value.String(""), nil
	}
	return value.Long(0), nil
}
