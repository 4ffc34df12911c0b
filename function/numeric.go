package function

import (
	"math"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/value"
)

func registerNumeric(r *Registry) {
	r.Register("Abs", 1, 1, absFunc)
	r.Register("Atan", 1, 1, unaryMath(math.Atan))
	r.Register("Cos", 1, 1, unaryMath(math.Cos))
	r.Register("Exp", 1, 1, unaryMath(math.Exp))
	r.Register("Fix", 1, 1, fixFunc)
	r.Register("Int", 1, 1, intFunc)
	r.Register("Log", 1, 1, logFunc)
	r.Register("Sin", 1, 1, unaryMath(math.Sin))
	r.Register("Sqr", 1, 1, sqrFunc)
	r.Register("Tan", 1, 1, unaryMath(math.Tan))
	r.Register("Sgn", 1, 1, sgnFunc)
	r.Register("Round", 1, 2, roundFunc)
	r.Register("Rnd", 0, 1, rndFunc)
}

func unaryMath(f func(float64) float64) Func {
	return func(ctx *Context, args []value.Value) (value.Value, error) {
		x, err := args[0].AsDouble()
		if err != nil {
			return value.Value{}, err
		}
		return value.Double(f(x)), nil
	}
}

func absFunc(ctx *Context, args []value.Value) (value.Value, error) {
	v := args[0]
	switch v.Kind() {
	case value.KindLong:
		n := v.LongValue()
		if n < 0 {
			n = -n
		}
		return value.Long(n), nil
	case value.KindBigDec:
		return value.BigDec(v.BigDecValue().Abs()), nil
	default:
		f, err := v.AsDouble()
		if err != nil {
			return value.Value{}, err
		}
		return value.Double(math.Abs(f)), nil
	}
}

// fixFunc truncates toward zero.
func fixFunc(ctx *Context, args []value.Value) (value.Value, error) {
	x, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	return value.Double(math.Trunc(x)), nil
}

// intFunc floors.
func intFunc(ctx *Context, args []value.Value) (value.Value, error) {
	x, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	return value.Double(math.Floor(x)), nil
}

func logFunc(ctx *Context, args []value.Value) (value.Value, error) {
	x, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	if x <= 0 {
		return value.Value{}, jerrors.NewArithmetic("Log", "argument must be positive")
	}
	return value.Double(math.Log(x)), nil
}

func sqrFunc(ctx *Context, args []value.Value) (value.Value, error) {
	x, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	if x < 0 {
		return value.Value{}, jerrors.NewArithmetic("Sqr", "argument must be non-negative")
	}
	return value.Double(math.Sqrt(x)), nil
}

func sgnFunc(ctx *Context, args []value.Value) (value.Value, error) {
	x, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	switch {
	case x > 0:
		return value.Long(1), nil
	case x < 0:
		return value.Long(-1), nil
	default:
		return value.Long(0), nil
	}
}

// roundFunc implements Round(x[, n]) with banker's rounding (default n=0).
func roundFunc(ctx *Context, args []value.Value) (value.Value, error) {
	x, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	digits := 0
	if len(args) == 2 {
		n, err := args[1].AsLong()
		if err != nil {
			return value.Value{}, err
		}
		digits = int(n)
	}
	return value.Double(roundHalfEven(x, digits)), nil
}

func roundHalfEven(x float64, digits int) float64 {
	shift := math.Pow(10, float64(digits))
	v := x * shift
	floor := math.Floor(v)
	diff := v - floor
	var r float64
	switch {
	case diff < 0.5:
		r = floor
	case diff > 0.5:
		r = floor + 1
	default:
		if math.Mod(floor, 2) == 0 {
			r = floor
		} else {
			r = floor + 1
		}
	}
	return r / shift
}

// rndFunc implements VBA's Rnd/Rnd(seed): omitted or positive advances the
// sequence, zero repeats the last value, negative reseeds deterministically.
func rndFunc(ctx *Context, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Double(ctx.Rand.Next()), nil
	}
	seed, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	switch {
	case seed > 0:
		return value.Double(ctx.Rand.Next()), nil
	case seed == 0:
		return value.Double(ctx.Rand.Repeat()), nil
	default:
		return value.Double(ctx.Rand.Reseed(seed)), nil
	}
}
