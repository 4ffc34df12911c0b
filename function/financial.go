package function

import (
	"math"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/value"
)

func registerFinancial(r *Registry) {
	r.Register("NPer", 3, 5, nperFunc)
	r.Register("FV", 3, 5, fvFunc)
	r.Register("PMT", 3, 5, pmtFunc)
	r.Register("PV", 3, 5, pvFunc)
	r.Register("Rate", 3, 6, rateFunc)
	r.Register("IPmt", 4, 6, ipmtFunc)
	r.Register("PPmt", 4, 6, ppmtFunc)
	r.Register("DDB", 4, 5, ddbFunc)
	r.Register("SLN", 3, 3, slnFunc)
	r.Register("SYD", 4, 4, sydFunc)
}

func floatArg(args []value.Value, i int, def float64) (float64, error) {
	if i >= len(args) {
		return def, nil
	}
	return args[i].AsDouble()
}

func pvAnnuity(rate, nper, pmt, fv, typ float64) float64 {
	if rate == 0 {
		return -(pmt*nper + fv)
	}
	g := math.Pow(1+rate, -nper)
	return -(pmt*(1+rate*typ)*((1-g)/rate) + fv*g)
}

func fvAnnuity(rate, nper, pmt, pv, typ float64) float64 {
	if rate == 0 {
		return -(pv + pmt*nper)
	}
	g := math.Pow(1+rate, nper)
	return -(pv*g + pmt*(1+rate*typ)*((g-1)/rate))
}

func pmtAnnuity(rate, nper, pv, fv, typ float64) float64 {
	if rate == 0 {
		return -(pv + fv) / nper
	}
	g := math.Pow(1+rate, nper)
	return -(pv*g + fv) * rate / ((1 + rate*typ) * (g - 1))
}

func nperAnnuity(rate, pmt, pv, fv, typ float64) (float64, error) {
	if rate == 0 {
		if pmt == 0 {
			return 0, jerrors.NewArithmetic("NPer", "payment must be non-zero when rate is 0")
		}
		return -(pv + fv) / pmt, nil
	}
	num := pmt*(1+rate*typ) - fv*rate
	den := pmt*(1+rate*typ) + pv*rate
	if num <= 0 || den <= 0 {
		return 0, jerrors.NewArithmetic("NPer", "arguments do not converge to a valid term")
	}
	return math.Log(num/den) / math.Log(1+rate), nil
}

func pvFunc(ctx *Context, args []value.Value) (value.Value, error) {
	rate, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	nper, err := args[1].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	pmt, err := args[2].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	fv, err := floatArg(args, 3, 0)
	if err != nil {
		return value.Value{}, err
	}
	typ, err := floatArg(args, 4, 0)
	if err != nil {
		return value.Value{}, err
	}
	return value.Double(pvAnnuity(rate, nper, pmt, fv, typ)), nil
}

func fvFunc(ctx *Context, args []value.Value) (value.Value, error) {
	rate, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	nper, err := args[1].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	pmt, err := args[2].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	pv, err := floatArg(args, 3, 0)
	if err != nil {
		return value.Value{}, err
	}
	typ, err := floatArg(args, 4, 0)
	if err != nil {
		return value.Value{}, err
	}
	return value.Double(fvAnnuity(rate, nper, pmt, pv, typ)), nil
}

func pmtFunc(ctx *Context, args []value.Value) (value.Value, error) {
	rate, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	nper, err := args[1].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	pv, err := args[2].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	fv, err := floatArg(args, 3, 0)
	if err != nil {
		return value.Value{}, err
	}
	typ, err := floatArg(args, 4, 0)
	if err != nil {
		return value.Value{}, err
	}
	return value.Double(pmtAnnuity(rate, nper, pv, fv, typ)), nil
}

func nperFunc(ctx *Context, args []value.Value) (value.Value, error) {
	rate, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	pmt, err := args[1].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	pv, err := args[2].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	fv, err := floatArg(args, 3, 0)
	if err != nil {
		return value.Value{}, err
	}
	typ, err := floatArg(args, 4, 0)
	if err != nil {
		return value.Value{}, err
	}
	n, err := nperAnnuity(rate, pmt, pv, fv, typ)
	if err != nil {
		return value.Value{}, err
	}
	return value.Double(n), nil
}

// rateFunc solves for the periodic rate by Newton-Raphson, starting from
// an optional guess (default 0.1), since there is no closed form.
func rateFunc(ctx *Context, args []value.Value) (value.Value, error) {
	nper, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	pmt, err := args[1].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	pv, err := args[2].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	fv, err := floatArg(args, 3, 0)
	if err != nil {
		return value.Value{}, err
	}
	typ, err := floatArg(args, 4, 0)
	if err != nil {
		return value.Value{}, err
	}
	guess, err := floatArg(args, 5, 0.1)
	if err != nil {
		return value.Value{}, err
	}

	rate := guess
	for i := 0; i < 100; i++ {
		y := pv*math.Pow(1+rate, nper) + pmt*(1+rate*typ)*((math.Pow(1+rate, nper)-1)/maxNonZero(rate)) + fv
		dy := (pvAnnuityDerivative(rate, nper, pmt, pv, typ))
		if dy == 0 {
			break
		}
		next := rate - y/dy
		if math.Abs(next-rate) < 1e-10 {
			rate = next
			break
		}
		rate = next
	}
	return value.Double(rate), nil
}

func maxNonZero(r float64) float64 {
	if r == 0 {
		return 1e-10
	}
	return r
}

// pvAnnuityDerivative is a central-difference approximation of the
// annuity balance equation's derivative with respect to rate, used by
// rateFunc's Newton-Raphson solve.
func pvAnnuityDerivative(rate, nper, pmt, pv, typ float64) float64 {
	const h = 1e-6
	f := func(r float64) float64 {
		g := math.Pow(1+r, nper)
		return pv*g + pmt*(1+r*typ)*((g-1)/maxNonZero(r)) + 0
	}
	return (f(rate+h) - f(rate-h)) / (2 * h)
}

func ipmtFunc(ctx *Context, args []value.Value) (value.Value, error) {
	rate, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	per, err := args[1].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	nper, err := args[2].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	pv, err := args[3].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	fv, err := floatArg(args, 4, 0)
	if err != nil {
		return value.Value{}, err
	}
	typ, err := floatArg(args, 5, 0)
	if err != nil {
		return value.Value{}, err
	}
	if per < 1 || per > nper {
		return value.Value{}, jerrors.NewArgument("IPmt", "period out of range")
	}
	pmt := pmtAnnuity(rate, nper, pv, fv, typ)
	if per == 1 && typ == 1 {
		return value.Double(0), nil
	}
	balance := fvAnnuity(rate, per-1, pmt, pv, typ)
	ipmt := -balance * rate
	if typ == 1 {
		ipmt /= 1 + rate
	}
	return value.Double(ipmt), nil
}

func ppmtFunc(ctx *Context, args []value.Value) (value.Value, error) {
	ipmtVal, err := ipmtFunc(ctx, args)
	if err != nil {
		return value.Value{}, err
	}
	rate, _ := args[0].AsDouble()
	nper, _ := args[2].AsDouble()
	pv, _ := args[3].AsDouble()
	fv, err := floatArg(args, 4, 0)
	if err != nil {
		return value.Value{}, err
	}
	typ, err := floatArg(args, 5, 0)
	if err != nil {
		return value.Value{}, err
	}
	pmt := pmtAnnuity(rate, nper, pv, fv, typ)
	return value.Double(pmt - ipmtVal.DoubleValue()), nil
}

func ddbFunc(ctx *Context, args []value.Value) (value.Value, error) {
	cost, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	salvage, err := args[1].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	life, err := args[2].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	period, err := args[3].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	factor, err := floatArg(args, 4, 2)
	if err != nil {
		return value.Value{}, err
	}
	if life <= 0 || period < 1 || period > life {
		return value.Value{}, jerrors.NewArgument("DDB", "period out of range")
	}
	rate := factor / life
	bv := cost
	var dep float64
	for p := 1; float64(p) <= period; p++ {
		dep = bv * rate
		if bv-dep < salvage {
			dep = bv - salvage
		}
		bv -= dep
	}
	return value.Double(dep), nil
}

func slnFunc(ctx *Context, args []value.Value) (value.Value, error) {
	cost, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	salvage, err := args[1].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	life, err := args[2].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	if life == 0 {
		return value.Value{}, jerrors.NewArithmetic("SLN", "life must be non-zero")
	}
	return value.Double((cost - salvage) / life), nil
}

func sydFunc(ctx *Context, args []value.Value) (value.Value, error) {
	cost, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	salvage, err := args[1].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	life, err := args[2].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	period, err := args[3].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	denom := life * (life + 1) / 2
	if denom == 0 {
		return value.Value{}, jerrors.NewArithmetic("SYD", "life must be non-zero")
	}
	return value.Double((cost - salvage) * (life - period + 1) / denom), nil
}
