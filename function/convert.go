package function

import (
	"strings"
	"time"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/temporal"
	"github.com/gordthompson/jackcess-go/value"
)

func registerConverters(r *Registry) {
	r.Register("CBool", 1, 1, cBoolFunc)
	r.Register("CByte", 1, 1, cByteFunc)
	r.Register("CCur", 1, 1, cCurFunc)
	r.Register("CDate", 1, 1, cDateFunc)
	r.Register("CVDate", 1, 1, cDateFunc)
	r.Register("CDbl", 1, 1, cDblFunc)
	r.Register("CDec", 1, 1, cDecFunc)
	r.Register("CInt", 1, 1, cIntFunc)
	r.Register("CLng", 1, 1, cLngFunc)
	r.Register("CSng", 1, 1, cSngFunc)
	r.Register("CStr", 1, 1, cStrFunc)
	r.Register("CVar", 1, 1, cVarFunc)
}

func cBoolFunc(ctx *Context, args []value.Value) (value.Value, error) {
	b, err := args[0].AsBoolean()
	if err != nil {
		return value.Value{}, err
	}
	return value.FromBool(b), nil
}

func cByteFunc(ctx *Context, args []value.Value) (value.Value, error) {
	n, err := args[0].AsLong()
	if err != nil {
		return value.Value{}, err
	}
	if n < 0 || n > 255 {
		return value.Value{}, jerrors.NewArithmetic("CByte", "value out of BYTE range (0..255)")
	}
	return value.Long(n), nil
}

func cIntFunc(ctx *Context, args []value.Value) (value.Value, error) {
	n, err := args[0].AsLong()
	if err != nil {
		return value.Value{}, err
	}
	if n < -32768 || n > 32767 {
		return value.Value{}, jerrors.NewArithmetic("CInt", "value out of INTEGER range")
	}
	return value.Long(n), nil
}

func cLngFunc(ctx *Context, args []value.Value) (value.Value, error) {
	n, err := args[0].AsLong()
	if err != nil {
		return value.Value{}, err
	}
	return value.Long(n), nil
}

func cSngFunc(ctx *Context, args []value.Value) (value.Value, error) {
	f, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	const maxFloat32 = 3.4028235e38
	if f > maxFloat32 || f < -maxFloat32 {
		return value.Value{}, jerrors.NewArithmetic("CSng", "value out of SINGLE range")
	}
	return value.Double(float64(float32(f))), nil
}

func cDblFunc(ctx *Context, args []value.Value) (value.Value, error) {
	f, err := args[0].AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	return value.Double(f), nil
}

func cDecFunc(ctx *Context, args []value.Value) (value.Value, error) {
	d, err := args[0].AsBigDecimal()
	if err != nil {
		return value.Value{}, err
	}
	return value.BigDec(d), nil
}

func cCurFunc(ctx *Context, args []value.Value) (value.Value, error) {
	d, err := args[0].AsBigDecimal()
	if err != nil {
		return value.Value{}, err
	}
	return value.BigDec(value.RoundHalfEven(d, 4)), nil
}

func cStrFunc(ctx *Context, args []value.Value) (value.Value, error) {
	return value.String(args[0].AsString()), nil
}

func cVarFunc(ctx *Context, args []value.Value) (value.Value, error) {
	return args[0], nil
}

// cDateFunc implements CDate/CVDate: a numeric value is interpreted
// directly as a date-double, a string is parsed against the common VBA
// date/time layouts. The result kind follows ctx.ResultType when it is
// itself temporal, otherwise defaults to DATE_TIME.
func cDateFunc(ctx *Context, args []value.Value) (value.Value, error) {
	v := args[0]
	cfg := temporal.DefaultConfig()

	var dd temporal.DateDouble
	switch {
	case v.IsTemporal():
		dd = v.DateDoubleValue()
		cfg = v.TemporalConfig()
	case v.IsNumeric():
		f, err := v.AsDouble()
		if err != nil {
			return value.Value{}, err
		}
		dd = temporal.DateDouble(f)
	case v.Kind() == value.KindString:
		s := strings.TrimSpace(v.StringValue())
		t, err := parseDateString(s)
		if err != nil {
			return value.Value{}, jerrors.NewArithmetic("CDate", "cannot parse date string")
		}
		dd = temporal.FromTime(t)
	default:
		return value.Value{}, jerrors.NewTypeMismatch("CDate", "numeric, string, or temporal", v.Kind().String())
	}

	kind := value.KindDateTime
	if ctx != nil && (ctx.ResultType == value.KindDate || ctx.ResultType == value.KindTime || ctx.ResultType == value.KindDateTime) {
		kind = ctx.ResultType
	}
	switch kind {
	case value.KindDate:
		return value.Date(dd, cfg), nil
	case value.KindTime:
		return value.Time(dd, cfg), nil
	default:
		return value.DateTime(dd, cfg), nil
	}
}

func parseDateString(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
