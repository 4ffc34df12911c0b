package operator

import (
	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/value"
)

// demoteTemporal reduces a temporal operand to its underlying DOUBLE
// date-double representation: GENERAL- and COMPARE-mode arithmetic demotes
// temporals to their preferred numeric type before promotion.
func demoteTemporal(v value.Value) value.Value {
	if v.IsTemporal() {
		return value.Double(float64(v.DateDoubleValue()))
	}
	return v
}

// numericResultKind applies the LONG < DOUBLE < BIG_DEC promotion lattice:
// two LONGs stay LONG; otherwise the result is the highest preferred
// floating kind of the two operands (BIG_DEC beats DOUBLE).
func numericResultKind(lk, rk value.Kind) value.Kind {
	if lk == value.KindLong && rk == value.KindLong {
		return value.KindLong
	}
	pf := func(k value.Kind) value.Kind {
		if k == value.KindBigDec {
			return value.KindBigDec
		}
		return value.KindDouble
	}
	if pf(lk) == value.KindBigDec || pf(rk) == value.KindBigDec {
		return value.KindBigDec
	}
	return value.KindDouble
}

// coerceTo converts v, which must already be non-STRING and non-temporal,
// to the given numeric kind.
func coerceTo(v value.Value, kind value.Kind) (value.Value, error) {
	switch kind {
	case value.KindLong:
		n, err := v.AsLong()
		if err != nil {
			return value.Value{}, err
		}
		return value.Long(n), nil
	case value.KindDouble:
		f, err := v.AsDouble()
		if err != nil {
			return value.Value{}, err
		}
		return value.Double(f), nil
	case value.KindBigDec:
		d, err := v.AsBigDecimal()
		if err != nil {
			return value.Value{}, err
		}
		return value.BigDec(d), nil
	default:
		return value.Value{}, jerrors.NewTypeMismatch("coerce", "numeric kind", kind.String())
	}
}

// stringCoercionResult captures the outcome of attempting to coerce a lone
// STRING operand against a numeric/temporal counterpart.
type stringCoercionResult struct {
	ok         bool
	resultKind value.Kind
}

// tryStringCoercion parses the STRING side of a STRING/non-STRING operand
// pair as a decimal literal. On success the result kind is BIG_DEC if the
// other operand is BIG_DEC, otherwise DOUBLE.
func tryStringCoercion(str value.Value, other value.Value) stringCoercionResult {
	if _, err := parseDecimalString(str.StringValue()); err != nil {
		return stringCoercionResult{ok: false}
	}
	if other.Kind() == value.KindBigDec {
		return stringCoercionResult{ok: true, resultKind: value.KindBigDec}
	}
	return stringCoercionResult{ok: true, resultKind: value.KindDouble}
}
