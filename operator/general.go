package operator

import (
	"math"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/value"
)

// evalGeneral implements GENERAL-mode precedence for *, /, and ^: temporals
// demote to DOUBLE, a lone STRING operand coerces numerically (with no
// concatenation fallback, unlike SIMPLE mode), and the remaining operands
// follow the LONG<DOUBLE<BIG_DEC lattice before the operator's own
// special-case result shaping.
func evalGeneral(op BinaryOp, l, r value.Value) (value.Value, error) {
	lc, rc, resultKind, err := generalCoerce(l, r)
	if err != nil {
		return value.Value{}, err
	}

	switch op {
	case Mul:
		return applyNumeric(Mul, lc, rc, resultKind)
	case Div:
		return evalDivide(lc, rc, resultKind)
	case Pow:
		return evalPow(lc, rc, resultKind)
	default:
		return value.Value{}, jerrors.NewTypeMismatch(op.String(), "*, /, or ^", op.String())
	}
}

// generalCoerce is promoteNumeric extended with the STRING coercion rule
// GENERAL mode shares with SIMPLE mode, minus the concatenation fallback.
func generalCoerce(l, r value.Value) (lc, rc value.Value, resultKind value.Kind, err error) {
	if !isString(l) && !isString(r) {
		return promoteNumeric(l, r)
	}

	var str, other value.Value
	if isString(l) {
		str, other = l, r
	} else {
		str, other = r, l
	}
	other = demoteTemporal(other)

	res := tryStringCoercion(str, other)
	if !res.ok {
		return value.Value{}, value.Value{}, value.KindNull, jerrors.NewTypeMismatch("arithmetic", "numeric", "STRING")
	}

	lc, err = coerceTo(demoteTemporal(l), res.resultKind)
	if err != nil {
		return value.Value{}, value.Value{}, res.resultKind, err
	}
	rc, err = coerceTo(demoteTemporal(r), res.resultKind)
	if err != nil {
		return value.Value{}, value.Value{}, res.resultKind, err
	}
	return lc, rc, res.resultKind, nil
}

// evalDivide implements /: when both operands are LONG it divides exactly
// when possible, otherwise it promotes both sides to DOUBLE rather than
// truncate. Non-LONG operands just divide in their promoted kind.
func evalDivide(lc, rc value.Value, resultKind value.Kind) (value.Value, error) {
	switch resultKind {
	case value.KindLong:
		a, b := lc.LongValue(), rc.LongValue()
		if b == 0 {
			return value.Value{}, jerrors.NewArithmetic("/", "division by zero")
		}
		if a%b == 0 {
			return value.Long(a / b), nil
		}
		return value.Double(float64(a) / float64(b)), nil
	case value.KindDouble:
		if rc.DoubleValue() == 0 {
			return value.Value{}, jerrors.NewArithmetic("/", "division by zero")
		}
		return value.Double(lc.DoubleValue() / rc.DoubleValue()), nil
	case value.KindBigDec:
		if rc.BigDecValue().IsZero() {
			return value.Value{}, jerrors.NewArithmetic("/", "division by zero")
		}
		return value.BigDec(value.Divide(lc.BigDecValue(), rc.BigDecValue())), nil
	default:
		return value.Value{}, jerrors.NewTypeMismatch("/", "LONG, DOUBLE, or BIG_DEC", resultKind.String())
	}
}

// evalPow implements ^: an exact BIG_DEC result when the base is BIG_DEC and
// the exponent is a non-negative integer, otherwise a DOUBLE power that
// collapses back to LONG when both original operands were LONG and the
// result is a whole number in 32-bit range.
func evalPow(lc, rc value.Value, resultKind value.Kind) (value.Value, error) {
	if resultKind == value.KindBigDec {
		exp := rc.BigDecValue()
		if exp.Sign() >= 0 && exp.Exponent() >= 0 {
			n := exp.IntPart()
			return value.BigDec(value.RoundContext(decimalPowExact(lc.BigDecValue(), n))), nil
		}
	}

	base, err := lc.AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	exp, err := rc.AsDouble()
	if err != nil {
		return value.Value{}, err
	}
	out := math.Pow(base, exp)

	if resultKind == value.KindLong && out == math.Trunc(out) && out >= -2147483648 && out <= 2147483647 {
		return value.Long(int32(out)), nil
	}
	return value.Double(out), nil
}
