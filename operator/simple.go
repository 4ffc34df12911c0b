package operator

import (
	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/temporal"
	"github.com/gordthompson/jackcess-go/value"
)

// evalSimple implements SIMPLE-mode precedence for + and -: temporal
// operands combine directly as date-doubles, a lone STRING operand is
// coerced numerically (falling back to concatenation for + only), and
// everything else follows the LONG<DOUBLE<BIG_DEC lattice.
func evalSimple(op BinaryOp, l, r value.Value) (value.Value, error) {
	switch {
	case l.IsTemporal() && r.IsTemporal():
		resultKind := l.Kind()
		if l.Kind() != r.Kind() {
			resultKind = value.KindDateTime
		}
		return temporalArith(op, l, r, resultKind)

	case isString(l) && isString(r):
		if op == Add {
			return evalConcat(l, r)
		}
		return value.Value{}, jerrors.NewTypeMismatch(op.String(), "numeric", "STRING")

	case isString(l) || isString(r):
		return evalStringCoercedSimple(op, l, r)

	case l.IsTemporal() || r.IsTemporal():
		tv, nv := l, r
		if !l.IsTemporal() {
			tv, nv = r, l
		}
		f, err := nv.AsDouble()
		if err != nil {
			return value.Value{}, err
		}
		nt := value.DateTime(temporal.DateDouble(f), tv.TemporalConfig())
		if l.IsTemporal() {
			return temporalArith(op, l, nt, tv.Kind())
		}
		return temporalArith(op, nt, r, tv.Kind())

	default:
		lc, rc, resultKind, err := promoteNumeric(l, r)
		if err != nil {
			return value.Value{}, err
		}
		return applyNumeric(op, lc, rc, resultKind)
	}
}

// temporalArith computes l op r over the underlying date-doubles, wrapping
// the numeric result back up as resultKind.
func temporalArith(op BinaryOp, l, r value.Value, resultKind value.Kind) (value.Value, error) {
	ld, rd := float64(l.DateDoubleValue()), float64(r.DateDoubleValue())
	var out float64
	switch op {
	case Add:
		out = ld + rd
	case Sub:
		out = ld - rd
	default:
		return value.Value{}, jerrors.NewTypeMismatch(op.String(), "+ or -", op.String())
	}
	cfg := l.TemporalConfig()
	dd := temporal.DateDouble(out)
	switch resultKind {
	case value.KindDate:
		return value.Date(dd, cfg), nil
	case value.KindTime:
		return value.Time(dd, cfg), nil
	default:
		return value.DateTime(dd, cfg), nil
	}
}

func evalStringCoercedSimple(op BinaryOp, l, r value.Value) (value.Value, error) {
	var str, other value.Value
	if isString(l) {
		str, other = l, r
	} else {
		str, other = r, l
	}
	other = demoteTemporal(other)

	res := tryStringCoercion(str, other)
	if !res.ok {
		if op == Add {
			return evalConcat(l, r)
		}
		return value.Value{}, jerrors.NewTypeMismatch(op.String(), "numeric", "STRING")
	}

	lc, err := coerceTo(demoteTemporal(l), res.resultKind)
	if err != nil {
		return value.Value{}, err
	}
	rc, err := coerceTo(demoteTemporal(r), res.resultKind)
	if err != nil {
		return value.Value{}, err
	}
	return applyNumeric(op, lc, rc, res.resultKind)
}

// promoteNumeric resolves l and r (neither STRING) to a common numeric
// kind per the promotion lattice, demoting any lone temporal operand first.
func promoteNumeric(l, r value.Value) (lc, rc value.Value, resultKind value.Kind, err error) {
	l = demoteTemporal(l)
	r = demoteTemporal(r)
	resultKind = numericResultKind(l.Kind(), r.Kind())
	lc, err = coerceTo(l, resultKind)
	if err != nil {
		return value.Value{}, value.Value{}, resultKind, err
	}
	rc, err = coerceTo(r, resultKind)
	if err != nil {
		return value.Value{}, value.Value{}, resultKind, err
	}
	return lc, rc, resultKind, nil
}

// applyNumeric carries out + or - (and, via evalGeneral, * ) once both
// operands have been coerced to a common kind.
func applyNumeric(op BinaryOp, lc, rc value.Value, kind value.Kind) (value.Value, error) {
	switch kind {
	case value.KindLong:
		switch op {
		case Add:
			return value.Long(lc.LongValue() + rc.LongValue()), nil
		case Sub:
			return value.Long(lc.LongValue() - rc.LongValue()), nil
		case Mul:
			return value.Long(lc.LongValue() * rc.LongValue()), nil
		}
	case value.KindDouble:
		switch op {
		case Add:
			return value.Double(lc.DoubleValue() + rc.DoubleValue()), nil
		case Sub:
			return value.Double(lc.DoubleValue() - rc.DoubleValue()), nil
		case Mul:
			return value.Double(lc.DoubleValue() * rc.DoubleValue()), nil
		}
	case value.KindBigDec:
		a, b := lc.BigDecValue(), rc.BigDecValue()
		switch op {
		case Add:
			return value.BigDec(value.RoundContext(a.Add(b))), nil
		case Sub:
			return value.BigDec(value.RoundContext(a.Sub(b))), nil
		case Mul:
			return value.BigDec(value.RoundContext(a.Mul(b))), nil
		}
	}
	return value.Value{}, jerrors.NewTypeMismatch(op.String(), "LONG, DOUBLE, or BIG_DEC", kind.String())
}
