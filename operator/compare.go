package operator

import (
	"strings"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/value"
)

// evalCompare implements COMPARE-mode precedence: temporals demote to
// DOUBLE, STRING never coerces to numeric (a STRING compared against a
// non-STRING is a type error), two STRINGs compare case-insensitively, and
// everything else follows the LONG<DOUBLE<BIG_DEC lattice.
func evalCompare(op BinaryOp, l, r value.Value) (value.Value, error) {
	lt, rt := demoteTemporal(l), demoteTemporal(r)

	if isString(lt) && isString(rt) {
		cmp := strings.Compare(strings.ToLower(lt.StringValue()), strings.ToLower(rt.StringValue()))
		return compareResult(op, cmp)
	}
	if isString(lt) || isString(rt) {
		return value.Value{}, jerrors.NewTypeMismatch(op.String(), "comparable same-family operands", "STRING vs non-STRING")
	}

	lc, rc, resultKind, err := promoteNumeric(lt, rt)
	if err != nil {
		return value.Value{}, err
	}

	var cmp int
	switch resultKind {
	case value.KindLong:
		cmp = compareInt(lc.LongValue(), rc.LongValue())
	case value.KindDouble:
		cmp = compareFloat(lc.DoubleValue(), rc.DoubleValue())
	case value.KindBigDec:
		cmp = lc.BigDecValue().Cmp(rc.BigDecValue())
	default:
		return value.Value{}, jerrors.NewTypeMismatch(op.String(), "LONG, DOUBLE, or BIG_DEC", resultKind.String())
	}
	return compareResult(op, cmp)
}

func compareInt(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareResult(op BinaryOp, cmp int) (value.Value, error) {
	switch op {
	case Eq:
		return value.FromBool(cmp == 0), nil
	case Ne:
		return value.FromBool(cmp != 0), nil
	case Lt:
		return value.FromBool(cmp < 0), nil
	case Le:
		return value.FromBool(cmp <= 0), nil
	case Gt:
		return value.FromBool(cmp > 0), nil
	case Ge:
		return value.FromBool(cmp >= 0), nil
	default:
		return value.Value{}, jerrors.NewTypeMismatch(op.String(), "comparison operator", op.String())
	}
}

// Between reports whether v falls within [lo, hi] inclusive, built from the
// same tri-valued AND used elsewhere so a NULL bound or NULL v propagates
// NULL rather than silently picking a side.
func Between(v, lo, hi value.Value) (value.Value, error) {
	ge, err := Eval(Ge, v, lo)
	if err != nil {
		return value.Value{}, err
	}
	le, err := Eval(Le, v, hi)
	if err != nil {
		return value.Value{}, err
	}
	return evalAnd(ge, le)
}

// In reports whether v equals any element of list. NULL elements in the
// list are skipped entirely; only v itself being NULL propagates NULL.
func In(v value.Value, list []value.Value) (value.Value, error) {
	if v.IsNull() {
		return value.Null(), nil
	}
	for _, item := range list {
		if item.IsNull() {
			continue
		}
		eq, err := Eval(Eq, v, item)
		if err != nil {
			return value.Value{}, err
		}
		b, err := eq.AsBoolean()
		if err != nil {
			return value.Value{}, err
		}
		if b {
			return value.True(), nil
		}
	}
	return value.False(), nil
}

// Pattern matches a string against a precompiled LIKE pattern. Parsing the
// VBA wildcard syntax (*, ?, #, [charlist]) is the caller's concern; Like
// only wires NULL propagation around an already-compiled matcher.
type Pattern interface {
	Match(s string) bool
}

// Like reports whether v matches pattern, propagating NULL from v.
func Like(v value.Value, pattern Pattern) (value.Value, error) {
	if v.IsNull() {
		return value.Null(), nil
	}
	s := v.AsString()
	return value.FromBool(pattern.Match(s)), nil
}
