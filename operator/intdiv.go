package operator

import (
	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/value"
)

// evalIntDiv implements \: both operands coerce to LONG; STRING operands
// are rejected outright rather than attempting the usual numeric coercion.
func evalIntDiv(l, r value.Value) (value.Value, error) {
	if isString(l) || isString(r) {
		return value.Value{}, jerrors.NewTypeMismatch("\\", "non-STRING operand", "STRING")
	}
	a, err := demoteTemporal(l).AsLong()
	if err != nil {
		return value.Value{}, err
	}
	b, err := demoteTemporal(r).AsLong()
	if err != nil {
		return value.Value{}, err
	}
	if b == 0 {
		return value.Value{}, jerrors.NewArithmetic("\\", "division by zero")
	}
	return value.Long(a / b), nil
}

// evalMod implements Mod: both operands coerce to LONG, result takes the
// sign of the dividend (Go's integer % already matches VBA's Mod here).
// STRING operands are rejected, same as \.
func evalMod(l, r value.Value) (value.Value, error) {
	if isString(l) || isString(r) {
		return value.Value{}, jerrors.NewTypeMismatch("mod", "non-STRING operand", "STRING")
	}
	a, err := demoteTemporal(l).AsLong()
	if err != nil {
		return value.Value{}, err
	}
	b, err := demoteTemporal(r).AsLong()
	if err != nil {
		return value.Value{}, err
	}
	if b == 0 {
		return value.Value{}, jerrors.NewArithmetic("mod", "division by zero")
	}
	return value.Long(a % b), nil
}
