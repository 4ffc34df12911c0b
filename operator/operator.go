// Package operator implements the VBA-style expression evaluator's operator
// kernel: null propagation, the three type-precedence modes, numeric
// promotion, and the concrete semantics of every unary and binary operator.
package operator

import (
	"strings"

	"github.com/shopspring/decimal"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/value"
)

// BinaryOp identifies a binary operator.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	IntDiv // \
	Pow    // ^
	Mod
	Concat // &
	And
	Or
	Imp
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case IntDiv:
		return "\\"
	case Pow:
		return "^"
	case Mod:
		return "mod"
	case Concat:
		return "&"
	case And:
		return "And"
	case Or:
		return "Or"
	case Imp:
		return "Imp"
	case Eq:
		return "="
	case Ne:
		return "<>"
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// UnaryOp identifies a unary operator.
type UnaryOp int

const (
	Neg UnaryOp = iota
	Pos
	Not
)

// Eval applies a binary operator to l and r, handling null propagation,
// type precedence, and promotion.
func Eval(op BinaryOp, l, r value.Value) (value.Value, error) {
	switch op {
	case And:
		return evalAnd(l, r)
	case Or:
		return evalOr(l, r)
	case Imp:
		return evalImp(l, r)
	case Concat:
		return evalConcat(l, r)
	}

	// Every other operator is null-propagating: a null operand yields null
	// unconditionally.
	if l.IsNull() || r.IsNull() {
		return value.Null(), nil
	}

	switch op {
	case Add, Sub:
		return evalSimple(op, l, r)
	case Mul, Div, Pow:
		return evalGeneral(op, l, r)
	case IntDiv:
		return evalIntDiv(l, r)
	case Mod:
		return evalMod(l, r)
	case Eq, Ne, Lt, Le, Gt, Ge:
		return evalCompare(op, l, r)
	default:
		return value.Value{}, jerrors.NewTypeMismatch(op.String(), "known operator", "unknown")
	}
}

// EvalUnary applies a unary operator to v.
func EvalUnary(op UnaryOp, v value.Value) (value.Value, error) {
	switch op {
	case Not:
		return evalNot(v)
	default:
		if v.IsNull() {
			return value.Null(), nil
		}
		switch op {
		case Neg:
			return negate(v)
		case Pos:
			return v, nil
		default:
			return value.Value{}, jerrors.NewTypeMismatch("unary", "known operator", "unknown")
		}
	}
}

func evalNot(v value.Value) (value.Value, error) {
	if v.IsNull() {
		return value.Null(), nil
	}
	b, err := v.AsBoolean()
	if err != nil {
		return value.Value{}, err
	}
	return value.FromBool(!b), nil
}

func negate(v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindLong:
		return value.Long(-v.LongValue()), nil
	case value.KindDouble:
		return value.Double(-v.DoubleValue()), nil
	case value.KindBigDec:
		return value.BigDec(v.BigDecValue().Neg()), nil
	default:
		n, err := v.AsDouble()
		if err != nil {
			return value.Value{}, err
		}
		return value.Double(-n), nil
	}
}

// isString reports whether v holds the STRING kind.
func isString(v value.Value) bool { return v.Kind() == value.KindString }

// parseDecimalString attempts the string→numeric coercion: parse s as a
// decimal literal.
func parseDecimalString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}
