// Package value implements the evaluator's tagged-union Value type: NULL,
// LONG, DOUBLE, BIG_DEC, STRING, DATE, TIME, and DATE_TIME, with the
// lossy/lossless coercions the operator kernel and function library need.
package value

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/temporal"
)

// Kind identifies which variant of the tagged union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindLong
	KindDouble
	KindBigDec
	KindString
	KindDate
	KindTime
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindLong:
		return "LONG"
	case KindDouble:
		return "DOUBLE"
	case KindBigDec:
		return "BIG_DEC"
	case KindString:
		return "STRING"
	case KindDate:
		return "DATE"
	case KindTime:
		return "TIME"
	case KindDateTime:
		return "DATE_TIME"
	default:
		return "UNKNOWN"
	}
}

// Value is an immutable tagged union over the evaluator's eight value
// kinds. The zero Value is NULL. Booleans are not a distinct kind: TRUE is
// Long(-1), FALSE is Long(0).
type Value struct {
	kind Kind
	l    int32
	d    float64
	bd   decimal.Decimal
	s    string
	dd   temporal.DateDouble
	cfg  temporal.Config
}

// Null returns the NULL value.
func Null() Value { return Value{kind: KindNull} }

// Long returns a LONG value wrapping i.
func Long(i int32) Value { return Value{kind: KindLong, l: i} }

// True is the LONG(-1) value VBA treats as boolean TRUE.
func True() Value { return Long(-1) }

// False is the LONG(0) value VBA treats as boolean FALSE.
func False() Value { return Long(0) }

// FromBool returns True() or False() for b.
func FromBool(b bool) Value {
	if b {
		return True()
	}
	return False()
}

// Double returns a DOUBLE value wrapping f.
func Double(f float64) Value { return Value{kind: KindDouble, d: f} }

// BigDec returns a BIG_DEC value, normalized per Normalize.
func BigDec(d decimal.Decimal) Value { return Value{kind: KindBigDec, bd: Normalize(d)} }

// String returns a STRING value wrapping s.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Date returns a DATE value; cfg supplies the format used when rendering it
// as a string.
func Date(dd temporal.DateDouble, cfg temporal.Config) Value {
	return Value{kind: KindDate, dd: dd, cfg: cfg}
}

// Time returns a TIME value; cfg supplies the format used when rendering it
// as a string.
func Time(dd temporal.DateDouble, cfg temporal.Config) Value {
	return Value{kind: KindTime, dd: dd, cfg: cfg}
}

// DateTime returns a DATE_TIME value; cfg supplies the format used when
// rendering it as a string.
func DateTime(dd temporal.DateDouble, cfg temporal.Config) Value {
	return Value{kind: KindDateTime, dd: dd, cfg: cfg}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsTemporal reports whether v holds one of the three temporal kinds.
func (v Value) IsTemporal() bool {
	return v.kind == KindDate || v.kind == KindTime || v.kind == KindDateTime
}

// IsNumeric reports whether v holds LONG, DOUBLE, or BIG_DEC.
func (v Value) IsNumeric() bool {
	return v.kind == KindLong || v.kind == KindDouble || v.kind == KindBigDec
}

// LongValue returns the raw int32 for a LONG value; only meaningful when
// Kind() == KindLong.
func (v Value) LongValue() int32 { return v.l }

// DoubleValue returns the raw float64 for a DOUBLE value; only meaningful
// when Kind() == KindDouble.
func (v Value) DoubleValue() float64 { return v.d }

// BigDecValue returns the raw decimal.Decimal for a BIG_DEC value; only
// meaningful when Kind() == KindBigDec.
func (v Value) BigDecValue() decimal.Decimal { return v.bd }

// StringValue returns the raw string for a STRING value; only meaningful
// when Kind() == KindString.
func (v Value) StringValue() string { return v.s }

// DateDoubleValue returns the raw date-double for a temporal value; only
// meaningful when IsTemporal() is true.
func (v Value) DateDoubleValue() temporal.DateDouble { return v.dd }

// TemporalConfig returns the format configuration carried by a temporal
// value; only meaningful when IsTemporal() is true.
func (v Value) TemporalConfig() temporal.Config { return v.cfg }

// AsBoolean converts v to a boolean: any non-zero number is true; string
// "true"/"false" (case-insensitive) is recognised, otherwise the string is
// parsed as a number. NULL has no boolean conversion.
func (v Value) AsBoolean() (bool, error) {
	switch v.kind {
	case KindLong:
		return v.l != 0, nil
	case KindDouble:
		return v.d != 0, nil
	case KindBigDec:
		return !v.bd.IsZero(), nil
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.s)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return false, jerrors.NewTypeMismatch("asBoolean", "numeric or true/false string", v.s)
		}
		return f != 0, nil
	case KindDate, KindTime, KindDateTime:
		return v.dd != 0, nil
	default:
		return false, jerrors.NewTypeMismatch("asBoolean", "non-null value", "NULL")
	}
}

// AsLong converts v to a 32-bit integer, failing with Arithmetic on overflow
// and TypeError on a non-numeric string.
func (v Value) AsLong() (int32, error) {
	switch v.kind {
	case KindLong:
		return v.l, nil
	case KindDouble:
		return float64ToLong(v.d)
	case KindBigDec:
		f, _ := v.bd.Float64()
		return float64ToLong(f)
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, jerrors.NewTypeMismatch("asLong", "numeric string", v.s)
		}
		return float64ToLong(f)
	case KindDate, KindTime, KindDateTime:
		return float64ToLong(float64(v.dd))
	default:
		return 0, jerrors.NewTypeMismatch("asLong", "non-null value", "NULL")
	}
}

func float64ToLong(f float64) (int32, error) {
	if f > 2147483647 || f < -2147483648 {
		return 0, jerrors.NewArithmetic("asLong", "value out of LONG range")
	}
	return int32(f), nil
}

// AsDouble converts v to a float64.
func (v Value) AsDouble() (float64, error) {
	switch v.kind {
	case KindLong:
		return float64(v.l), nil
	case KindDouble:
		return v.d, nil
	case KindBigDec:
		f, _ := v.bd.Float64()
		return f, nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, jerrors.NewTypeMismatch("asDouble", "numeric string", v.s)
		}
		return f, nil
	case KindDate, KindTime, KindDateTime:
		return float64(v.dd), nil
	default:
		return 0, jerrors.NewTypeMismatch("asDouble", "non-null value", "NULL")
	}
}

// AsBigDecimal converts v to an arbitrary-precision decimal.
func (v Value) AsBigDecimal() (decimal.Decimal, error) {
	switch v.kind {
	case KindLong:
		return decimal.New(int64(v.l), 0), nil
	case KindDouble:
		return decimal.NewFromFloat(v.d), nil
	case KindBigDec:
		return v.bd, nil
	case KindString:
		d, err := decimal.NewFromString(strings.TrimSpace(v.s))
		if err != nil {
			return decimal.Decimal{}, jerrors.NewTypeMismatch("asBigDecimal", "numeric string", v.s)
		}
		return d, nil
	case KindDate, KindTime, KindDateTime:
		return decimal.NewFromFloat(float64(v.dd)), nil
	default:
		return decimal.Decimal{}, jerrors.NewTypeMismatch("asBigDecimal", "non-null value", "NULL")
	}
}

// AsString renders v as text; temporal kinds use the format carried on the
// value (see Date/Time/DateTime).
func (v Value) AsString() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindLong:
		return strconv.FormatInt(int64(v.l), 10)
	case KindDouble:
		return strconv.FormatFloat(v.d, 'g', -1, 64)
	case KindBigDec:
		return v.bd.String()
	case KindString:
		return v.s
	case KindDate:
		return v.dd.Format(v.cfg, temporal.KindDate)
	case KindTime:
		return v.dd.Format(v.cfg, temporal.KindTime)
	case KindDateTime:
		return v.dd.Format(v.cfg, temporal.KindDateTime)
	default:
		return ""
	}
}
