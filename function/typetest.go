package function

import (
	"strings"
	"time"

	"github.com/gordthompson/jackcess-go/value"
)

func registerTypeTests(r *Registry) {
	r.Register("IsNull", 1, 1, isNullFunc)
	r.Register("IsDate", 1, 1, isDateFunc)
	r.Register("IsNumeric", 1, 1, isNumericFunc)
	r.Register("VarType", 1, 1, varTypeFunc)
	r.Register("TypeName", 1, 1, typeNameFunc)
}

func isNullFunc(ctx *Context, args []value.Value) (value.Value, error) {
	return value.FromBool(args[0].IsNull()), nil
}

func isNumericFunc(ctx *Context, args []value.Value) (value.Value, error) {
	v := args[0]
	if v.IsNumeric() {
		return value.True(), nil
	}
	if v.Kind() == value.KindString {
		if _, err := v.AsDouble(); err == nil {
			return value.True(), nil
		}
	}
	return value.False(), nil
}

var dateLayouts = []string{
	"1/2/2006",
	"1/2/2006 15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"15:04:05",
	"3:04:05 PM",
}

func isDateFunc(ctx *Context, args []value.Value) (value.Value, error) {
	v := args[0]
	if v.IsTemporal() {
		return value.True(), nil
	}
	if v.Kind() == value.KindString {
		s := strings.TrimSpace(v.StringValue())
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, s); err == nil {
				return value.True(), nil
			}
		}
	}
	return value.False(), nil
}

// VarType codes match VBA's integer type constants.
const (
	varTypeNull    = 1
	varTypeLong    = 3
	varTypeDouble  = 5
	varTypeDate    = 7
	varTypeString  = 8
	varTypeBigDec  = 14
)

func varTypeFunc(ctx *Context, args []value.Value) (value.Value, error) {
	switch args[0].Kind() {
	case value.KindNull:
		return value.Long(varTypeNull), nil
	case value.KindLong:
		return value.Long(varTypeLong), nil
	case value.KindDouble:
		return value.Long(varTypeDouble), nil
	case value.KindDate, value.KindTime, value.KindDateTime:
		return value.Long(varTypeDate), nil
	case value.KindString:
		return value.Long(varTypeString), nil
	case value.KindBigDec:
		return value.Long(varTypeBigDec), nil
	default:
		return value.Long(varTypeNull), nil
	}
}

func typeNameFunc(ctx *Context, args []value.Value) (value.Value, error) {
	switch args[0].Kind() {
	case value.KindNull:
		return value.String("Null"), nil
	case value.KindLong:
		return value.String("Long"), nil
	case value.KindDouble:
		return value.String("Double"), nil
	case value.KindDate, value.KindTime, value.KindDateTime:
		return value.String("Date"), nil
	case value.KindString:
		return value.String("String"), nil
	case value.KindBigDec:
		return value.String("Decimal"), nil
	default:
		return value.String("Variant"), nil
	}
}
