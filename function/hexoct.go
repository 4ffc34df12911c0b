package function

import (
	"strconv"
	"strings"

	"github.com/gordthompson/jackcess-go/value"
)

func registerHexOct(r *Registry) {
	r.Register("Hex", 1, 1, hexFunc)
	r.Register("Oct", 1, 1, octFunc)
}

func hexFunc(ctx *Context, args []value.Value) (value.Value, error) {
	n, err := numericOrEmptyLong(args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.String(strings.ToUpper(strconv.FormatUint(uint64(uint32(n)), 16))), nil
}

func octFunc(ctx *Context, args []value.Value) (value.Value, error) {
	n, err := numericOrEmptyLong(args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.String(strconv.FormatUint(uint64(uint32(n)), 8)), nil
}

// numericOrEmptyLong converts v to LONG, treating an empty STRING as 0
// rather than a parse failure.
func numericOrEmptyLong(v value.Value) (int32, error) {
	if v.Kind() == value.KindString && v.StringValue() == "" {
		return 0, nil
	}
	return v.AsLong()
}
