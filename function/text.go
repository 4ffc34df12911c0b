package function

import (
	"strings"
	"unicode/utf8"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/temporal"
	"github.com/gordthompson/jackcess-go/value"
)

func registerText(r *Registry) {
	r.Register("Len", 1, 1, lenFunc)
	r.Register("Asc", 1, 1, ascFunc)
	r.Register("InStr", 2, 4, instrFunc)
	r.Register("InStrRev", 2, 4, instrRevFunc)
	r.Register("StrComp", 2, 3, strCompFunc)

	registerStringReturning(r, "Left", leftImpl)
	registerStringReturning(r, "Right", rightImpl)
	registerStringReturning(r, "Mid", midImpl)
	registerStringReturning(r, "LCase", lcaseImpl)
	registerStringReturning(r, "UCase", ucaseImpl)
	registerStringReturning(r, "Trim", trimImpl)
	registerStringReturning(r, "LTrim", ltrimImpl)
	registerStringReturning(r, "RTrim", rtrimImpl)
	registerStringReturning(r, "Replace", replaceImpl)
	registerStringReturning(r, "Space", spaceImpl)
	registerStringReturning(r, "String", stringRepeatImpl)
	registerStringReturning(r, "StrReverse", strReverseImpl)
	registerStringReturning(r, "Format", formatImpl)
	registerStringReturning(r, "Chr", chrImpl)
}

// stringImpl is a string-returning function body along with the arity and
// the index of the argument whose NULLness controls the Null/Empty choice.
type stringImpl struct {
	minArgs, maxArgs int
	nullArg          int
	call             func(args []value.Value) (string, error)
}

// registerStringReturning registers both the plain function (NULL
// propagates) and its "$"-suffixed alias, which returns "" instead of NULL
// when the designated argument is NULL.
func registerStringReturning(r *Registry, name string, impl stringImpl) {
	plain := func(ctx *Context, args []value.Value) (value.Value, error) {
		if args[impl.nullArg].IsNull() {
			return value.Null(), nil
		}
		s, err := impl.call(args)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	}
	dollar := func(ctx *Context, args []value.Value) (value.Value, error) {
		if args[impl.nullArg].IsNull() {
			return value.String(""), nil
		}
		s, err := impl.call(args)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	}
	r.Register(name, impl.minArgs, impl.maxArgs, plain)
	r.Register(name+"$", impl.minArgs, impl.maxArgs, dollar)
}

func lenFunc(ctx *Context, args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null(), nil
	}
	return value.Long(int32(utf8.RuneCountInString(args[0].AsString()))), nil
}

func ascFunc(ctx *Context, args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null(), nil
	}
	s := args[0].AsString()
	if s == "" {
		return value.Value{}, jerrors.NewArgument("Asc", "empty string has no character code")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return value.Long(int32(r)), nil
}

var leftImpl = stringImpl{2, 2, 0, func(args []value.Value) (string, error) {
	s := args[0].AsString()
	n, err := args[1].AsLong()
	if err != nil {
		return "", err
	}
	return takeLeft(s, int(n)), nil
}}

var rightImpl = stringImpl{2, 2, 0, func(args []value.Value) (string, error) {
	s := args[0].AsString()
	n, err := args[1].AsLong()
	if err != nil {
		return "", err
	}
	return takeRight(s, int(n)), nil
}}

func takeLeft(s string, n int) string {
	r := []rune(s)
	if n < 0 {
		n = 0
	}
	if n > len(r) {
		n = len(r)
	}
	return string(r[:n])
}

func takeRight(s string, n int) string {
	r := []rune(s)
	if n < 0 {
		n = 0
	}
	if n > len(r) {
		n = len(r)
	}
	return string(r[len(r)-n:])
}

var midImpl = stringImpl{2, 3, 0, func(args []value.Value) (string, error) {
	s := args[0].AsString()
	start, err := args[1].AsLong()
	if err != nil {
		return "", err
	}
	r := []rune(s)
	idx := int(start) - 1
	if idx < 0 {
		return "", jerrors.NewArgument("Mid", "start must be >= 1")
	}
	if idx > len(r) {
		idx = len(r)
	}
	length := len(r) - idx
	if len(args) == 3 {
		n, err := args[2].AsLong()
		if err != nil {
			return "", err
		}
		if int(n) < length {
			length = int(n)
		}
	}
	if length < 0 {
		length = 0
	}
	return string(r[idx : idx+length]), nil
}}

var lcaseImpl = stringImpl{1, 1, 0, func(args []value.Value) (string, error) {
	return strings.ToLower(args[0].AsString()), nil
}}

var ucaseImpl = stringImpl{1, 1, 0, func(args []value.Value) (string, error) {
	return strings.ToUpper(args[0].AsString()), nil
}}

var trimImpl = stringImpl{1, 1, 0, func(args []value.Value) (string, error) {
	return strings.TrimSpace(args[0].AsString()), nil
}}

var ltrimImpl = stringImpl{1, 1, 0, func(args []value.Value) (string, error) {
	return strings.TrimLeft(args[0].AsString(), " "), nil
}}

var rtrimImpl = stringImpl{1, 1, 0, func(args []value.Value) (string, error) {
	return strings.TrimRight(args[0].AsString(), " "), nil
}}

var strReverseImpl = stringImpl{1, 1, 0, func(args []value.Value) (string, error) {
	r := []rune(args[0].AsString())
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r), nil
}}

var spaceImpl = stringImpl{1, 1, 0, func(args []value.Value) (string, error) {
	n, err := args[0].AsLong()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", jerrors.NewArgument("Space", "count must be >= 0")
	}
	return strings.Repeat(" ", int(n)), nil
}}

var stringRepeatImpl = stringImpl{2, 2, 1, func(args []value.Value) (string, error) {
	n, err := args[0].AsLong()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", jerrors.NewArgument("String", "count must be >= 0")
	}
	ch := args[1].AsString()
	if ch == "" {
		return "", jerrors.NewArgument("String", "character argument must not be empty")
	}
	r, _ := utf8.DecodeRuneInString(ch)
	return strings.Repeat(string(r), int(n)), nil
}}

var chrImpl = stringImpl{1, 1, 0, func(args []value.Value) (string, error) {
	n, err := args[0].AsLong()
	if err != nil {
		return "", err
	}
	return string(rune(n)), nil
}}

// formatImpl implements Format(expr[, layout]). Parsing named or custom
// picture strings belongs to the expression tokenizer, not here, so a
// temporal value always renders with its own configured layout regardless
// of the second argument, and everything else falls back to AsString.
var formatImpl = stringImpl{1, 2, 0, func(args []value.Value) (string, error) {
	v := args[0]
	if v.IsTemporal() {
		return v.DateDoubleValue().Format(v.TemporalConfig(), temporalKindOf(v.Kind())), nil
	}
	return v.AsString(), nil
}}

func temporalKindOf(k value.Kind) temporal.Kind {
	switch k {
	case value.KindDate:
		return temporal.KindDate
	case value.KindTime:
		return temporal.KindTime
	default:
		return temporal.KindDateTime
	}
}

// replaceImpl implements Replace(expr, find, replaceWith[, start[, count[, compare]]]).
var replaceImpl = stringImpl{3, 6, 0, func(args []value.Value) (string, error) {
	expr := args[0].AsString()
	find := args[1].AsString()
	repl := args[2].AsString()
	start := 1
	if len(args) >= 4 {
		n, err := args[3].AsLong()
		if err != nil {
			return "", err
		}
		start = int(n)
	}
	count := -1
	if len(args) >= 5 {
		n, err := args[4].AsLong()
		if err != nil {
			return "", err
		}
		count = int(n)
	}
	r := []rune(expr)
	if start < 1 {
		start = 1
	}
	if start > len(r)+1 {
		return "", nil
	}
	head := string(r[:start-1])
	tail := string(r[start-1:])
	if find == "" {
		return expr, nil
	}
	return head + strings.Replace(tail, find, repl, count), nil
}}

func instrFunc(ctx *Context, args []value.Value) (value.Value, error) {
	start := 1
	var hay, needle value.Value
	switch len(args) {
	case 2:
		hay, needle = args[0], args[1]
	default:
		n, err := args[0].AsLong()
		if err != nil {
			return value.Value{}, err
		}
		start = int(n)
		hay, needle = args[1], args[2]
	}
	if hay.IsNull() || needle.IsNull() {
		return value.Null(), nil
	}
	h := []rune(hay.AsString())
	if start < 1 {
		start = 1
	}
	if start > len(h)+1 {
		return value.Long(0), nil
	}
	idx := strings.Index(string(h[start-1:]), needle.AsString())
	if idx < 0 {
		return value.Long(0), nil
	}
	return value.Long(int32(start + utf8.RuneCountInString(string(h[start-1:])[:idx]))), nil
}

func instrRevFunc(ctx *Context, args []value.Value) (value.Value, error) {
	hay, needle := args[0], args[1]
	if hay.IsNull() || needle.IsNull() {
		return value.Null(), nil
	}
	h := hay.AsString()
	n := needle.AsString()
	start := len([]rune(h))
	if len(args) == 3 {
		s, err := args[2].AsLong()
		if err != nil {
			return value.Value{}, err
		}
		start = int(s)
	}
	r := []rune(h)
	if start > len(r) {
		start = len(r)
	}
	if start < 1 {
		return value.Long(0), nil
	}
	prefix := string(r[:start])
	idx := strings.LastIndex(prefix, n)
	if idx < 0 {
		return value.Long(0), nil
	}
	return value.Long(int32(utf8.RuneCountInString(prefix[:idx]) + 1)), nil
}

func strCompFunc(ctx *Context, args []value.Value) (value.Value, error) {
	l, r := args[0], args[1]
	if l.IsNull() || r.IsNull() {
		return value.Null(), nil
	}
	ls, rs := strings.ToLower(l.AsString()), strings.ToLower(r.AsString())
	switch {
	case ls < rs:
		return value.Long(-1), nil
	case ls > rs:
		return value.Long(1), nil
	default:
		return value.Long(0), nil
	}
}
