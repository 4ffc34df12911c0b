package function

import (
	"testing"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/value"
)

func call(t *testing.T, ctx *Context, name string, args ...value.Value) value.Value {
	t.Helper()
	v, err := Builtins().Call(ctx, name, args)
	if err != nil {
		t.Fatalf("%s(%v): %v", name, args, err)
	}
	return v
}

func TestIIfNullConditionIsFalse(t *testing.T) {
	ctx := NewContext()
	got := call(t, ctx, "IIf", value.Null(), value.String("a"), value.String("b"))
	if got.StringValue() != "b" {
		t.Errorf("IIf(Null, a, b) = %q, want %q", got.StringValue(), "b")
	}
}

func TestChooseOutOfRangeIsNull(t *testing.T) {
	ctx := NewContext()
	got := call(t, ctx, "Choose", value.Long(4), value.String("a"), value.String("b"), value.String("c"))
	if !got.IsNull() {
		t.Errorf("Choose(4, a, b, c) = %v, want NULL", got)
	}
}

func TestSwitchFirstTrueWins(t *testing.T) {
	ctx := NewContext()
	got := call(t, ctx, "Switch", value.False(), value.Long(1), value.True(), value.Long(2), value.True(), value.Long(3))
	if got.LongValue() != 2 {
		t.Errorf("Switch = %v, want 2", got.LongValue())
	}
}

func TestSwitchOddArityErrors(t *testing.T) {
	ctx := NewContext()
	_, err := Builtins().Call(ctx, "Switch", []value.Value{value.True(), value.Long(1), value.True()})
	if !jerrors.Is(err, jerrors.ErrEvalArgument) {
		t.Errorf("Switch with odd arity: got %v, want ErrEvalArgument", err)
	}
}

func TestNzDefaultsByResultType(t *testing.T) {
	ctx := &Context{ResultType: value.KindString, Rand: NewRandState()}
	got := call(t, ctx, "Nz", value.Null())
	if got.Kind() != value.KindString || got.StringValue() != "" {
		t.Errorf("Nz(Null) with STRING result type = %v, want STRING(\"\")", got)
	}

	ctx2 := &Context{ResultType: value.KindLong, Rand: NewRandState()}
	got2 := call(t, ctx2, "Nz", value.Null())
	if got2.Kind() != value.KindLong || got2.LongValue() != 0 {
		t.Errorf("Nz(Null) with LONG result type = %v, want LONG(0)", got2)
	}
}

func TestNzWithDefault(t *testing.T) {
	ctx := NewContext()
	got := call(t, ctx, "Nz", value.Null(), value.Long(42))
	if got.LongValue() != 42 {
		t.Errorf("Nz(Null, 42) = %v, want 42", got.LongValue())
	}
}

func TestVarTypeCodes(t *testing.T) {
	ctx := NewContext()
	if got := call(t, ctx, "VarType", value.Null()).LongValue(); got != 1 {
		t.Errorf("VarType(Null) = %d, want 1", got)
	}
	if got := call(t, ctx, "VarType", value.Long(1)).LongValue(); got != 3 {
		t.Errorf("VarType(Long) = %d, want 3", got)
	}
	if got := call(t, ctx, "VarType", value.String("x")).LongValue(); got != 8 {
		t.Errorf("VarType(String) = %d, want 8", got)
	}
}

func TestCByteRangeError(t *testing.T) {
	ctx := NewContext()
	_, err := Builtins().Call(ctx, "CByte", []value.Value{value.Long(300)})
	if !jerrors.Is(err, jerrors.ErrArithmetic) {
		t.Errorf("CByte(300): got %v, want ErrArithmetic", err)
	}
}

func TestRoundBankersRounding(t *testing.T) {
	ctx := NewContext()
	if got := call(t, ctx, "Round", value.Double(2.5), value.Long(0)).DoubleValue(); got != 2 {
		t.Errorf("Round(2.5, 0) = %v, want 2", got)
	}
	if got := call(t, ctx, "Round", value.Double(3.5), value.Long(0)).DoubleValue(); got != 4 {
		t.Errorf("Round(3.5, 0) = %v, want 4", got)
	}
}

func TestLeftRightMid(t *testing.T) {
	ctx := NewContext()
	if got := call(t, ctx, "Left", value.String("hello"), value.Long(3)).StringValue(); got != "hel" {
		t.Errorf("Left(hello,3) = %q, want hel", got)
	}
	if got := call(t, ctx, "Right", value.String("hello"), value.Long(3)).StringValue(); got != "llo" {
		t.Errorf("Right(hello,3) = %q, want llo", got)
	}
	if got := call(t, ctx, "Mid", value.String("hello"), value.Long(2), value.Long(3)).StringValue(); got != "ell" {
		t.Errorf("Mid(hello,2,3) = %q, want ell", got)
	}
}

func TestDollarVariantPropagatesEmptyNotNull(t *testing.T) {
	ctx := NewContext()
	got := call(t, ctx, "Left$", value.Null(), value.Long(3))
	if got.IsNull() || got.StringValue() != "" {
		t.Errorf("Left$(Null, 3) = %v, want STRING(\"\")", got)
	}
	plain := call(t, ctx, "Left", value.Null(), value.Long(3))
	if !plain.IsNull() {
		t.Errorf("Left(Null, 3) = %v, want NULL", plain)
	}
}

func TestInStrFindsSubstring(t *testing.T) {
	ctx := NewContext()
	got := call(t, ctx, "InStr", value.String("hello world"), value.String("world"))
	if got.LongValue() != 7 {
		t.Errorf("InStr = %v, want 7", got.LongValue())
	}
}

func TestReplaceSubstitutes(t *testing.T) {
	ctx := NewContext()
	got := call(t, ctx, "Replace", value.String("aXbXc"), value.String("X"), value.String("-"))
	if got.StringValue() != "a-b-c" {
		t.Errorf("Replace = %q, want a-b-c", got.StringValue())
	}
}

func TestHexOctEmptyStringIsZero(t *testing.T) {
	ctx := NewContext()
	if got := call(t, ctx, "Hex", value.String("")).StringValue(); got != "0" {
		t.Errorf("Hex(\"\") = %q, want 0", got)
	}
	if got := call(t, ctx, "Hex", value.Long(255)).StringValue(); got != "FF" {
		t.Errorf("Hex(255) = %q, want FF", got)
	}
}

func TestRndSeedSemantics(t *testing.T) {
	ctx := NewContext()
	first := call(t, ctx, "Rnd").DoubleValue()
	second := call(t, ctx, "Rnd").DoubleValue()
	if first == second {
		t.Error("successive Rnd() calls should advance the sequence")
	}
	repeat := call(t, ctx, "Rnd", value.Long(0)).DoubleValue()
	if repeat != second {
		t.Errorf("Rnd(0) = %v, want repeat of last value %v", repeat, second)
	}
}

func TestSLN(t *testing.T) {
	ctx := NewContext()
	got := call(t, ctx, "SLN", value.Double(10000), value.Double(1000), value.Double(9))
	want := (10000.0 - 1000.0) / 9.0
	if got.DoubleValue() != want {
		t.Errorf("SLN = %v, want %v", got.DoubleValue(), want)
	}
}

func TestSYD(t *testing.T) {
	ctx := NewContext()
	got := call(t, ctx, "SYD", value.Double(10000), value.Double(1000), value.Double(10), value.Double(1))
	if got.DoubleValue() <= 0 {
		t.Errorf("SYD first-year depreciation should be positive, got %v", got.DoubleValue())
	}
}

func TestFVOfSavingsStreamIsPositive(t *testing.T) {
	ctx := NewContext()
	fv := call(t, ctx, "FV", value.Double(0.01), value.Double(12), value.Double(-100))
	if fv.DoubleValue() <= 0 {
		t.Errorf("FV of a savings stream should be positive, got %v", fv.DoubleValue())
	}
}
