package evalctx

import (
	"testing"
	"time"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/value"
)

func TestBindAndResolve(t *testing.T) {
	ctx := New()
	ctx.Bind("id", value.Long(42))
	v, ok := ctx.Binding("ID")
	if !ok || v.LongValue() != 42 {
		t.Errorf("Binding(ID) = %v, %v, want 42, true", v, ok)
	}
}

func TestCallResolvesThroughLookup(t *testing.T) {
	ctx := New()
	got, err := ctx.Call("Abs", []value.Value{value.Long(-5)})
	if err != nil {
		t.Fatalf("Call(Abs): %v", err)
	}
	if got.LongValue() != 5 {
		t.Errorf("Abs(-5) = %v, want 5", got.LongValue())
	}
}

func TestCallUnknownFunction(t *testing.T) {
	ctx := New()
	_, err := ctx.Call("NotAFunction", nil)
	if !jerrors.Is(err, jerrors.ErrEvalArgument) {
		t.Errorf("Call(unknown): got %v, want ErrEvalArgument", err)
	}
}

func TestWithResultTypeAffectsNz(t *testing.T) {
	ctx := New().WithResultType(value.KindString)
	got, err := ctx.Call("Nz", []value.Value{value.Null()})
	if err != nil {
		t.Fatalf("Call(Nz): %v", err)
	}
	if got.Kind() != value.KindString || got.StringValue() != "" {
		t.Errorf("Nz(Null) under STRING result type = %v, want STRING(\"\")", got)
	}
}

func TestWithClockAffectsNow(t *testing.T) {
	ctx := New()
	fixed := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	ctx.WithClock(func() time.Time { return fixed })
	got, err := ctx.Call("Now", nil)
	if err != nil {
		t.Fatalf("Call(Now): %v", err)
	}
	if got.Kind() != value.KindDateTime {
		t.Errorf("Now() kind = %v, want DATE_TIME", got.Kind())
	}
}
