package value

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeStripsTrailingZeros(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.50", "1.5"},
		{"1.00", "1"},
		{"0.00", "0"},
		{"100", "100"},
		{"123.456000", "123.456"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		if err != nil {
			t.Fatalf("NewFromString(%q): %v", c.in, err)
		}
		got := Normalize(d).String()
		if got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	d, _ := decimal.NewFromString("42.4200")
	once := Normalize(d)
	twice := Normalize(once)
	if !once.Equal(twice) || once.String() != twice.String() {
		t.Errorf("Normalize not idempotent: once=%v twice=%v", once, twice)
	}
}

func TestDivideMatchesSpecExample(t *testing.T) {
	one := decimal.New(1, 0)
	pct := decimal.NewFromFloat(0.03)
	got := Divide(one, pct)
	want := "33.3333333333333333333333333333"
	if got.String() != want {
		t.Errorf("Divide(1, 0.03) = %q, want %q", got.String(), want)
	}
}

func TestDivideExactTerminates(t *testing.T) {
	got := Divide(decimal.New(10, 0), decimal.New(4, 0))
	if got.String() != "2.5" {
		t.Errorf("Divide(10, 4) = %q, want %q", got.String(), "2.5")
	}
}

func TestRoundHalfEven(t *testing.T) {
	// 27 threes, a 2 at position 28, then a trailing 5 at position 29: the
	// exact half rounds the 28th digit to even, so it stays 2.
	d, _ := decimal.NewFromString("0." + repeatDigit('3', 27) + "25")
	got := RoundContext(d)
	if got.Exponent() < -28 {
		t.Errorf("RoundContext result has scale > 28: %v", got)
	}
	if want := "0." + repeatDigit('3', 27) + "2"; got.String() != want {
		t.Errorf("RoundContext(%v) = %q, want %q", d, got.String(), want)
	}
}

func repeatDigit(d byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = d
	}
	return string(b)
}

func TestAsLongOverflow(t *testing.T) {
	v := Double(1e20)
	if _, err := v.AsLong(); err == nil {
		t.Errorf("AsLong on overflowing double: got nil error, want Arithmetic")
	}
}

func TestAsBooleanFromString(t *testing.T) {
	cases := []struct {
		s    string
		want bool
	}{
		{"true", true},
		{"FALSE", false},
		{"1", true},
		{"0", false},
	}
	for _, c := range cases {
		b, err := String(c.s).AsBoolean()
		if err != nil {
			t.Fatalf("AsBoolean(%q): %v", c.s, err)
		}
		if b != c.want {
			t.Errorf("AsBoolean(%q) = %v, want %v", c.s, b, c.want)
		}
	}
}

func TestStringConcatCoercesFromNumber(t *testing.T) {
	if got := Long(3).AsString(); got != "3" {
		t.Errorf("Long(3).AsString() = %q, want %q", got, "3")
	}
}
