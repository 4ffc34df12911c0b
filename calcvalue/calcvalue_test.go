package calcvalue

import (
	"bytes"
	"encoding/binary"
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/temporal"
	"github.com/gordthompson/jackcess-go/value"
)

func roundTrip(t *testing.T, v value.Value, colType ColumnType, maxScale int32) value.Value {
	t.Helper()
	var prefix [prefixLen]byte
	wrapped, err := Encode(v, colType, prefix, maxScale)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(wrapped) < 23 {
		t.Fatalf("wrapper shorter than the fixed 23-byte overhead: %d bytes total, no payload", len(wrapped))
	}
	decoded, err := Decode(wrapped, colType, temporal.DefaultConfig())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return decoded.Value
}

func TestWrapperOverheadIs23BytesBeyondPayload(t *testing.T) {
	var prefix [prefixLen]byte
	wrapped, err := Encode(value.Long(42), TypeLong, prefix, 0)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	payloadLen := 4
	if got := len(wrapped) - payloadLen; got != 23 {
		t.Errorf("wrapper overhead = %d bytes, want 23", got)
	}
}

func TestPrefixPreservedAcrossRoundTrip(t *testing.T) {
	var prefix [prefixLen]byte
	for i := range prefix {
		prefix[i] = byte(i + 1)
	}
	wrapped, err := Encode(value.Long(1), TypeLong, prefix, 0)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(wrapped, TypeLong, temporal.DefaultConfig())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded.Prefix[:], prefix[:]) {
		t.Errorf("Prefix = %v, want %v", decoded.Prefix, prefix)
	}
}

func TestBooleanRoundTrip(t *testing.T) {
	got := roundTrip(t, value.True(), TypeBoolean, 0)
	if b, _ := got.AsBoolean(); !b {
		t.Errorf("calculated boolean round trip = %v, want TRUE", got)
	}
	got = roundTrip(t, value.False(), TypeBoolean, 0)
	if b, _ := got.AsBoolean(); b {
		t.Errorf("calculated boolean round trip = %v, want FALSE", got)
	}
}

func TestBooleanWrapperIsSingleByte(t *testing.T) {
	var prefix [prefixLen]byte
	wrapped, err := Encode(value.True(), TypeBoolean, prefix, 0)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := len(wrapped) - 23; got != 1 {
		t.Errorf("calculated boolean payload length = %d, want 1", got)
	}
	if wrapped[headerLen] != 0xFF {
		t.Errorf("calculated TRUE payload byte = 0x%02x, want 0xFF", wrapped[headerLen])
	}
}

func TestLongRoundTrip(t *testing.T) {
	got := roundTrip(t, value.Long(-37), TypeLong, 0)
	if got.LongValue() != -37 {
		t.Errorf("Long round trip = %v, want -37", got.LongValue())
	}
}

func TestDoubleRoundTripIsBitIdentical(t *testing.T) {
	want := 83333.3333
	got := roundTrip(t, value.Double(want), TypeDouble, 0)
	if got.DoubleValue() != want {
		t.Errorf("Double round trip = %v, want %v (bit-identical)", got.DoubleValue(), want)
	}
}

func TestTextRoundTrip(t *testing.T) {
	got := roundTrip(t, value.String("Bruce"), TypeText, 0)
	if got.StringValue() != "Bruce" {
		t.Errorf("Text round trip = %q, want %q", got.StringValue(), "Bruce")
	}
}

func TestDateTimeRoundTrip(t *testing.T) {
	dd := temporal.DateDouble(40000.5)
	got := roundTrip(t, value.DateTime(dd, temporal.DefaultConfig()), TypeDateTime, 0)
	if got.DateDoubleValue() != dd {
		t.Errorf("DateTime round trip = %v, want %v", got.DateDoubleValue(), dd)
	}
}

func TestNumericRoundTripAtDeclaredScale(t *testing.T) {
	// 28 significant digits, all fractional: fits the storage precision cap
	// exactly, unlike the 30-digit in-memory arithmetic result of
	// [id]/0.03 (a BIG_DEC scale-28 division result, not itself a stored
	// calculated NUMERIC value).
	d, _ := decimal.NewFromString("0.3333333333333333333333333333")
	got := roundTrip(t, value.BigDec(d), TypeNumeric, 28)
	want := value.RoundHalfEven(d, 28)
	if !got.BigDecValue().Equal(want) {
		t.Errorf("Numeric round trip = %s, want %s", got.BigDecValue(), want)
	}
}

func TestNumericExcessScaleRoundsDown(t *testing.T) {
	d, _ := decimal.NewFromString("1.23456")
	got := roundTrip(t, value.BigDec(d), TypeNumeric, 2)
	want, _ := decimal.NewFromString("1.23")
	if !got.BigDecValue().Equal(want) {
		t.Errorf("Numeric with maxScale=2 = %s, want %s", got.BigDecValue(), want)
	}
}

func TestNumericPrecisionExceededIsArithmeticError(t *testing.T) {
	digits := new(big.Int)
	digits.SetString(strings.Repeat("9", 30), 10)
	huge := decimal.NewFromBigInt(digits, 0)
	_, err := EncodeNumeric(huge, 0)
	if !jerrors.Is(err, jerrors.ErrArithmetic) {
		t.Errorf("encoding a 30-digit integer: got %v, want ErrArithmetic", err)
	}
}

func TestNumericNegativeRoundTrip(t *testing.T) {
	d, _ := decimal.NewFromString("-5650508581.424791296572280180")
	got := roundTrip(t, value.BigDec(d), TypeNumeric, 18)
	want := value.RoundHalfEven(d, 18)
	if !got.BigDecValue().Equal(want) {
		t.Errorf("negative Numeric round trip = %s, want %s", got.BigDecValue(), want)
	}
	if got.BigDecValue().Sign() >= 0 {
		t.Error("sign lost on round trip")
	}
}

// TestDecodeDoesNotEnforcePrecisionCap covers reading a pre-existing
// on-disk NUMERIC value whose coefficient exceeds the 28-significant-digit
// cap EncodeNumeric enforces on write: decode must still reproduce it
// faithfully, since the cap is a write-time constraint the original writer
// already satisfied (or didn't, for data this codec did not itself produce).
func TestDecodeDoesNotEnforcePrecisionCap(t *testing.T) {
	d, _ := decimal.NewFromString("56505085819.424791296572280180") // 29 significant digits
	coef := d.Coefficient()
	scale := -d.Exponent()
	mantissaBytes := coef.Bytes()
	swapped := swapNumericQuirk(mantissaBytes)
	payload := make([]byte, 4+len(swapped))
	binary.LittleEndian.PutUint16(payload[0:2], uint16(int16(len(payload)-2)))
	payload[2] = byte(scale)
	payload[3] = signPositive
	copy(payload[4:], swapped)

	got, err := DecodeNumeric(payload)
	if err != nil {
		t.Fatalf("DecodeNumeric: %v", err)
	}
	if !got.Equal(d) {
		t.Errorf("DecodeNumeric = %s, want %s", got, d)
	}
}

func TestSwapQuirkFourByteGroup(t *testing.T) {
	in := []byte{1, 2, 3, 4}
	got := swapNumericQuirk(in)
	want := []byte{4, 3, 2, 1}
	if !bytes.Equal(got, want) {
		t.Errorf("4-byte swap = %v, want %v", got, want)
	}
}

func TestSwapQuirkEightByteGroup(t *testing.T) {
	in := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	got := swapNumericQuirk(in)
	want := []byte{8, 7, 6, 5, 4, 3, 2, 1}
	if !bytes.Equal(got, want) {
		t.Errorf("8-byte swap = %v, want %v", got, want)
	}
}

func TestSwapQuirkTwelveBytesBothPaths(t *testing.T) {
	in := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	got := swapNumericQuirk(in)
	want := []byte{4, 3, 2, 1, 12, 11, 10, 9, 8, 7, 6, 5}
	if !bytes.Equal(got, want) {
		t.Errorf("12-byte swap = %v, want %v", got, want)
	}
}

func TestSwapQuirkIsSelfInverse(t *testing.T) {
	for _, n := range []int{4, 8, 12} {
		in := make([]byte, n)
		for i := range in {
			in[i] = byte(i + 1)
		}
		twice := swapNumericQuirk(swapNumericQuirk(in))
		if !bytes.Equal(twice, in) {
			t.Errorf("swap twice (n=%d) = %v, want original %v", n, twice, in)
		}
	}
}
