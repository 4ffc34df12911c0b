package calcvalue

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	jerrors "github.com/gordthompson/jackcess-go/errors"
	"github.com/gordthompson/jackcess-go/value"
)

// signNegative and signPositive are the two values the NUMERIC payload's
// sign byte ever takes.
const (
	signNegative byte = 0x80
	signPositive byte = 0x00
)

// DecodeNumeric decodes a calculated NUMERIC payload:
//
//	int16 totalLen  // little-endian; bytes remaining in this field minus 2
//	byte  scale     // 0..28
//	byte  signByte  // 0x80 negative, 0x00 positive
//	bytes mantissa  // big-endian unscaled magnitude, byte-swap quirk applied
//
// Calculated NUMERIC always reports precision 28 regardless of the
// column's declared precision; NumericPrecision exposes that constant for
// callers building column metadata.
func DecodeNumeric(payload []byte) (decimal.Decimal, error) {
	if len(payload) < 4 {
		return decimal.Decimal{}, jerrors.NewCorruptState("calculated numeric payload shorter than 4 bytes")
	}
	totalLen := int(int16(binary.LittleEndian.Uint16(payload[0:2])))
	dataLen := totalLen + 2
	if dataLen > len(payload) {
		return decimal.Decimal{}, jerrors.NewCorruptState("calculated numeric totalLen exceeds payload length")
	}
	scale := int32(payload[2])
	signByte := payload[3]
	mantissaBytes := unswapNumericQuirk(payload[4:dataLen])

	mantissa := new(big.Int).SetBytes(mantissaBytes)
	if signByte == signNegative {
		mantissa.Neg(mantissa)
	}
	return decimal.NewFromBigInt(mantissa, -scale), nil
}

// EncodeNumeric encodes d as a calculated NUMERIC payload. Scale beyond
// maxScale is rounded down (HALF_EVEN); if the resulting coefficient needs
// more than value.DecimalPrecision significant digits, encoding fails with
// Arithmetic.
func EncodeNumeric(d decimal.Decimal, maxScale int32) ([]byte, error) {
	if maxScale > value.DecimalPrecision {
		maxScale = value.DecimalPrecision
	}
	if maxScale < 0 {
		maxScale = 0
	}
	rounded := value.RoundHalfEven(d, maxScale)

	coef := rounded.Coefficient()
	scale := -rounded.Exponent()
	if scale < 0 {
		// Normalize guarantees a non-negative scale for a non-zero value;
		// a trailing-zero-stripped integer can still land here with
		// exponent > 0, which is scale 0 once padded back out.
		coef = new(big.Int).Mul(coef, pow10(int(-scale)))
		scale = 0
	}

	if significantDigits(coef) > value.DecimalPrecision {
		return nil, jerrors.NewArithmetic("EncodeNumeric", fmt.Sprintf("value needs more than %d significant digits", value.DecimalPrecision))
	}

	neg := coef.Sign() < 0
	abs := new(big.Int).Abs(coef)
	mantissaBytes := abs.Bytes()
	if len(mantissaBytes) == 0 {
		mantissaBytes = []byte{0}
	}
	swapped := swapNumericQuirk(mantissaBytes)

	dataLen := 4 + len(swapped)
	out := make([]byte, dataLen)
	binary.LittleEndian.PutUint16(out[0:2], uint16(int16(dataLen-2)))
	out[2] = byte(scale)
	if neg {
		out[3] = signNegative
	} else {
		out[3] = signPositive
	}
	copy(out[4:], swapped)
	return out, nil
}

// NumericPrecision is the precision a calculated NUMERIC column always
// reports, independent of its declared precision.
func NumericPrecision() int32 { return value.DecimalPrecision }

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

func significantDigits(coef *big.Int) int {
	if coef.Sign() == 0 {
		return 1
	}
	abs := new(big.Int).Abs(coef)
	return len(abs.Text(10))
}

// swapNumericQuirk and unswapNumericQuirk implement the NUMERIC mantissa's
// non-standard byte order: if the byte length is not a multiple of 8, the
// leading 4 bytes are reversed as one group; whatever follows (always a
// multiple of 8 bytes once that leading group is set aside) is reversed in
// 8-byte groups. Reversing a fixed-size group twice is the identity, so
// the same transform both applies and reverses the quirk.
func swapNumericQuirk(b []byte) []byte {
	out := append([]byte(nil), b...)
	start := 0
	if len(out)%8 != 0 && len(out) >= 4 {
		reverseGroup(out[0:4])
		start = 4
	}
	for i := start; i+8 <= len(out); i += 8 {
		reverseGroup(out[i : i+8])
	}
	return out
}

func unswapNumericQuirk(b []byte) []byte {
	return swapNumericQuirk(b)
}

func reverseGroup(g []byte) {
	for i, j := 0, len(g)-1; i < j; i, j = i+1, j-1 {
		g[i], g[j] = g[j], g[i]
	}
}
