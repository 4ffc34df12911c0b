package value

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// DecimalPrecision is the maximum total significant digits a BIG_DEC
// column's NUMERIC type can declare (used by the calculated-value codec's
// precision cap, not by arithmetic rounding).
const DecimalPrecision = 28

// DecimalScale is the fractional-digit scale the BIG_DEC arithmetic context
// rounds results to: a fixed 28 digits after the decimal point, not 28
// total significant digits (a division like 1/0.03 legitimately produces
// more than 28 significant digits once its integer part is counted).
const DecimalScale = 28

// Normalize strips trailing zeros from d's coefficient (raising its
// exponent toward zero) and guarantees a non-negative scale, so that two
// decimals with the same logical value but different literal
// representations (e.g. "1.50" vs "1.5") compare equal after normalization.
// Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		// Zero's coefficient is always divisible by ten, which would spin
		// the stripping loop forever; canonicalize it directly instead.
		return decimal.New(0, 0)
	}
	coef := d.Coefficient()
	exp := d.Exponent()
	ten := big.NewInt(10)
	for exp < 0 {
		q, r := new(big.Int).QuoRem(coef, ten, new(big.Int))
		if r.Sign() != 0 {
			break
		}
		coef = q
		exp++
	}
	if exp > 0 {
		coef = new(big.Int).Mul(coef, new(big.Int).Exp(ten, big.NewInt(int64(exp)), nil))
		exp = 0
	}
	return decimal.NewFromBigInt(coef, exp)
}

// RoundContext rounds d to DecimalScale fractional digits using
// round-half-to-even, then normalizes the result. shopspring/decimal's own
// Round rounds half-away-from-zero, so the half-even step is built
// directly on its Coefficient()/Exponent() accessors.
func RoundContext(d decimal.Decimal) decimal.Decimal {
	return Normalize(roundToScale(d, DecimalScale))
}

// RoundHalfEven rounds d to an arbitrary fractional-digit scale,
// half-to-even, then normalizes the result. Used for fixed-scale
// conversions like CCur's scale-4 rounding.
func RoundHalfEven(d decimal.Decimal, scale int32) decimal.Decimal {
	return Normalize(roundToScale(d, scale))
}

// roundToScale rounds d to at most scale fractional digits, half-to-even.
func roundToScale(d decimal.Decimal, scale int32) decimal.Decimal {
	exp := d.Exponent()
	currentScale := -exp
	if currentScale <= scale {
		return d
	}
	drop := currentScale - scale

	coef := d.Coefficient()
	neg := coef.Sign() < 0
	abs := new(big.Int).Abs(coef)

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(drop)), nil)
	quotient := new(big.Int)
	remainder := new(big.Int)
	quotient.QuoRem(abs, divisor, remainder)

	twiceRem := new(big.Int).Lsh(remainder, 1)
	switch twiceRem.Cmp(divisor) {
	case 1:
		quotient.Add(quotient, big.NewInt(1))
	case 0:
		if quotient.Bit(0) == 1 {
			quotient.Add(quotient, big.NewInt(1))
		}
	}

	newExp := exp + drop
	if neg {
		quotient.Neg(quotient)
	}
	return decimal.NewFromBigInt(quotient, newExp)
}

// Divide computes a/b rounded to the BIG_DEC arithmetic context: exact
// when the division terminates, else HALF_EVEN at DecimalScale fractional
// digits.
func Divide(a, b decimal.Decimal) decimal.Decimal {
	q := a.DivRound(b, DecimalScale+8)
	return RoundContext(q)
}
