package operator

import "github.com/shopspring/decimal"

// decimalPowExact raises base to the non-negative integer power n using
// exponentiation by squaring, so a BIG_DEC base stays exact (no binary
// floating-point power function is involved).
func decimalPowExact(base decimal.Decimal, n int64) decimal.Decimal {
	result := decimal.New(1, 0)
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b)
		}
		b = b.Mul(b)
		n >>= 1
	}
	return result
}
