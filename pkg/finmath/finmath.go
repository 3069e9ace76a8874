// Package finmath holds the decimal helpers shared by every calculator:
// percent conversion, bounded-precision powers, rounding and comparisons.
package finmath

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places kept by intermediate products
// in PowInt. Unbounded decimal multiplication grows the mantissa on every
// step; 18 places keeps amortization and growth walks well inside 1e-9.
const Precision = 18

// ErrNotFinite is returned when a float64 fallback produced NaN or ±Inf.
var ErrNotFinite = errors.New("result is not a finite number")

var (
	// One is the decimal 1.
	One = decimal.NewFromInt(1)
	// Hundred is the decimal 100.
	Hundred = decimal.NewFromInt(100)
)

// Rate converts a percentage (7.5) into a fraction (0.075).
func Rate(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(Hundred)
}

// Percent converts a fraction (0.075) into a percentage (7.5).
func Percent(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Mul(Hundred)
}

// PercentOf returns percent% of amount.
func PercentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(Hundred)
}

// PowInt raises base to an integer power by repeated squaring.
func PowInt(base decimal.Decimal, n int) decimal.Decimal {
	if n < 0 {
		return One.Div(PowInt(base, -n))
	}
	result := One
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(Precision)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base).Round(Precision)
		}
	}
	return result
}

// PowFloat raises base to a real exponent. Integral exponents stay on the
// exact decimal path; fractional ones go through math.Pow.
func PowFloat(base decimal.Decimal, exp float64) (decimal.Decimal, error) {
	if exp == math.Trunc(exp) && math.Abs(exp) < 1<<20 {
		if base.IsZero() && exp < 0 {
			return decimal.Zero, ErrNotFinite
		}
		return PowInt(base, int(exp)), nil
	}
	v := math.Pow(base.InexactFloat64(), exp)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, ErrNotFinite
	}
	return decimal.NewFromFloat(v), nil
}

// GrowthFactor returns (1 + rate)^n for a fractional rate.
func GrowthFactor(rate decimal.Decimal, n int) decimal.Decimal {
	return PowInt(One.Add(rate), n)
}

// Round rounds to paise/cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ClampZero floors negative values at zero.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// MinOf returns the smallest of the given values. It panics when called
// without arguments.
func MinOf(first decimal.Decimal, rest ...decimal.Decimal) decimal.Decimal {
	return decimal.Min(first, rest...)
}

// IsOneOf reports whether d equals one of the allowed values.
func IsOneOf(d decimal.Decimal, allowed []decimal.Decimal) bool {
	for _, a := range allowed {
		if d.Equal(a) {
			return true
		}
	}
	return false
}
