package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// FromString parses decimal from string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Format renders a decimal with exactly two fractional digits,
// the fixed precision required for EN16931 amount elements.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatZero is the zero amount at fixed precision ("0.00").
func FormatZero() string {
	return Zero.StringFixed(2)
}

// RescalePercent converts a rate stored as a fraction of 1 into a
// percentage of 100, e.g. 0.19 -> 19.00.
func RescalePercent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(100))
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}
