package domain

import "github.com/shopspring/decimal"

// Round2 rounds a decimal to 2 places and returns it as a float64 for
// report output. Rounding happens only here, at the edge, never before
// aggregation.
func Round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// SafeDiv divides a by b, returning zero when b is zero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}
