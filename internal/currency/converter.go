// Package currency converts amounts between currency codes using a fixed
// pairwise rate table.
package currency

import "github.com/shopspring/decimal"

// Pair is an ordered (from, to) currency pair.
type Pair struct {
	From string
	To   string
}

// Converter converts amounts using a static rate table. A table must carry
// both directions for every pair it supports; missing pairs degrade to the
// unconverted amount so that a gap in the table never blocks a report.
// Callers that need strict conversion must check Supports first.
type Converter struct {
	rates map[Pair]decimal.Decimal
}

// NewConverter builds a converter from an explicit rate table.
func NewConverter(rates map[Pair]decimal.Decimal) *Converter {
	table := make(map[Pair]decimal.Decimal, len(rates))
	for p, r := range rates {
		table[p] = r
	}
	return &Converter{rates: table}
}

// NewDefaultConverter builds a converter with the built-in USD/THB/SGD table.
func NewDefaultConverter() *Converter {
	return NewConverter(DefaultRates())
}

// DefaultRates returns the built-in rate table. Inverse rates are derived
// from the forward rates so both directions stay consistent.
func DefaultRates() map[Pair]decimal.Decimal {
	usdTHB := decimal.NewFromFloat(34.0)
	usdSGD := decimal.NewFromFloat(1.35)
	one := decimal.NewFromInt(1)
	return map[Pair]decimal.Decimal{
		{From: "USD", To: "THB"}: usdTHB,
		{From: "USD", To: "SGD"}: usdSGD,
		{From: "THB", To: "USD"}: one.Div(usdTHB),
		{From: "THB", To: "SGD"}: one.Div(usdTHB).Mul(usdSGD),
		{From: "SGD", To: "USD"}: one.Div(usdSGD),
		{From: "SGD", To: "THB"}: one.Div(usdSGD).Mul(usdTHB),
	}
}

// Convert converts an amount from one currency to another. Same-currency
// conversion is the identity. An untabulated pair returns the amount
// unchanged.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to {
		return amount
	}
	rate, ok := c.rates[Pair{From: from, To: to}]
	if !ok {
		return amount
	}
	return amount.Mul(rate)
}

// Supports reports whether the ordered pair is tabulated (or trivial).
func (c *Converter) Supports(from, to string) bool {
	if from == to {
		return true
	}
	_, ok := c.rates[Pair{From: from, To: to}]
	return ok
}
