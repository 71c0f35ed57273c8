// Package quote supplies live price quotes for instrument symbols.
package quote

import (
	"hash/fnv"

	"github.com/shopspring/decimal"
)

// Source returns the current unit price for a symbol, in the instrument's
// quote currency. A missing quote is an error: valuation fails fast rather
// than substituting a guessed value.
type Source interface {
	Price(symbol string) (decimal.Decimal, error)
}

// Func adapts a plain function to the Source interface.
type Func func(symbol string) (decimal.Decimal, error)

func (f Func) Price(symbol string) (decimal.Decimal, error) { return f(symbol) }

// Deterministic is the reference price source: stable for a given symbol,
// in the range [50.0, 59.9]. It stands in for a real market-data feed.
type Deterministic struct{}

// Price derives a price from the symbol: 50 + (hash mod 100) / 10.
func (Deterministic) Price(symbol string) (decimal.Decimal, error) {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	tenths := 500 + int64(h.Sum32()%100)
	return decimal.New(tenths, -1), nil
}
