package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TradeSide is the direction of a trade event.
type TradeSide string

const (
	SideBuy  TradeSide = "Buy"
	SideSell TradeSide = "Sell"
)

// ParseTradeSide converts a stored string into a TradeSide. Matching is
// case-insensitive because the original data carries mixed casing.
func ParseTradeSide(s string) (TradeSide, error) {
	switch strings.ToLower(s) {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	default:
		return "", fmt.Errorf("unknown trade side %q", s)
	}
}

// TradeEvent records a single buy or sell of an instrument by an owner.
// Events are append-only; an explicit edit forces dependent lot state to be
// re-derived, which happens naturally because the ledger always replays.
type TradeEvent struct {
	ID           int64           `json:"id"`
	InstrumentID *int64          `json:"instrumentId,omitempty"` // nil for unlinked events
	Owner        string          `json:"owner"`
	Date         time.Time       `json:"date"`
	Side         TradeSide       `json:"side"`
	Price        decimal.Decimal `json:"price"`    // unit price in Currency
	Quantity     decimal.Decimal `json:"quantity"` // units traded
	Note         string          `json:"note,omitempty"`
	Currency     string          `json:"currency"` // quote currency of Price
}

// Validate checks the trade event invariants.
func (t TradeEvent) Validate() error {
	if _, err := ParseTradeSide(string(t.Side)); err != nil {
		return err
	}
	if t.Owner == "" {
		return fmt.Errorf("trade event: owner must not be empty")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("trade event: date must be set")
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("trade event: price %s must not be negative", t.Price)
	}
	if t.Quantity.IsNegative() {
		return fmt.Errorf("trade event: quantity %s must not be negative", t.Quantity)
	}
	return nil
}

// ForInstrument reports whether the event is linked to the given instrument.
func (t TradeEvent) ForInstrument(instrumentID int64) bool {
	return t.InstrumentID != nil && *t.InstrumentID == instrumentID
}
