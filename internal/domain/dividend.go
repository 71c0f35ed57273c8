package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Dividend is a cash distribution received for an instrument.
type Dividend struct {
	ID           int64           `json:"id"`
	InstrumentID int64           `json:"instrumentId"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note,omitempty"`
	Owner        string          `json:"owner"`
}

// Validate checks the dividend invariants.
func (d Dividend) Validate() error {
	if d.InstrumentID == 0 {
		return fmt.Errorf("dividend: instrument reference is required")
	}
	if d.Date.IsZero() {
		return fmt.Errorf("dividend: date must be set")
	}
	if d.Amount.IsNegative() {
		return fmt.Errorf("dividend: amount %s must not be negative", d.Amount)
	}
	return nil
}
