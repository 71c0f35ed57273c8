package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Bond is a fixed-income holding. Bonds are valued at face value times
// quantity; there is no market-price lookup for them.
type Bond struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	FaceValue    decimal.Decimal `json:"faceValue"`
	CouponRate   decimal.Decimal `json:"couponRate"` // percent, e.g. 5 for 5%
	MaturityDate time.Time       `json:"maturityDate"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	Quantity     decimal.Decimal `json:"quantity"`
	CostBasis    decimal.Decimal `json:"costBasis"` // acquisition price per bond
	Owner        string          `json:"owner"`
}

// Validate checks the bond invariants.
func (b Bond) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("bond: name must not be empty")
	}
	if b.FaceValue.IsNegative() || b.CouponRate.IsNegative() || b.Quantity.IsNegative() || b.CostBasis.IsNegative() {
		return fmt.Errorf("bond %s: face value, coupon rate, quantity and cost basis must not be negative", b.Name)
	}
	if b.MaturityDate.IsZero() || b.PurchaseDate.IsZero() {
		return fmt.Errorf("bond %s: maturity and purchase dates must be set", b.Name)
	}
	return nil
}

// TotalValue is the bond position value: face value times quantity.
func (b Bond) TotalValue() decimal.Decimal {
	return b.FaceValue.Mul(b.Quantity)
}

// YieldToMaturity approximates the annual yield in percent as of a date:
//
//	(coupon + (face - cost) / years) / ((face + cost) / 2) * 100
//
// Returns 0 at or past maturity.
func (b Bond) YieldToMaturity(asOf time.Time) float64 {
	years := b.MaturityDate.Sub(asOf).Hours() / 24 / 365.25
	if years <= 0 {
		return 0
	}
	face := b.FaceValue.InexactFloat64()
	cost := b.CostBasis.InexactFloat64()
	if face+cost == 0 {
		return 0
	}
	annualCoupon := face * b.CouponRate.InexactFloat64() / 100
	return (annualCoupon + (face-cost)/years) / ((face + cost) / 2) * 100
}
