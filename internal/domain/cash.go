package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CashEventKind is the kind of a cash ledger event.
type CashEventKind string

const (
	CashDeposit        CashEventKind = "deposit"
	CashWithdraw       CashEventKind = "withdraw"
	CashConversion     CashEventKind = "conversion"
	CashInvestmentBuy  CashEventKind = "investment_buy"
	CashInvestmentSell CashEventKind = "investment_sell"
)

// ParseCashEventKind converts a stored string into a CashEventKind.
func ParseCashEventKind(s string) (CashEventKind, error) {
	switch CashEventKind(s) {
	case CashDeposit, CashWithdraw, CashConversion, CashInvestmentBuy, CashInvestmentSell:
		return CashEventKind(s), nil
	default:
		return "", fmt.Errorf("unknown cash event kind %q", s)
	}
}

// CashAccount is a cash holding in a single currency. The stored balance of
// the original system is treated as a cache only; the authoritative balance
// at any date is the replay of cash events up to that date.
type CashAccount struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Owner    string `json:"owner"`
}

// CashEvent is a single entry in the cash ledger. Depending on the kind it
// references a source account, a destination account, or (for conversions)
// both plus a conversion rate.
type CashEvent struct {
	ID             int64            `json:"id"`
	Date           time.Time        `json:"date"`
	Kind           CashEventKind    `json:"kind"`
	FromAccount    *int64           `json:"fromAccount,omitempty"`
	ToAccount      *int64           `json:"toAccount,omitempty"`
	Amount         decimal.Decimal  `json:"amount"`
	ConversionRate *decimal.Decimal `json:"conversionRate,omitempty"`
}

// Validate checks the per-kind account-leg invariants and amount sign.
func (e CashEvent) Validate() error {
	if _, err := ParseCashEventKind(string(e.Kind)); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return fmt.Errorf("cash event: date must be set")
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("cash event: amount %s must not be negative", e.Amount)
	}
	switch e.Kind {
	case CashDeposit, CashInvestmentSell:
		if e.ToAccount == nil {
			return fmt.Errorf("cash event %s: destination account is required", e.Kind)
		}
	case CashWithdraw, CashInvestmentBuy:
		if e.FromAccount == nil {
			return fmt.Errorf("cash event %s: source account is required", e.Kind)
		}
	case CashConversion:
		if e.FromAccount == nil || e.ToAccount == nil {
			return fmt.Errorf("cash event conversion: both source and destination accounts are required")
		}
		if e.ConversionRate == nil {
			return fmt.Errorf("cash event conversion: conversion rate is required")
		}
		if e.ConversionRate.IsNegative() {
			return fmt.Errorf("cash event conversion: rate %s must not be negative", e.ConversionRate)
		}
	}
	return nil
}
