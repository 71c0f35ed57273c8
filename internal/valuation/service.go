// Package valuation combines open positions, live quotes, and currency
// conversion into per-instrument and per-class valuations and net worth.
package valuation

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/finfolio/folio/internal/currency"
	"github.com/finfolio/folio/internal/domain"
	"github.com/finfolio/folio/internal/ledger"
	"github.com/finfolio/folio/internal/quote"
)

// bondCurrency is the denomination of bond face values. The original data
// carries no per-bond currency; bonds are kept in the USD base.
const bondCurrency = "USD"

// InstrumentValue is the valuation of one instrument position. Monetary
// fields are expressed in the snapshot's reporting currency; Price stays in
// the instrument's own quote currency.
type InstrumentValue struct {
	Symbol       string            `json:"symbol"`
	Description  string            `json:"description,omitempty"`
	AssetClass   domain.AssetClass `json:"assetClass"`
	Quantity     decimal.Decimal   `json:"quantity"`
	AvgCost      decimal.Decimal   `json:"avgCost"`
	Price        decimal.Decimal   `json:"price"`
	MarketValue  decimal.Decimal   `json:"marketValue"`
	CostBasis    decimal.Decimal   `json:"costBasis"`
	UnrealizedPL decimal.Decimal   `json:"unrealizedPl"`
}

// ClassRollup aggregates market value and cost basis per asset class.
// ProfitLoss is derived as the difference of the two sums, never summed
// independently, to avoid rounding drift.
type ClassRollup struct {
	AssetClass  domain.AssetClass `json:"assetClass"`
	MarketValue decimal.Decimal   `json:"marketValue"`
	CostBasis   decimal.Decimal   `json:"costBasis"`
	ProfitLoss  decimal.Decimal   `json:"profitLoss"`
	Share       decimal.Decimal   `json:"share"` // fraction of total invested value
}

// BondValue is a per-bond valuation row. TotalValue is face value times
// quantity in the reporting currency.
type BondValue struct {
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	FaceValue       decimal.Decimal `json:"faceValue"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	YieldToMaturity float64         `json:"yieldToMaturity"`
}

// Snapshot is a point-in-time valuation of an owner's whole portfolio.
type Snapshot struct {
	Owner       string            `json:"owner"`
	Currency    string            `json:"currency"`
	AsOf        time.Time         `json:"asOf"`
	Instruments []InstrumentValue `json:"instruments"`
	Classes     []ClassRollup     `json:"classes"`
	Bonds       []BondValue       `json:"bonds"`
	CashTotal   decimal.Decimal   `json:"cashTotal"`
	BondTotal   decimal.Decimal   `json:"bondTotal"`
	NetWorth    decimal.Decimal   `json:"netWorth"`
}

// Service values portfolios. It is a pure computation layer: every call
// replays the supplied records and allocates fresh accumulators, so it is
// safe to invoke concurrently for different owners.
type Service struct {
	quotes    quote.Source
	converter *currency.Converter
	method    ledger.Method
}

// NewService creates a valuation Service. Both dependencies are required.
func NewService(quotes quote.Source, converter *currency.Converter) *Service {
	if quotes == nil {
		panic("valuation.NewService: quotes is nil")
	}
	if converter == nil {
		panic("valuation.NewService: converter is nil")
	}
	return &Service{quotes: quotes, converter: converter, method: ledger.FIFO}
}

// Value computes the full valuation snapshot for one owner as of a date.
// Trades and cash events after asOf are ignored; pricing always uses the
// live quote. A missing quote fails the whole call.
func (s *Service) Value(records domain.Records, owner, reportingCurrency string, asOf time.Time) (Snapshot, error) {
	snap := Snapshot{Owner: owner, Currency: reportingCurrency, AsOf: asOf}

	var investedValue decimal.Decimal
	for _, inst := range records.Instruments {
		pos := ledger.PositionThrough(records.InstrumentTrades(owner, inst.ID), asOf, s.method)

		price, err := s.quotes.Price(inst.Symbol)
		if err != nil {
			return Snapshot{}, fmt.Errorf("quoting %s: %w", inst.Symbol, err)
		}

		// Compute in the instrument's quote currency, convert once, then sum.
		marketValue := s.converter.Convert(pos.Quantity.Mul(price), inst.Currency, reportingCurrency)
		costBasis := s.converter.Convert(pos.Quantity.Mul(pos.AvgCost), inst.Currency, reportingCurrency)

		snap.Instruments = append(snap.Instruments, InstrumentValue{
			Symbol:       inst.Symbol,
			Description:  inst.Description,
			AssetClass:   inst.AssetClass,
			Quantity:     pos.Quantity,
			AvgCost:      pos.AvgCost,
			Price:        price,
			MarketValue:  marketValue,
			CostBasis:    costBasis,
			UnrealizedPL: marketValue.Sub(costBasis),
		})
		investedValue = investedValue.Add(marketValue)
	}

	snap.Classes = s.rollupClasses(snap.Instruments)

	for _, account := range records.OwnerAccounts(owner) {
		balance := ledger.BalanceAsOf(account.ID, records.CashEvents, asOf)
		snap.CashTotal = snap.CashTotal.Add(s.converter.Convert(balance, account.Currency, reportingCurrency))
	}

	for _, bond := range records.OwnerBonds(owner) {
		if bond.PurchaseDate.After(asOf) {
			continue
		}
		total := s.converter.Convert(bond.TotalValue(), bondCurrency, reportingCurrency)
		snap.Bonds = append(snap.Bonds, BondValue{
			Name:            bond.Name,
			Quantity:        bond.Quantity,
			FaceValue:       bond.FaceValue,
			TotalValue:      total,
			YieldToMaturity: bond.YieldToMaturity(asOf),
		})
		snap.BondTotal = snap.BondTotal.Add(total)
	}

	snap.NetWorth = investedValue.Add(snap.CashTotal).Add(snap.BondTotal)
	return snap, nil
}

// rollupClasses groups open positions by asset class. Flat positions are
// skipped; they contribute nothing.
func (s *Service) rollupClasses(values []InstrumentValue) []ClassRollup {
	open := lo.Filter(values, func(v InstrumentValue, _ int) bool { return !v.Quantity.IsZero() })
	grouped := lo.GroupBy(open, func(v InstrumentValue) domain.AssetClass { return v.AssetClass })

	var total decimal.Decimal
	for _, v := range open {
		total = total.Add(v.MarketValue)
	}

	var rollups []ClassRollup
	for _, class := range domain.AssetClasses() {
		group, ok := grouped[class]
		if !ok {
			continue
		}
		var value, cost decimal.Decimal
		for _, v := range group {
			value = value.Add(v.MarketValue)
			cost = cost.Add(v.CostBasis)
		}
		rollups = append(rollups, ClassRollup{
			AssetClass:  class,
			MarketValue: value,
			CostBasis:   cost,
			ProfitLoss:  value.Sub(cost),
			Share:       domain.SafeDiv(value, total),
		})
	}
	return rollups
}
