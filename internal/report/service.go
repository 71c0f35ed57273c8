// Package report assembles periodic financial statements from the ledgers.
//
// Historical rows value positions with the live quote, not a historical
// price series: a row answers "what would this position be worth today",
// which is a documented simplification, not a defect.
package report

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/finfolio/folio/internal/currency"
	"github.com/finfolio/folio/internal/domain"
	"github.com/finfolio/folio/internal/ledger"
	"github.com/finfolio/folio/internal/period"
	"github.com/finfolio/folio/internal/quote"
)

// bondCurrency is the denomination of bond face values.
const bondCurrency = "USD"

// WealthRow is one month of the wealth-evolution chart.
type WealthRow struct {
	Month      string  `json:"month"` // YYYY-MM
	AssetValue float64 `json:"assetValue"`
	CostBasis  float64 `json:"costBasis"`
	ProfitLoss float64 `json:"profitLoss"`
}

// OverviewRow is one period of the wealth overview: the position open at
// the period end, valued at the live quote.
type OverviewRow struct {
	Label      string  `json:"label"`
	AssetValue float64 `json:"assetValue"`
	CostBasis  float64 `json:"costBasis"`
	ProfitLoss float64 `json:"profitLoss"`
}

// BalanceSheetRow is one period of the balance sheet. Liabilities are not
// tracked, so equity always equals total assets.
type BalanceSheetRow struct {
	Label       string  `json:"label"`
	Cash        float64 `json:"cash"`
	Investments float64 `json:"investments"`
	Bonds       float64 `json:"bonds"`
	TotalAssets float64 `json:"totalAssets"`
	Liabilities float64 `json:"liabilities"`
	Equity      float64 `json:"equity"`
}

// IncomeRow is one period of the income statement.
type IncomeRow struct {
	Label        string  `json:"label"`
	Dividends    float64 `json:"dividends"`
	RealizedGain float64 `json:"realizedGain"`
	Revenue      float64 `json:"revenue"`
	Expenses     float64 `json:"expenses"`
	NetIncome    float64 `json:"netIncome"`
}

// CashFlowRow is one period of the cash-flow statement.
type CashFlowRow struct {
	Label     string  `json:"label"`
	Operating float64 `json:"operating"`
	Investing float64 `json:"investing"`
	Net       float64 `json:"net"`
}

// Service builds statement rows. Like the valuation service it is pure:
// every call replays the supplied records, and rows are rounded to 2
// decimals only at the point of output, never before aggregation.
type Service struct {
	quotes    quote.Source
	converter *currency.Converter
	method    ledger.Method
}

// NewService creates a report Service. Both dependencies are required.
func NewService(quotes quote.Source, converter *currency.Converter) *Service {
	if quotes == nil {
		panic("report.NewService: quotes is nil")
	}
	if converter == nil {
		panic("report.NewService: converter is nil")
	}
	return &Service{quotes: quotes, converter: converter, method: ledger.FIFO}
}

// WealthEvolution walks month by month from the owner's earliest trade
// through today, valuing the open position at each month boundary.
func (s *Service) WealthEvolution(records domain.Records, owner, reportingCurrency string, today time.Time) ([]WealthRow, error) {
	trades := records.OwnerTrades(owner)
	months := period.MonthlyTimeline(earliestTradeDate(trades), today)

	var rows []WealthRow
	for _, month := range months {
		var assetValue, costBasis decimal.Decimal
		for _, inst := range records.Instruments {
			pos := ledger.PositionBefore(records.InstrumentTrades(owner, inst.ID), month.Next, s.method)
			if pos.Quantity.IsZero() {
				continue
			}
			price, err := s.quotes.Price(inst.Symbol)
			if err != nil {
				return nil, fmt.Errorf("quoting %s: %w", inst.Symbol, err)
			}
			assetValue = assetValue.Add(s.converter.Convert(pos.Quantity.Mul(price), inst.Currency, reportingCurrency))
			costBasis = costBasis.Add(s.converter.Convert(pos.Quantity.Mul(pos.AvgCost), inst.Currency, reportingCurrency))
		}
		rows = append(rows, WealthRow{
			Month:      month.Label,
			AssetValue: domain.Round2(assetValue),
			CostBasis:  domain.Round2(costBasis),
			ProfitLoss: domain.Round2(assetValue.Sub(costBasis)),
		})
	}
	return rows, nil
}

// WealthOverview produces one row per period, valuing the position open at
// the period end. Unlike WealthEvolution it buckets by the caller's period
// set, so yearly and quarterly views share the same rows.
func (s *Service) WealthOverview(records domain.Records, owner, reportingCurrency string, periods []period.Period) ([]OverviewRow, error) {
	var rows []OverviewRow
	for _, p := range periods {
		var assetValue, costBasis decimal.Decimal
		for _, inst := range records.Instruments {
			pos := ledger.PositionThrough(records.InstrumentTrades(owner, inst.ID), p.End, s.method)
			if pos.Quantity.IsZero() {
				continue
			}
			price, err := s.quotes.Price(inst.Symbol)
			if err != nil {
				return nil, fmt.Errorf("quoting %s: %w", inst.Symbol, err)
			}
			assetValue = assetValue.Add(s.converter.Convert(pos.Quantity.Mul(price), inst.Currency, reportingCurrency))
			costBasis = costBasis.Add(s.converter.Convert(pos.Quantity.Mul(pos.AvgCost), inst.Currency, reportingCurrency))
		}
		rows = append(rows, OverviewRow{
			Label:      p.Label,
			AssetValue: domain.Round2(assetValue),
			CostBasis:  domain.Round2(costBasis),
			ProfitLoss: domain.Round2(assetValue.Sub(costBasis)),
		})
	}
	return rows, nil
}

// BalanceSheet produces one row per period: cash balances as of the period
// end, investments at their live quote, and bonds purchased by then at face
// value, all in the reporting currency.
func (s *Service) BalanceSheet(records domain.Records, owner, reportingCurrency string, periods []period.Period) ([]BalanceSheetRow, error) {
	var rows []BalanceSheetRow
	for _, p := range periods {
		var cash decimal.Decimal
		for _, account := range records.OwnerAccounts(owner) {
			balance := ledger.BalanceAsOf(account.ID, records.CashEvents, p.End)
			cash = cash.Add(s.converter.Convert(balance, account.Currency, reportingCurrency))
		}

		var investments decimal.Decimal
		for _, inst := range records.Instruments {
			pos := ledger.PositionThrough(records.InstrumentTrades(owner, inst.ID), p.End, s.method)
			if pos.Quantity.IsZero() {
				continue
			}
			price, err := s.quotes.Price(inst.Symbol)
			if err != nil {
				return nil, fmt.Errorf("quoting %s: %w", inst.Symbol, err)
			}
			investments = investments.Add(s.converter.Convert(pos.Quantity.Mul(price), inst.Currency, reportingCurrency))
		}

		var bonds decimal.Decimal
		for _, bond := range records.OwnerBonds(owner) {
			if bond.PurchaseDate.After(p.End) {
				continue
			}
			bonds = bonds.Add(s.converter.Convert(bond.TotalValue(), bondCurrency, reportingCurrency))
		}

		total := cash.Add(investments).Add(bonds)
		rows = append(rows, BalanceSheetRow{
			Label:       p.Label,
			Cash:        domain.Round2(cash),
			Investments: domain.Round2(investments),
			Bonds:       domain.Round2(bonds),
			TotalAssets: domain.Round2(total),
			Liabilities: 0,
			Equity:      domain.Round2(total),
		})
	}
	return rows, nil
}

// IncomeStatement produces one row per period: dividends dated inside the
// period plus realized gains of in-period sells. Expenses are not tracked.
func (s *Service) IncomeStatement(records domain.Records, owner, reportingCurrency string, periods []period.Period) []IncomeRow {
	dividends := records.OwnerDividends(owner)

	var rows []IncomeRow
	for _, p := range periods {
		var divTotal decimal.Decimal
		for _, d := range dividends {
			if p.Contains(d.Date) {
				divTotal = divTotal.Add(d.Amount)
			}
		}

		var realized decimal.Decimal
		for _, inst := range records.Instruments {
			gain := ledger.RealizedGain(records.InstrumentTrades(owner, inst.ID), p.Start, p.End)
			realized = realized.Add(s.converter.Convert(gain, inst.Currency, reportingCurrency))
		}

		revenue := divTotal.Add(realized)
		rows = append(rows, IncomeRow{
			Label:        p.Label,
			Dividends:    domain.Round2(divTotal),
			RealizedGain: domain.Round2(realized),
			Revenue:      domain.Round2(revenue),
			Expenses:     0,
			NetIncome:    domain.Round2(revenue),
		})
	}
	return rows
}

// CashFlow produces one row per period, bucketing the owner's cash events
// into operating and investing flows.
func (s *Service) CashFlow(records domain.Records, owner string, periods []period.Period) []CashFlowRow {
	events := ownerCashEvents(records, owner)

	var rows []CashFlowRow
	for _, p := range periods {
		operating, investing := ledger.CashFlow(events, p.Start, p.End)
		rows = append(rows, CashFlowRow{
			Label:     p.Label,
			Operating: domain.Round2(operating),
			Investing: domain.Round2(investing),
			Net:       domain.Round2(operating.Add(investing)),
		})
	}
	return rows
}

// ownerCashEvents keeps the events touching any of the owner's accounts.
func ownerCashEvents(records domain.Records, owner string) []domain.CashEvent {
	ownerAccounts := lo.SliceToMap(records.OwnerAccounts(owner), func(a domain.CashAccount) (int64, struct{}) {
		return a.ID, struct{}{}
	})
	return lo.Filter(records.CashEvents, func(ev domain.CashEvent, _ int) bool {
		if ev.FromAccount != nil {
			if _, ok := ownerAccounts[*ev.FromAccount]; ok {
				return true
			}
		}
		if ev.ToAccount != nil {
			if _, ok := ownerAccounts[*ev.ToAccount]; ok {
				return true
			}
		}
		return false
	})
}

// earliestTradeDate returns the zero time when there are no trades.
func earliestTradeDate(trades []domain.TradeEvent) time.Time {
	var earliest time.Time
	for _, t := range trades {
		if earliest.IsZero() || t.Date.Before(earliest) {
			earliest = t.Date
		}
	}
	return earliest
}
