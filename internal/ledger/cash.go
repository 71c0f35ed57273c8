package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finfolio/folio/internal/domain"
)

// BalanceAsOf folds every cash event dated on or before the cutoff into the
// balance of one account. The fold is the authoritative balance; any stored
// balance field is a cache to be invalidated, never read.
//
// Conversion legs are mutually exclusive per event: if an event erroneously
// names the same account as both source and destination, only the source leg
// applies, guarding against double counting.
func BalanceAsOf(accountID int64, events []domain.CashEvent, cutoff time.Time) decimal.Decimal {
	var balance decimal.Decimal
	for _, ev := range sortedCashByDate(events) {
		if ev.Date.After(cutoff) {
			continue
		}
		switch ev.Kind {
		case domain.CashDeposit:
			if ev.ToAccount != nil && *ev.ToAccount == accountID {
				balance = balance.Add(ev.Amount)
			}
		case domain.CashWithdraw:
			if ev.FromAccount != nil && *ev.FromAccount == accountID {
				balance = balance.Sub(ev.Amount)
			}
		case domain.CashInvestmentBuy:
			if ev.FromAccount != nil && *ev.FromAccount == accountID {
				balance = balance.Sub(ev.Amount)
			}
		case domain.CashInvestmentSell:
			if ev.ToAccount != nil && *ev.ToAccount == accountID {
				balance = balance.Add(ev.Amount)
			}
		case domain.CashConversion:
			if ev.FromAccount != nil && *ev.FromAccount == accountID {
				balance = balance.Sub(ev.Amount)
			} else if ev.ToAccount != nil && *ev.ToAccount == accountID && ev.ConversionRate != nil {
				balance = balance.Add(ev.Amount.Mul(*ev.ConversionRate))
			}
		}
	}
	return balance
}

// CashFlow buckets the cash events dated within [start, end] into operating
// (deposits and withdrawals) and investing (investment buys and sells) flows.
func CashFlow(events []domain.CashEvent, start, end time.Time) (operating, investing decimal.Decimal) {
	for _, ev := range events {
		if ev.Date.Before(start) || ev.Date.After(end) {
			continue
		}
		switch ev.Kind {
		case domain.CashDeposit:
			operating = operating.Add(ev.Amount)
		case domain.CashWithdraw:
			operating = operating.Sub(ev.Amount)
		case domain.CashInvestmentBuy:
			investing = investing.Sub(ev.Amount)
		case domain.CashInvestmentSell:
			investing = investing.Add(ev.Amount)
		}
	}
	return operating, investing
}

func sortedCashByDate(events []domain.CashEvent) []domain.CashEvent {
	sorted := make([]domain.CashEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
