package domain

import "github.com/samber/lo"

// Records is a consistent, point-in-time snapshot of the raw entity
// collections the engine consumes. The engine only ever reads it; derived
// state is recomputed from scratch on every call.
type Records struct {
	Instruments []Instrument  `json:"instruments"`
	Trades      []TradeEvent  `json:"trades"`
	Accounts    []CashAccount `json:"accounts"`
	CashEvents  []CashEvent   `json:"cashEvents"`
	Bonds       []Bond        `json:"bonds"`
	Dividends   []Dividend    `json:"dividends"`
}

// OwnerTrades returns the trade events recorded by the given owner.
func (r Records) OwnerTrades(owner string) []TradeEvent {
	return lo.Filter(r.Trades, func(t TradeEvent, _ int) bool { return t.Owner == owner })
}

// InstrumentTrades returns the owner's trade events linked to one instrument.
func (r Records) InstrumentTrades(owner string, instrumentID int64) []TradeEvent {
	return lo.Filter(r.Trades, func(t TradeEvent, _ int) bool {
		return t.Owner == owner && t.ForInstrument(instrumentID)
	})
}

// OwnerAccounts returns the cash accounts belonging to the given owner.
func (r Records) OwnerAccounts(owner string) []CashAccount {
	return lo.Filter(r.Accounts, func(a CashAccount, _ int) bool { return a.Owner == owner })
}

// OwnerBonds returns the bonds belonging to the given owner.
func (r Records) OwnerBonds(owner string) []Bond {
	return lo.Filter(r.Bonds, func(b Bond, _ int) bool { return b.Owner == owner })
}

// OwnerDividends returns the dividends belonging to the given owner.
func (r Records) OwnerDividends(owner string) []Dividend {
	return lo.Filter(r.Dividends, func(d Dividend, _ int) bool { return d.Owner == owner })
}
