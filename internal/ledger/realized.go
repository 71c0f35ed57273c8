package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finfolio/folio/internal/domain"
)

// RealizedGain replays the FIFO lot queue and accumulates the gain of every
// sell whose date falls inside [start, end] (boundaries included). Sells
// outside the window still consume lots without contributing to the
// accumulator, so in-window sells always match against the correct
// remaining lots.
func RealizedGain(events []domain.TradeEvent, start, end time.Time) decimal.Decimal {
	var gain decimal.Decimal

	var open []lot
	for _, ev := range sortedByDate(events) {
		switch ev.Side {
		case domain.SideBuy:
			open = append(open, lot{quantity: ev.Quantity, price: ev.Price})
		case domain.SideSell:
			inWindow := !ev.Date.Before(start) && !ev.Date.After(end)
			remaining := ev.Quantity
			for len(open) > 0 && remaining.IsPositive() {
				front := &open[0]
				consumed := decimal.Min(front.quantity, remaining)
				if inWindow {
					gain = gain.Add(ev.Price.Sub(front.price).Mul(consumed))
				}
				remaining = remaining.Sub(consumed)
				if front.quantity.GreaterThan(consumed) {
					front.quantity = front.quantity.Sub(consumed)
				} else {
					open = open[1:]
				}
			}
		}
	}
	return gain
}
