// Package ledger derives portfolio state by replaying event logs. Every
// function is a pure fold over an in-memory snapshot: no stored running
// totals, no caches, so results are always consistent with the events even
// after upstream edits.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finfolio/folio/internal/domain"
)

// Method selects the cost-basis policy used when replaying trades.
type Method int

const (
	// FIFO keeps a queue of open lots; sells consume the oldest lots first.
	FIFO Method = iota
	// AverageCost keeps a single weighted average; a sell leaves the average
	// unchanged unless it closes the position.
	AverageCost
)

// Position is the open state of one (instrument, owner) pair.
type Position struct {
	Quantity decimal.Decimal
	AvgCost  decimal.Decimal
}

// lot is a single open purchase, consumed FIFO by later sells.
type lot struct {
	quantity decimal.Decimal
	price    decimal.Decimal
}

// sortedByDate returns a copy of the events in chronological order.
// Sorting is stable so same-day events keep their arrival order.
func sortedByDate(events []domain.TradeEvent) []domain.TradeEvent {
	sorted := make([]domain.TradeEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// replayLots folds buy and sell events into the remaining open lots.
// A sell larger than the open quantity caps at the available lots; the
// excess is discarded and the position floors at zero.
func replayLots(events []domain.TradeEvent) []lot {
	var open []lot
	for _, ev := range events {
		switch ev.Side {
		case domain.SideBuy:
			open = append(open, lot{quantity: ev.Quantity, price: ev.Price})
		case domain.SideSell:
			remaining := ev.Quantity
			for len(open) > 0 && remaining.IsPositive() {
				front := &open[0]
				if front.quantity.GreaterThan(remaining) {
					front.quantity = front.quantity.Sub(remaining)
					remaining = decimal.Zero
					break
				}
				remaining = remaining.Sub(front.quantity)
				open = open[1:]
			}
		}
	}
	return open
}

// positionFromLots sums open lots into quantity and cost-weighted average.
func positionFromLots(open []lot) Position {
	var quantity, cost decimal.Decimal
	for _, l := range open {
		quantity = quantity.Add(l.quantity)
		cost = cost.Add(l.quantity.Mul(l.price))
	}
	return Position{Quantity: quantity, AvgCost: domain.SafeDiv(cost, quantity)}
}

// averagePosition replays with the weighted-average policy: buys move the
// average, sells only reduce quantity. An over-sell zeroes the position.
func averagePosition(events []domain.TradeEvent) Position {
	var shares, avg decimal.Decimal
	for _, ev := range events {
		switch ev.Side {
		case domain.SideBuy:
			total := shares.Add(ev.Quantity)
			if total.IsZero() {
				continue
			}
			avg = avg.Mul(shares).Add(ev.Price.Mul(ev.Quantity)).Div(total)
			shares = total
		case domain.SideSell:
			if shares.GreaterThanOrEqual(ev.Quantity) {
				shares = shares.Sub(ev.Quantity)
			} else {
				shares = decimal.Zero
			}
			if shares.IsZero() {
				avg = decimal.Zero
			}
		}
	}
	return Position{Quantity: shares, AvgCost: avg}
}

// ComputePosition replays all events for one (instrument, owner) pair and
// returns the open position under the given cost-basis method.
func ComputePosition(events []domain.TradeEvent, method Method) Position {
	sorted := sortedByDate(events)
	if method == AverageCost {
		return averagePosition(sorted)
	}
	return positionFromLots(replayLots(sorted))
}

// PositionBefore replays only events dated strictly before the cutoff.
// Used for month-boundary snapshots where the cutoff is the first day of
// the next month.
func PositionBefore(events []domain.TradeEvent, cutoff time.Time, method Method) Position {
	return ComputePosition(eventsBefore(events, cutoff), method)
}

// PositionThrough replays only events dated on or before the cutoff.
func PositionThrough(events []domain.TradeEvent, cutoff time.Time, method Method) Position {
	return ComputePosition(eventsThrough(events, cutoff), method)
}

func eventsBefore(events []domain.TradeEvent, cutoff time.Time) []domain.TradeEvent {
	var out []domain.TradeEvent
	for _, ev := range events {
		if ev.Date.Before(cutoff) {
			out = append(out, ev)
		}
	}
	return out
}

func eventsThrough(events []domain.TradeEvent, cutoff time.Time) []domain.TradeEvent {
	var out []domain.TradeEvent
	for _, ev := range events {
		if !ev.Date.After(cutoff) {
			out = append(out, ev)
		}
	}
	return out
}
