package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finfolio/folio/internal/domain"
)

func buy(date time.Time, qty, price float64) domain.TradeEvent {
	return domain.TradeEvent{
		Owner:    "alice",
		Date:     date,
		Side:     domain.SideBuy,
		Price:    decimal.NewFromFloat(price),
		Quantity: decimal.NewFromFloat(qty),
		Currency: "USD",
	}
}

func sell(date time.Time, qty, price float64) domain.TradeEvent {
	ev := buy(date, qty, price)
	ev.Side = domain.SideSell
	return ev
}

func TestComputePositionEmpty(t *testing.T) {
	p := ComputePosition(nil, FIFO)
	if !p.Quantity.IsZero() || !p.AvgCost.IsZero() {
		t.Errorf("empty position = %s @ %s, want 0 @ 0", p.Quantity, p.AvgCost)
	}
}

func TestComputePositionBuysOnly(t *testing.T) {
	events := []domain.TradeEvent{
		buy(domain.Day(2022, 1, 10), 10, 150),
		buy(domain.Day(2022, 2, 15), 5, 155),
	}
	p := ComputePosition(events, FIFO)
	if !p.Quantity.Equal(decimal.NewFromInt(15)) {
		t.Errorf("quantity = %s, want 15", p.Quantity)
	}
	// weighted mean: (10*150 + 5*155) / 15
	want := decimal.NewFromInt(10*150 + 5*155).Div(decimal.NewFromInt(15))
	if !p.AvgCost.Equal(want) {
		t.Errorf("avg cost = %s, want %s", p.AvgCost, want)
	}
}

func TestComputePositionFIFOPartialConsumption(t *testing.T) {
	events := []domain.TradeEvent{
		buy(domain.Day(2022, 1, 1), 10, 100),
		buy(domain.Day(2022, 2, 1), 5, 110),
		sell(domain.Day(2022, 3, 1), 8, 120),
	}
	p := ComputePosition(events, FIFO)

	// Remaining lots: (2@100), (5@110).
	if !p.Quantity.Equal(decimal.NewFromInt(7)) {
		t.Errorf("quantity = %s, want 7", p.Quantity)
	}
	want := decimal.NewFromInt(2*100 + 5*110).Div(decimal.NewFromInt(7))
	if !p.AvgCost.Equal(want) {
		t.Errorf("avg cost = %s, want %s", p.AvgCost, want)
	}
}

func TestComputePositionSellAll(t *testing.T) {
	events := []domain.TradeEvent{
		buy(domain.Day(2022, 1, 1), 10, 100),
		sell(domain.Day(2022, 2, 1), 10, 120),
	}
	p := ComputePosition(events, FIFO)
	if !p.Quantity.IsZero() || !p.AvgCost.IsZero() {
		t.Errorf("sold-out position = %s @ %s, want 0 @ 0", p.Quantity, p.AvgCost)
	}
}

func TestComputePositionOverSellCapsAtZero(t *testing.T) {
	events := []domain.TradeEvent{
		buy(domain.Day(2022, 1, 1), 10, 100),
		sell(domain.Day(2022, 2, 1), 25, 120),
		buy(domain.Day(2022, 3, 1), 4, 90),
	}
	p := ComputePosition(events, FIFO)

	// The excess 15 units are discarded; the later buy opens fresh lots.
	if !p.Quantity.Equal(decimal.NewFromInt(4)) {
		t.Errorf("quantity = %s, want 4", p.Quantity)
	}
	if !p.AvgCost.Equal(decimal.NewFromInt(90)) {
		t.Errorf("avg cost = %s, want 90", p.AvgCost)
	}
}

func TestComputePositionSellWithNoPriorBuy(t *testing.T) {
	events := []domain.TradeEvent{
		sell(domain.Day(2022, 1, 1), 5, 120),
	}
	p := ComputePosition(events, FIFO)
	if !p.Quantity.IsZero() || !p.AvgCost.IsZero() {
		t.Errorf("position = %s @ %s, want 0 @ 0", p.Quantity, p.AvgCost)
	}
}

func TestComputePositionSortsUnorderedEvents(t *testing.T) {
	events := []domain.TradeEvent{
		sell(domain.Day(2022, 3, 1), 8, 120),
		buy(domain.Day(2022, 2, 1), 5, 110),
		buy(domain.Day(2022, 1, 1), 10, 100),
	}
	p := ComputePosition(events, FIFO)
	if !p.Quantity.Equal(decimal.NewFromInt(7)) {
		t.Errorf("quantity = %s, want 7", p.Quantity)
	}
}

func TestComputePositionAverageCost(t *testing.T) {
	events := []domain.TradeEvent{
		buy(domain.Day(2022, 1, 1), 10, 100),
		buy(domain.Day(2022, 2, 1), 10, 200),
		sell(domain.Day(2022, 3, 1), 5, 250),
	}
	p := ComputePosition(events, AverageCost)

	// Average moves on buys only: (10*100 + 10*200)/20 = 150, sell keeps it.
	if !p.Quantity.Equal(decimal.NewFromInt(15)) {
		t.Errorf("quantity = %s, want 15", p.Quantity)
	}
	if !p.AvgCost.Equal(decimal.NewFromInt(150)) {
		t.Errorf("avg cost = %s, want 150", p.AvgCost)
	}
}

func TestComputePositionAverageCostOverSellZeroes(t *testing.T) {
	events := []domain.TradeEvent{
		buy(domain.Day(2022, 1, 1), 10, 100),
		sell(domain.Day(2022, 2, 1), 12, 120),
	}
	p := ComputePosition(events, AverageCost)
	if !p.Quantity.IsZero() || !p.AvgCost.IsZero() {
		t.Errorf("position = %s @ %s, want 0 @ 0", p.Quantity, p.AvgCost)
	}
}

func TestPositionCutoffs(t *testing.T) {
	events := []domain.TradeEvent{
		buy(domain.Day(2022, 1, 10), 10, 150),
		buy(domain.Day(2022, 2, 15), 5, 155),
		sell(domain.Day(2022, 3, 20), 8, 160),
	}

	// Exclusive bound: events strictly before Feb 15.
	p := PositionBefore(events, domain.Day(2022, 2, 15), FIFO)
	if !p.Quantity.Equal(decimal.NewFromInt(10)) {
		t.Errorf("PositionBefore quantity = %s, want 10", p.Quantity)
	}

	// Inclusive bound: events through Feb 15.
	p = PositionThrough(events, domain.Day(2022, 2, 15), FIFO)
	if !p.Quantity.Equal(decimal.NewFromInt(15)) {
		t.Errorf("PositionThrough quantity = %s, want 15", p.Quantity)
	}
}

func TestEndToEndScenario(t *testing.T) {
	events := []domain.TradeEvent{
		buy(domain.Day(2022, 1, 10), 10, 150),
		buy(domain.Day(2022, 2, 15), 5, 155),
		sell(domain.Day(2022, 3, 20), 8, 160),
	}

	p := ComputePosition(events, FIFO)
	if !p.Quantity.Equal(decimal.NewFromInt(7)) {
		t.Errorf("quantity = %s, want 7", p.Quantity)
	}
	wantAvg := decimal.NewFromInt(2*150 + 5*155).Div(decimal.NewFromInt(7))
	if !p.AvgCost.Equal(wantAvg) {
		t.Errorf("avg cost = %s, want %s (~152.14)", p.AvgCost, wantAvg)
	}

	gain := RealizedGain(events, domain.Day(2022, 1, 1), domain.Day(2022, 12, 31))
	if !gain.Equal(decimal.NewFromInt(80)) {
		t.Errorf("realized gain = %s, want 80", gain)
	}
}
