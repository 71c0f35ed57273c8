package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finfolio/folio/internal/domain"
)

func cashEvent(date time.Time, kind domain.CashEventKind, from, to *int64, amount float64) domain.CashEvent {
	return domain.CashEvent{
		Date:        date,
		Kind:        kind,
		FromAccount: from,
		ToAccount:   to,
		Amount:      decimal.NewFromFloat(amount),
	}
}

func acc(id int64) *int64 { return &id }

func TestBalanceAsOfDepositWithdraw(t *testing.T) {
	day1 := domain.Day(2024, 1, 1)
	day2 := domain.Day(2024, 1, 2)
	events := []domain.CashEvent{
		cashEvent(day1, domain.CashDeposit, nil, acc(1), 500),
		cashEvent(day2, domain.CashWithdraw, acc(1), nil, 300),
	}

	if got := BalanceAsOf(1, events, day1); !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("balance as of day1 = %s, want 500", got)
	}
	if got := BalanceAsOf(1, events, day2); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("balance as of day2 = %s, want 200", got)
	}
}

func TestBalanceAsOfInvestmentFlows(t *testing.T) {
	events := []domain.CashEvent{
		cashEvent(domain.Day(2024, 1, 1), domain.CashDeposit, nil, acc(1), 1000),
		cashEvent(domain.Day(2024, 2, 1), domain.CashInvestmentBuy, acc(1), nil, 400),
		cashEvent(domain.Day(2024, 3, 1), domain.CashInvestmentSell, nil, acc(1), 150),
	}
	got := BalanceAsOf(1, events, domain.Day(2024, 12, 31))
	if !got.Equal(decimal.NewFromInt(750)) {
		t.Errorf("balance = %s, want 750", got)
	}
}

func TestBalanceAsOfConversionLegs(t *testing.T) {
	rate := decimal.NewFromFloat(34.0)
	conv := domain.CashEvent{
		Date:           domain.Day(2024, 2, 1),
		Kind:           domain.CashConversion,
		FromAccount:    acc(1),
		ToAccount:      acc(2),
		Amount:         decimal.NewFromInt(100),
		ConversionRate: &rate,
	}
	events := []domain.CashEvent{
		cashEvent(domain.Day(2024, 1, 1), domain.CashDeposit, nil, acc(1), 500),
		conv,
	}

	cutoff := domain.Day(2024, 12, 31)
	if got := BalanceAsOf(1, events, cutoff); !got.Equal(decimal.NewFromInt(400)) {
		t.Errorf("source balance = %s, want 400", got)
	}
	if got := BalanceAsOf(2, events, cutoff); !got.Equal(decimal.NewFromInt(3400)) {
		t.Errorf("destination balance = %s, want 3400", got)
	}
}

func TestBalanceAsOfConversionSameAccountNoDoubleCount(t *testing.T) {
	rate := decimal.NewFromFloat(2.0)
	conv := domain.CashEvent{
		Date:           domain.Day(2024, 2, 1),
		Kind:           domain.CashConversion,
		FromAccount:    acc(1),
		ToAccount:      acc(1), // erroneous self-conversion
		Amount:         decimal.NewFromInt(100),
		ConversionRate: &rate,
	}
	events := []domain.CashEvent{
		cashEvent(domain.Day(2024, 1, 1), domain.CashDeposit, nil, acc(1), 500),
		conv,
	}

	// Only the source leg applies.
	got := BalanceAsOf(1, events, domain.Day(2024, 12, 31))
	if !got.Equal(decimal.NewFromInt(400)) {
		t.Errorf("balance = %s, want 400 (source leg only)", got)
	}
}

func TestBalanceAsOfNoEvents(t *testing.T) {
	if got := BalanceAsOf(1, nil, domain.Day(2024, 1, 1)); !got.IsZero() {
		t.Errorf("balance with no events = %s, want 0", got)
	}
}

func TestBalanceAsOfLaterEventsDoNotChangeEarlierCutoff(t *testing.T) {
	day1 := domain.Day(2024, 1, 1)
	events := []domain.CashEvent{
		cashEvent(day1, domain.CashDeposit, nil, acc(1), 500),
	}
	before := BalanceAsOf(1, events, day1)

	events = append(events,
		cashEvent(domain.Day(2024, 6, 1), domain.CashWithdraw, acc(1), nil, 499),
		cashEvent(domain.Day(2024, 7, 1), domain.CashDeposit, nil, acc(1), 42),
	)
	after := BalanceAsOf(1, events, day1)

	if !before.Equal(after) {
		t.Errorf("cutoff result changed from %s to %s after appending later events", before, after)
	}
}

func TestCashFlowBuckets(t *testing.T) {
	events := []domain.CashEvent{
		cashEvent(domain.Day(2024, 1, 10), domain.CashDeposit, nil, acc(1), 1000),
		cashEvent(domain.Day(2024, 2, 10), domain.CashWithdraw, acc(1), nil, 200),
		cashEvent(domain.Day(2024, 3, 10), domain.CashInvestmentBuy, acc(1), nil, 300),
		cashEvent(domain.Day(2024, 4, 10), domain.CashInvestmentSell, nil, acc(1), 100),
		cashEvent(domain.Day(2025, 1, 10), domain.CashDeposit, nil, acc(1), 9999), // outside window
	}

	operating, investing := CashFlow(events, domain.Day(2024, 1, 1), domain.Day(2024, 12, 31))
	if !operating.Equal(decimal.NewFromInt(800)) {
		t.Errorf("operating = %s, want 800", operating)
	}
	if !investing.Equal(decimal.NewFromInt(-200)) {
		t.Errorf("investing = %s, want -200", investing)
	}
}
