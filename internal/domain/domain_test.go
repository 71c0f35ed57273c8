package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseTradeSideCaseInsensitive(t *testing.T) {
	for _, s := range []string{"Buy", "buy", "BUY"} {
		side, err := ParseTradeSide(s)
		if err != nil {
			t.Fatalf("ParseTradeSide(%q) error: %v", s, err)
		}
		if side != SideBuy {
			t.Errorf("ParseTradeSide(%q) = %v, want Buy", s, side)
		}
	}

	if _, err := ParseTradeSide("short"); err == nil {
		t.Error("ParseTradeSide(short) expected error")
	}
}

func TestParseAssetClass(t *testing.T) {
	if _, err := ParseAssetClass("Crypto"); err != nil {
		t.Errorf("ParseAssetClass(Crypto) error: %v", err)
	}
	if _, err := ParseAssetClass("Options"); err == nil {
		t.Error("ParseAssetClass(Options) expected error")
	}
}

func TestTradeEventValidateRejectsNegatives(t *testing.T) {
	ev := TradeEvent{
		Owner:    "alice",
		Date:     Day(2024, 1, 1),
		Side:     SideBuy,
		Price:    decimal.NewFromInt(-1),
		Quantity: decimal.NewFromInt(10),
		Currency: "USD",
	}
	if err := ev.Validate(); err == nil {
		t.Error("expected negative price to be rejected")
	}

	ev.Price = decimal.NewFromInt(1)
	ev.Quantity = decimal.NewFromInt(-10)
	if err := ev.Validate(); err == nil {
		t.Error("expected negative quantity to be rejected")
	}

	ev.Quantity = decimal.NewFromInt(10)
	if err := ev.Validate(); err != nil {
		t.Errorf("valid event rejected: %v", err)
	}
}

func TestCashEventValidateLegs(t *testing.T) {
	acc := int64(1)
	rate := decimal.NewFromFloat(34.0)

	cases := []struct {
		name    string
		ev      CashEvent
		wantErr bool
	}{
		{"deposit with destination", CashEvent{Date: Day(2024, 1, 1), Kind: CashDeposit, ToAccount: &acc, Amount: decimal.NewFromInt(100)}, false},
		{"deposit without destination", CashEvent{Date: Day(2024, 1, 1), Kind: CashDeposit, Amount: decimal.NewFromInt(100)}, true},
		{"withdraw without source", CashEvent{Date: Day(2024, 1, 1), Kind: CashWithdraw, Amount: decimal.NewFromInt(100)}, true},
		{"investment_buy with source", CashEvent{Date: Day(2024, 1, 1), Kind: CashInvestmentBuy, FromAccount: &acc, Amount: decimal.NewFromInt(100)}, false},
		{"investment_sell without destination", CashEvent{Date: Day(2024, 1, 1), Kind: CashInvestmentSell, Amount: decimal.NewFromInt(100)}, true},
		{"conversion without rate", CashEvent{Date: Day(2024, 1, 1), Kind: CashConversion, FromAccount: &acc, ToAccount: &acc, Amount: decimal.NewFromInt(100)}, true},
		{"conversion complete", CashEvent{Date: Day(2024, 1, 1), Kind: CashConversion, FromAccount: &acc, ToAccount: &acc, Amount: decimal.NewFromInt(100), ConversionRate: &rate}, false},
		{"negative amount", CashEvent{Date: Day(2024, 1, 1), Kind: CashDeposit, ToAccount: &acc, Amount: decimal.NewFromInt(-5)}, true},
		{"unknown kind", CashEvent{Date: Day(2024, 1, 1), Kind: "transfer", ToAccount: &acc, Amount: decimal.NewFromInt(5)}, true},
	}
	for _, tc := range cases {
		err := tc.ev.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestBondTotalValue(t *testing.T) {
	b := Bond{
		Name:      "T-2030",
		FaceValue: decimal.NewFromInt(1000),
		Quantity:  decimal.NewFromInt(5),
	}
	if got := b.TotalValue(); !got.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("TotalValue = %s, want 5000", got)
	}
}

func TestBondYieldToMaturity(t *testing.T) {
	asOf := Day(2024, 1, 1)
	b := Bond{
		Name:         "T-2026",
		FaceValue:    decimal.NewFromInt(1000),
		CouponRate:   decimal.NewFromInt(5),
		MaturityDate: Day(2026, 1, 1),
		PurchaseDate: Day(2023, 1, 1),
		Quantity:     decimal.NewFromInt(1),
		CostBasis:    decimal.NewFromInt(950),
	}

	// coupon 50, amortized discount 50/years, average price 975
	years := b.MaturityDate.Sub(asOf).Hours() / 24 / 365.25
	want := (50 + 50/years) / 975 * 100
	got := b.YieldToMaturity(asOf)
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("YieldToMaturity = %v, want %v", got, want)
	}

	// At or past maturity the yield is zero.
	if got := b.YieldToMaturity(Day(2026, 1, 1)); got != 0 {
		t.Errorf("YieldToMaturity at maturity = %v, want 0", got)
	}
}

func TestDayOfNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	ts := time.Date(2024, 6, 1, 23, 30, 0, 0, loc) // 16:30 UTC
	got := DayOf(ts)
	if got != Day(2024, 6, 1) {
		t.Errorf("DayOf = %v, want 2024-06-01 UTC", got)
	}
}

func TestRound2(t *testing.T) {
	d := decimal.NewFromFloat(152.142857)
	if got := Round2(d); got != 152.14 {
		t.Errorf("Round2 = %v, want 152.14", got)
	}
}
