package export

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/finfolio/folio/internal/currency"
	"github.com/finfolio/folio/internal/domain"
	"github.com/finfolio/folio/internal/quote"
	"github.com/finfolio/folio/internal/report"
)

type mockRecordSource struct {
	records domain.Records
	err     error
}

func (m *mockRecordSource) Records(_ context.Context) (domain.Records, error) {
	return m.records, m.err
}

type captureWriter struct {
	st  Statements
	err error
}

func (w *captureWriter) Write(_ context.Context, st Statements) error {
	w.st = st
	return w.err
}

func testRecords() domain.Records {
	aapl := int64(1)
	return domain.Records{
		Instruments: []domain.Instrument{
			{ID: aapl, Symbol: "AAPL", AssetClass: domain.AssetClassStock, Currency: "USD"},
		},
		Trades: []domain.TradeEvent{
			{ID: 1, InstrumentID: &aapl, Owner: "alice", Date: domain.Day(2023, time.March, 10),
				Side: domain.SideBuy, Price: decimal.NewFromInt(150), Quantity: decimal.NewFromInt(10), Currency: "USD"},
		},
	}
}

func newTestService(records domain.Records, writer SheetWriter) *Service {
	quotes := quote.Func(func(string) (decimal.Decimal, error) {
		return decimal.NewFromInt(170), nil
	})
	reports := report.NewService(quotes, currency.NewDefaultConverter())
	return NewService(&mockRecordSource{records: records}, reports, writer, "USD")
}

func TestExportStatements(t *testing.T) {
	writer := &captureWriter{}
	svc := newTestService(testRecords(), writer)

	today := domain.Day(2024, time.June, 1)
	if err := svc.ExportStatements(context.Background(), "alice", today); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := writer.st
	if st.Owner != "alice" {
		t.Errorf("Owner = %q, want %q", st.Owner, "alice")
	}
	if len(st.Wealth) == 0 {
		t.Error("expected wealth rows")
	}
	if len(st.BalanceSheet) != 2 {
		t.Fatalf("balance rows = %d, want 2 (2023 and 2024 YTD)", len(st.BalanceSheet))
	}
	if st.BalanceSheet[0].Label != "2023" {
		t.Errorf("first balance label = %q, want %q", st.BalanceSheet[0].Label, "2023")
	}
	if st.BalanceSheet[1].Label != "2024 (YTD)" {
		t.Errorf("second balance label = %q, want %q", st.BalanceSheet[1].Label, "2024 (YTD)")
	}
	if len(st.Income) != 2 || len(st.CashFlow) != 2 {
		t.Errorf("income rows = %d, cash flow rows = %d, want 2 each", len(st.Income), len(st.CashFlow))
	}
}

func TestExportStatementsNoTrades(t *testing.T) {
	writer := &captureWriter{}
	svc := newTestService(domain.Records{}, writer)

	today := domain.Day(2024, time.June, 1)
	if err := svc.ExportStatements(context.Background(), "alice", today); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.st.BalanceSheet) != 1 {
		t.Errorf("balance rows = %d, want 1 (current year only)", len(writer.st.BalanceSheet))
	}
}

func TestExportStatementsRecordSourceError(t *testing.T) {
	quotes := quote.Func(func(string) (decimal.Decimal, error) {
		return decimal.NewFromInt(170), nil
	})
	reports := report.NewService(quotes, currency.NewDefaultConverter())
	svc := NewService(&mockRecordSource{err: errors.New("db down")}, reports, &captureWriter{}, "USD")

	if err := svc.ExportStatements(context.Background(), "alice", time.Now()); err == nil {
		t.Fatal("expected error from record source")
	}
}

func TestBuildWealthRows(t *testing.T) {
	data := buildWealth([]report.WealthRow{
		{Month: "2024-01", AssetValue: 1700, CostBasis: 1500, ProfitLoss: 200},
	})
	if len(data) != 2 {
		t.Fatalf("rows = %d, want 2", len(data))
	}
	if data[0][0] != "Month" {
		t.Errorf("header = %v", data[0])
	}
	if data[1][1] != 1700.0 {
		t.Errorf("asset value cell = %v, want 1700", data[1][1])
	}
}

func TestExcelWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statements.xlsx")
	writer := NewExcelWriter(path)

	st := Statements{
		Owner:  "alice",
		Wealth: []report.WealthRow{{Month: "2024-01", AssetValue: 1700, CostBasis: 1500, ProfitLoss: 200}},
	}
	if err := writer.Write(context.Background(), st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("WEALTH", "A2")
	if err != nil {
		t.Fatalf("reading cell: %v", err)
	}
	if got != "2024-01" {
		t.Errorf("WEALTH!A2 = %q, want %q", got, "2024-01")
	}
}
