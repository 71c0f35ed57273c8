// Package export writes an owner's financial statements to spreadsheet
// destinations.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/finfolio/folio/internal/domain"
	"github.com/finfolio/folio/internal/period"
	"github.com/finfolio/folio/internal/report"
	"github.com/finfolio/folio/internal/valuation"
)

// Statements bundles every statement exported for one owner.
type Statements struct {
	Owner        string
	GeneratedAt  time.Time
	Wealth       []report.WealthRow
	BalanceSheet []report.BalanceSheetRow
	Income       []report.IncomeRow
	CashFlow     []report.CashFlowRow
}

// SheetWriter writes statements to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, st Statements) error
}

// RecordSource loads the full record set the statements replay.
type RecordSource interface {
	Records(ctx context.Context) (domain.Records, error)
}

// Service builds the statement bundle and delegates writing to a SheetWriter.
type Service struct {
	records  RecordSource
	reports  *report.Service
	writer   SheetWriter
	currency string
}

// NewService creates a new export Service.
func NewService(records RecordSource, reports *report.Service, writer SheetWriter, reportingCurrency string) *Service {
	return &Service{
		records:  records,
		reports:  reports,
		writer:   writer,
		currency: reportingCurrency,
	}
}

// ExportStatements builds every statement for the owner over the recent
// yearly periods and writes them to the sheet.
func (s *Service) ExportStatements(ctx context.Context, owner string, today time.Time) error {
	records, err := s.records.Records(ctx)
	if err != nil {
		return fmt.Errorf("loading records: %w", err)
	}

	st, err := s.buildStatements(records, owner, today)
	if err != nil {
		return fmt.Errorf("building statements for %s: %w", owner, err)
	}

	return s.writer.Write(ctx, st)
}

// Export implements worker.AfterSnapshotHook: after each snapshot the
// owner's statements are re-exported.
func (s *Service) Export(ctx context.Context, snap valuation.Snapshot) error {
	return s.ExportStatements(ctx, snap.Owner, time.Now().UTC())
}

func (s *Service) buildStatements(records domain.Records, owner string, today time.Time) (Statements, error) {
	startYear := firstActivityYear(records, owner, today)
	periods := period.Yearly(startYear, today.Year(), today)

	wealth, err := s.reports.WealthEvolution(records, owner, s.currency, today)
	if err != nil {
		return Statements{}, fmt.Errorf("wealth evolution: %w", err)
	}
	balance, err := s.reports.BalanceSheet(records, owner, s.currency, periods)
	if err != nil {
		return Statements{}, fmt.Errorf("balance sheet: %w", err)
	}

	return Statements{
		Owner:        owner,
		GeneratedAt:  today,
		Wealth:       wealth,
		BalanceSheet: balance,
		Income:       s.reports.IncomeStatement(records, owner, s.currency, periods),
		CashFlow:     s.reports.CashFlow(records, owner, periods),
	}, nil
}

// firstActivityYear returns the year of the owner's earliest trade, or the
// current year when the owner has no trades yet.
func firstActivityYear(records domain.Records, owner string, today time.Time) int {
	year := today.Year()
	for _, tr := range records.OwnerTrades(owner) {
		if tr.Date.Year() < year {
			year = tr.Date.Year()
		}
	}
	return year
}
