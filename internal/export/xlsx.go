package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelWriter implements SheetWriter by writing an .xlsx workbook to disk.
type ExcelWriter struct {
	path string
}

// NewExcelWriter creates an ExcelWriter that saves the workbook at path.
func NewExcelWriter(path string) *ExcelWriter {
	return &ExcelWriter{path: path}
}

// Write builds a workbook with one sheet per statement and saves it.
func (w *ExcelWriter) Write(_ context.Context, st Statements) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := map[string][][]any{
		"WEALTH":   buildWealth(st.Wealth),
		"BALANCE":  buildBalance(st.BalanceSheet),
		"INCOME":   buildIncome(st.Income),
		"CASHFLOW": buildCashFlow(st.CashFlow),
	}

	for _, name := range sheetNames() {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
		for i, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return fmt.Errorf("addressing row %d of %s: %w", i+1, name, err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("writing row %d of %s: %w", i+1, name, err)
			}
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", w.path, err)
	}
	return nil
}
