package export

import "github.com/finfolio/folio/internal/report"

// sheetNames lists the statement sheets in write order.
func sheetNames() []string {
	return []string{"WEALTH", "BALANCE", "INCOME", "CASHFLOW"}
}

// buildWealth builds the WEALTH sheet data.
// Columns: Month | Asset Value | Cost Basis | Profit/Loss
func buildWealth(rows []report.WealthRow) [][]any {
	data := make([][]any, 0, len(rows)+1)
	data = append(data, []any{"Month", "Asset Value", "Cost Basis", "Profit/Loss"})
	for _, r := range rows {
		data = append(data, []any{r.Month, r.AssetValue, r.CostBasis, r.ProfitLoss})
	}
	return data
}

// buildBalance builds the BALANCE sheet data.
// Columns: Period | Cash | Investments | Bonds | Total Assets | Liabilities | Equity
func buildBalance(rows []report.BalanceSheetRow) [][]any {
	data := make([][]any, 0, len(rows)+1)
	data = append(data, []any{"Period", "Cash", "Investments", "Bonds", "Total Assets", "Liabilities", "Equity"})
	for _, r := range rows {
		data = append(data, []any{r.Label, r.Cash, r.Investments, r.Bonds, r.TotalAssets, r.Liabilities, r.Equity})
	}
	return data
}

// buildIncome builds the INCOME sheet data.
// Columns: Period | Dividends | Realized Gain | Revenue | Expenses | Net Income
func buildIncome(rows []report.IncomeRow) [][]any {
	data := make([][]any, 0, len(rows)+1)
	data = append(data, []any{"Period", "Dividends", "Realized Gain", "Revenue", "Expenses", "Net Income"})
	for _, r := range rows {
		data = append(data, []any{r.Label, r.Dividends, r.RealizedGain, r.Revenue, r.Expenses, r.NetIncome})
	}
	return data
}

// buildCashFlow builds the CASHFLOW sheet data.
// Columns: Period | Operating | Investing | Net
func buildCashFlow(rows []report.CashFlowRow) [][]any {
	data := make([][]any, 0, len(rows)+1)
	data = append(data, []any{"Period", "Operating", "Investing", "Net"})
	for _, r := range rows {
		data = append(data, []any{r.Label, r.Operating, r.Investing, r.Net})
	}
	return data
}
