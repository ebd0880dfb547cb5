package report

import (
	"pousada/internal/core"
)

// Report is the derived view of a transaction list for one period.
type Report struct {
	Period   Period                          `json:"-"`
	Income   map[core.Category]CategoryTotal `json:"income_by_category"`
	Expenses map[core.Category]CategoryTotal `json:"expenses_by_category"`
	ByMonth  []MonthRow                      `json:"by_month"`
	Totals   Totals                          `json:"totals"`
	Count    int                             `json:"count"`
}

// Build filters txs by due date for the category and total views; the month
// view restricts by paid date instead.
func Build(txs []core.Transaction, p Period) Report {
	filtered := Filter(txs, p)
	return Report{
		Period:   p,
		Income:   ByCategory(filtered, core.Income),
		Expenses: ByCategory(filtered, core.Expense),
		ByMonth:  ByMonth(txs, p),
		Totals:   ComputeTotals(filtered),
		Count:    len(filtered),
	}
}
