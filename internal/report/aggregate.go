package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"pousada/internal/core"
)

// CategoryTotal is the paid amount and count of one category.
type CategoryTotal struct {
	Category core.Category   `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// MonthRow is the paid cash flow of one calendar month.
type MonthRow struct {
	Key      string          `json:"key"` // YYYY-MM
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// Totals splits both types into paid and unpaid amounts. Net only counts
// paid amounts.
type Totals struct {
	IncomePaid    decimal.Decimal `json:"income_paid"`
	IncomeUnpaid  decimal.Decimal `json:"income_unpaid"`
	ExpensePaid   decimal.Decimal `json:"expense_paid"`
	ExpenseUnpaid decimal.Decimal `json:"expense_unpaid"`
	Net           decimal.Decimal `json:"net"`
}

// Filter returns the transactions the period selects, as a new slice.
// AllDates keeps every transaction; a bounded period drops those without a
// due date.
func Filter(txs []core.Transaction, p Period) []core.Transaction {
	if p.IsAll() {
		return append(make([]core.Transaction, 0, len(txs)), txs...)
	}
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if p.Contains(tx.DueDate) {
			out = append(out, tx)
		}
	}
	return out
}

// ByCategory totals the paid transactions of typ per category. Pending
// transactions never contribute.
func ByCategory(txs []core.Transaction, typ core.TransactionType) map[core.Category]CategoryTotal {
	out := make(map[core.Category]CategoryTotal)
	for _, tx := range txs {
		if tx.Type != typ || !tx.IsPaid() {
			continue
		}
		ct, ok := out[tx.Category]
		if !ok {
			ct = CategoryTotal{Category: tx.Category, Total: decimal.Zero}
		}
		ct.Total = ct.Total.Add(tx.Amount)
		ct.Count++
		out[tx.Category] = ct
	}
	return out
}

// SortedCategories orders a category map by total descending, then name.
func SortedCategories(m map[core.Category]CategoryTotal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(m))
	for _, ct := range m {
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

var monthLabels = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// MonthLabel renders a month as "mar/2025".
func MonthLabel(year, month int) string {
	return fmt.Sprintf("%s/%d", monthLabels[month-1], year)
}

// ByMonth buckets paid transactions by the month of their paid date, keeping
// only those paid within window. Rows are ordered by month.
func ByMonth(txs []core.Transaction, window Period) []MonthRow {
	rows := make(map[string]*MonthRow)
	for _, tx := range txs {
		paidOn, ok := tx.Payment.PaidOn()
		if !ok || !window.Contains(paidOn) {
			continue
		}
		key := fmt.Sprintf("%04d-%02d", paidOn.Year(), paidOn.Month())
		row, ok := rows[key]
		if !ok {
			row = &MonthRow{
				Key:      key,
				Label:    MonthLabel(paidOn.Year(), paidOn.Month()),
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			}
			rows[key] = row
		}
		switch tx.Type {
		case core.Income:
			row.Income = row.Income.Add(tx.Amount)
		case core.Expense:
			row.Expenses = row.Expenses.Add(tx.Amount)
		}
	}

	out := make([]MonthRow, 0, len(rows))
	for _, row := range rows {
		row.Net = row.Income.Sub(row.Expenses)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ComputeTotals sums txs into paid and unpaid amounts per type.
func ComputeTotals(txs []core.Transaction) Totals {
	t := Totals{
		IncomePaid:    decimal.Zero,
		IncomeUnpaid:  decimal.Zero,
		ExpensePaid:   decimal.Zero,
		ExpenseUnpaid: decimal.Zero,
	}
	for _, tx := range txs {
		switch {
		case tx.Type == core.Income && tx.IsPaid():
			t.IncomePaid = t.IncomePaid.Add(tx.Amount)
		case tx.Type == core.Income:
			t.IncomeUnpaid = t.IncomeUnpaid.Add(tx.Amount)
		case tx.Type == core.Expense && tx.IsPaid():
			t.ExpensePaid = t.ExpensePaid.Add(tx.Amount)
		case tx.Type == core.Expense:
			t.ExpenseUnpaid = t.ExpenseUnpaid.Add(tx.Amount)
		}
	}
	t.Net = t.IncomePaid.Sub(t.ExpensePaid)
	return t
}

// money converts an amount for spreadsheet cells.
func money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
