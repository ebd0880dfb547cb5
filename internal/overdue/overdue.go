// Package overdue classifies pending transactions by payment urgency
// relative to a reference date supplied by the caller.
package overdue

import (
	"sort"

	"github.com/shopspring/decimal"

	"pousada/internal/core"
)

type Status string

const (
	StatusPaid     Status = "PAID"
	StatusOverdue  Status = "OVERDUE"
	StatusDueSoon  Status = "DUE_SOON"
	StatusUpcoming Status = "UPCOMING"
)

// DefaultDueSoonDays is how many days ahead a due date counts as due soon.
const DefaultDueSoonDays = 3

// Classification is the urgency of one transaction at a reference date.
type Classification struct {
	Status       Status `json:"status"`
	DaysOverdue  int    `json:"days_overdue"`
	DaysUntilDue int    `json:"days_until_due"`
}

// Classifier holds the due-soon window. The zero value uses DefaultDueSoonDays.
type Classifier struct {
	DueSoonDays int
}

func (c Classifier) window() int {
	if c.DueSoonDays <= 0 {
		return DefaultDueSoonDays
	}
	return c.DueSoonDays
}

// Classify evaluates tx against ref. Days are calendar days. A transaction due
// on ref is due soon, never overdue. A pending transaction without a due date
// is upcoming.
func (c Classifier) Classify(tx core.Transaction, ref core.Date) Classification {
	if tx.IsPaid() {
		return Classification{Status: StatusPaid}
	}
	if tx.DueDate.IsZero() {
		return Classification{Status: StatusUpcoming}
	}

	if late := core.DaysBetween(tx.DueDate, ref); late > 0 {
		return Classification{Status: StatusOverdue, DaysOverdue: late}
	}
	until := core.DaysBetween(ref, tx.DueDate)
	if until <= c.window() {
		return Classification{Status: StatusDueSoon, DaysUntilDue: until}
	}
	return Classification{Status: StatusUpcoming, DaysUntilDue: until}
}

// Classify uses the default window.
func Classify(tx core.Transaction, ref core.Date) Classification {
	return Classifier{}.Classify(tx, ref)
}

// Item is a pending transaction with its classification.
type Item struct {
	Transaction    core.Transaction `json:"-"`
	Classification Classification   `json:"classification"`
}

// Options narrows Pending.
type Options struct {
	Type  *core.TransactionType // nil means both types
	Limit int                   // 0 means no cap
}

// Summary lists pending transactions by due date. Items may be capped by
// Options.Limit; the counters and totals always cover every pending
// transaction that matched.
type Summary struct {
	Reference    core.Date       `json:"reference"`
	Items        []Item          `json:"items"`
	Count        int             `json:"count"`
	Total        decimal.Decimal `json:"total"`
	OverdueCount int             `json:"overdue_count"`
	OverdueTotal decimal.Decimal `json:"overdue_total"`
	DueSoonCount int             `json:"due_soon_count"`
	DueSoonTotal decimal.Decimal `json:"due_soon_total"`
	Truncated    bool            `json:"truncated"`
}

// Pending classifies every unpaid transaction in txs at ref. The input slice
// is not reordered.
func (c Classifier) Pending(txs []core.Transaction, ref core.Date, opts Options) Summary {
	s := Summary{
		Reference:    ref,
		Items:        []Item{},
		Total:        decimal.Zero,
		OverdueTotal: decimal.Zero,
		DueSoonTotal: decimal.Zero,
	}
	for _, tx := range txs {
		if tx.IsPaid() {
			continue
		}
		if opts.Type != nil && tx.Type != *opts.Type {
			continue
		}
		cl := c.Classify(tx, ref)
		s.Items = append(s.Items, Item{Transaction: tx, Classification: cl})
		s.Count++
		s.Total = s.Total.Add(tx.Amount)
		switch cl.Status {
		case StatusOverdue:
			s.OverdueCount++
			s.OverdueTotal = s.OverdueTotal.Add(tx.Amount)
		case StatusDueSoon:
			s.DueSoonCount++
			s.DueSoonTotal = s.DueSoonTotal.Add(tx.Amount)
		}
	}

	sort.SliceStable(s.Items, func(i, j int) bool {
		return dueBefore(s.Items[i].Transaction, s.Items[j].Transaction)
	})
	if opts.Limit > 0 && len(s.Items) > opts.Limit {
		s.Items = s.Items[:opts.Limit]
		s.Truncated = true
	}
	return s
}

// Pending uses the default window.
func Pending(txs []core.Transaction, ref core.Date, opts Options) Summary {
	return Classifier{}.Pending(txs, ref, opts)
}

// dueBefore orders by due date ascending with absent due dates last; ties
// fall back to the ID.
func dueBefore(a, b core.Transaction) bool {
	switch {
	case a.DueDate.IsZero() && b.DueDate.IsZero():
		return a.ID < b.ID
	case a.DueDate.IsZero():
		return false
	case b.DueDate.IsZero():
		return true
	case !a.DueDate.Equal(b.DueDate):
		return a.DueDate.Before(b.DueDate)
	}
	return a.ID < b.ID
}
