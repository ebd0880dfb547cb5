package overdue

import (
	"testing"

	"github.com/shopspring/decimal"

	"pousada/internal/core"
)

func pending(id string, typ core.TransactionType, amount string, due core.Date) core.Transaction {
	return core.Transaction{
		ID:      id,
		Type:    typ,
		Amount:  decimal.RequireFromString(amount),
		DueDate: due,
	}
}

func TestClassifier_Classify(t *testing.T) {
	ref := core.NewDate(2025, 3, 10)
	c := Classifier{}

	tests := []struct {
		name string
		tx   core.Transaction
		want Classification
	}{
		{
			name: "paid - no overdue computation",
			tx: core.Transaction{
				ID: "p", Type: core.Income, Amount: decimal.NewFromInt(1),
				DueDate: core.NewDate(2025, 1, 1),
				Payment: core.Paid(core.NewDate(2025, 1, 5)),
			},
			want: Classification{Status: StatusPaid},
		},
		{
			name: "due yesterday - overdue by one",
			tx:   pending("a", core.Expense, "10", ref.AddDays(-1)),
			want: Classification{Status: StatusOverdue, DaysOverdue: 1},
		},
		{
			name: "due long ago - calendar days",
			tx:   pending("a", core.Expense, "10", core.NewDate(2025, 2, 8)),
			want: Classification{Status: StatusOverdue, DaysOverdue: 30},
		},
		{
			name: "due today - due soon, never overdue",
			tx:   pending("a", core.Expense, "10", ref),
			want: Classification{Status: StatusDueSoon},
		},
		{
			name: "due in three days - due soon",
			tx:   pending("a", core.Expense, "10", ref.AddDays(3)),
			want: Classification{Status: StatusDueSoon, DaysUntilDue: 3},
		},
		{
			name: "due in four days - upcoming",
			tx:   pending("a", core.Expense, "10", ref.AddDays(4)),
			want: Classification{Status: StatusUpcoming, DaysUntilDue: 4},
		},
		{
			name: "no due date - upcoming",
			tx:   pending("a", core.Expense, "10", core.Date{}),
			want: Classification{Status: StatusUpcoming},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.tx, ref)
			if got != tt.want {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassifier_CustomWindow(t *testing.T) {
	ref := core.NewDate(2025, 3, 10)
	tx := pending("a", core.Income, "10", ref.AddDays(7))

	if got := (Classifier{DueSoonDays: 7}).Classify(tx, ref).Status; got != StatusDueSoon {
		t.Errorf("7-day window: got %s, want DUE_SOON", got)
	}
	if got := Classify(tx, ref).Status; got != StatusUpcoming {
		t.Errorf("default window: got %s, want UPCOMING", got)
	}
}

func TestPending(t *testing.T) {
	ref := core.NewDate(2025, 3, 10)
	paid := pending("paid", core.Income, "999", ref.AddDays(-10))
	paid.Payment = core.Paid(ref.AddDays(-9))

	txs := []core.Transaction{
		pending("c", core.Expense, "30", ref.AddDays(10)),
		pending("nodue", core.Income, "5", core.Date{}),
		paid,
		pending("b", core.Income, "20", ref.AddDays(1)),
		pending("a", core.Expense, "10", ref.AddDays(-2)),
		pending("a2", core.Income, "15", ref.AddDays(-2)),
	}
	original := append([]core.Transaction(nil), txs...)

	s := Pending(txs, ref, Options{Limit: 3})

	if s.Count != 5 {
		t.Errorf("Count = %d, want 5", s.Count)
	}
	if !s.Total.Equal(decimal.NewFromInt(80)) {
		t.Errorf("Total = %s, want 80", s.Total)
	}
	if s.OverdueCount != 2 || !s.OverdueTotal.Equal(decimal.NewFromInt(25)) {
		t.Errorf("overdue = %d / %s, want 2 / 25", s.OverdueCount, s.OverdueTotal)
	}
	if s.DueSoonCount != 1 || !s.DueSoonTotal.Equal(decimal.NewFromInt(20)) {
		t.Errorf("due soon = %d / %s, want 1 / 20", s.DueSoonCount, s.DueSoonTotal)
	}
	if !s.Truncated || len(s.Items) != 3 {
		t.Fatalf("expected 3 truncated items, got %d (truncated=%v)", len(s.Items), s.Truncated)
	}

	wantOrder := []string{"a", "a2", "b"}
	for i, id := range wantOrder {
		if s.Items[i].Transaction.ID != id {
			t.Errorf("Items[%d] = %s, want %s", i, s.Items[i].Transaction.ID, id)
		}
	}

	for i := range txs {
		if txs[i].ID != original[i].ID {
			t.Fatalf("input reordered at %d", i)
		}
	}
}

func TestPending_NoDueDateLast(t *testing.T) {
	ref := core.NewDate(2025, 3, 10)
	txs := []core.Transaction{
		pending("x", core.Income, "1", core.Date{}),
		pending("y", core.Income, "1", ref.AddDays(30)),
	}
	s := Pending(txs, ref, Options{})
	if s.Items[0].Transaction.ID != "y" || s.Items[1].Transaction.ID != "x" {
		t.Errorf("absent due date must sort last, got %s, %s", s.Items[0].Transaction.ID, s.Items[1].Transaction.ID)
	}
	if s.Truncated {
		t.Error("no limit must not truncate")
	}
}

func TestPending_TypeFilter(t *testing.T) {
	ref := core.NewDate(2025, 3, 10)
	txs := []core.Transaction{
		pending("i", core.Income, "100", ref),
		pending("e", core.Expense, "40", ref),
	}
	expense := core.Expense
	s := Pending(txs, ref, Options{Type: &expense})
	if s.Count != 1 || s.Items[0].Transaction.ID != "e" {
		t.Errorf("expected only the expense, got %+v", s.Items)
	}
	if !s.Total.Equal(decimal.NewFromInt(40)) {
		t.Errorf("Total = %s, want 40", s.Total)
	}
}

func TestPending_Empty(t *testing.T) {
	s := Pending(nil, core.NewDate(2025, 1, 1), Options{Limit: 5})
	if s.Count != 0 || !s.Total.IsZero() || len(s.Items) != 0 {
		t.Errorf("expected empty summary, got %+v", s)
	}
}
