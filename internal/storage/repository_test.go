package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"pousada/internal/core"
	ports "pousada/internal/sheets"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "pousada.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	unit := core.Unit{
		ID:           "chale-1",
		Name:         "Chalé",
		BasePrice:    decimal.NewNullDecimal(decimal.RequireFromString("250.50")),
		HolidayPrice: decimal.NewNullDecimal(decimal.NewFromInt(400)),
		CheckInTime:  "14:00",
	}
	if err := repo.UpsertUnit(ctx, unit); err != nil {
		t.Fatalf("UpsertUnit: %v", err)
	}

	got, err := repo.GetUnit(ctx, "chale-1")
	if err != nil {
		t.Fatalf("GetUnit: %v", err)
	}
	if !got.BasePrice.Decimal.Equal(unit.BasePrice.Decimal) || got.WeekendPrice.Valid || got.CheckInTime != "14:00" {
		t.Errorf("unexpected unit: %+v", got)
	}

	paid := core.Transaction{
		ID: "t1", Type: core.Income, Category: core.Lodging,
		Amount:  decimal.RequireFromString("99.90"),
		DueDate: core.NewDate(2025, 3, 1),
		Payment: core.Paid(core.NewDate(2025, 3, 2)),
	}
	open := core.Transaction{
		ID: "t2", Type: core.Expense, Category: core.Utilities,
		Amount: decimal.NewFromInt(10),
	}
	for _, tx := range []core.Transaction{paid, open} {
		if err := repo.UpsertTransaction(ctx, tx); err != nil {
			t.Fatalf("UpsertTransaction(%s): %v", tx.ID, err)
		}
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if on, ok := txs[0].Payment.PaidOn(); !ok || on.Key() != "2025-03-02" {
		t.Errorf("t1 payment lost: %+v", txs[0].Payment)
	}
	if txs[1].IsPaid() || !txs[1].DueDate.IsZero() {
		t.Errorf("t2 should be pending without due date: %+v", txs[1])
	}
}

func TestRepositoryZeroRateRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	free := core.Unit{
		ID:           "cortesia",
		Name:         "Quarto cortesia",
		BasePrice:    decimal.NewNullDecimal(decimal.Zero),
		HolidayPrice: decimal.NewNullDecimal(decimal.Zero),
	}
	if err := free.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := repo.UpsertUnit(ctx, free); err != nil {
		t.Fatalf("UpsertUnit: %v", err)
	}

	units, err := repo.ListUnits(ctx)
	if err != nil {
		t.Fatalf("ListUnits: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	got := units[0]
	if !got.BasePrice.Valid || !got.BasePrice.Decimal.IsZero() {
		t.Errorf("base price = %+v, want set zero", got.BasePrice)
	}
	if !got.HolidayPrice.Valid || !got.HolidayPrice.Decimal.IsZero() {
		t.Errorf("holiday price = %+v, want set zero", got.HolidayPrice)
	}
	if got.WeekendPrice.Valid {
		t.Errorf("weekend price should stay unset")
	}
}

func TestRepositoryUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	tx := core.Transaction{ID: "t1", Type: core.Expense, Amount: decimal.NewFromInt(10), DueDate: core.NewDate(2025, 1, 1)}
	if err := repo.UpsertTransaction(ctx, tx); err != nil {
		t.Fatal(err)
	}
	tx.Payment = core.Paid(core.NewDate(2025, 1, 3))
	if err := repo.UpsertTransaction(ctx, tx); err != nil {
		t.Fatal(err)
	}

	_, n, err := repo.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Count = %d (err=%v), want 1", n, err)
	}
	txs, _ := repo.ListTransactions(ctx)
	if !txs[0].IsPaid() {
		t.Error("upsert did not update the payment")
	}
}

func TestRepositoryGetUnitNotFound(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.GetUnit(context.Background(), "missing"); !errors.Is(err, ports.ErrUnitNotFound) {
		t.Fatalf("expected ErrUnitNotFound, got %v", err)
	}
}

func TestRepositoryImportIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	units := []core.Unit{{ID: "u1", Name: "A"}}
	txs := []core.Transaction{
		{ID: "ok", Type: core.Income, Amount: decimal.NewFromInt(1)},
		{ID: "bad", Type: core.Income},
	}
	if err := repo.Import(ctx, units, txs); err == nil {
		t.Fatal("expected validation error")
	}
	u, n, _ := repo.Count(ctx)
	if u != 0 || n != 0 {
		t.Fatalf("failed import left %d units and %d transactions", u, n)
	}

	if err := repo.Import(ctx, units, txs[:1]); err != nil {
		t.Fatalf("Import: %v", err)
	}
	u, n, _ = repo.Count(ctx)
	if u != 1 || n != 1 {
		t.Fatalf("Count = %d/%d, want 1/1", u, n)
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.db")
	for i := 0; i < 2; i++ {
		if err := RunMigrations(path); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
}
