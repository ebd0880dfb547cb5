package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"pousada/internal/core"
	ports "pousada/internal/sheets"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

var _ ports.Source = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, queries: New(db)}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) ListUnits(ctx context.Context) ([]core.Unit, error) {
	rows, err := r.queries.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	raws := make([]core.RawUnit, 0, len(rows))
	for _, row := range rows {
		raws = append(raws, row.raw())
	}
	return core.ParseUnits(raws)
}

func (r *SQLiteRepository) GetUnit(ctx context.Context, id string) (core.Unit, error) {
	row, err := r.queries.GetUnit(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Unit{}, fmt.Errorf("unit %s: %w", id, ports.ErrUnitNotFound)
	}
	if err != nil {
		return core.Unit{}, fmt.Errorf("get unit %s: %w", id, err)
	}
	return core.ParseUnit(row.raw())
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	raws := make([]core.RawTransaction, 0, len(rows))
	for _, row := range rows {
		raws = append(raws, row.raw())
	}
	return core.ParseTransactions(raws)
}

func (r *SQLiteRepository) UpsertUnit(ctx context.Context, u core.Unit) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := r.queries.UpsertUnit(ctx, unitRow(u)); err != nil {
		return fmt.Errorf("upsert unit %s: %w", u.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := r.queries.UpsertTransaction(ctx, transactionRow(t)); err != nil {
		return fmt.Errorf("upsert transaction %s: %w", t.ID, err)
	}
	return nil
}

// Import writes units and transactions in one database transaction.
func (r *SQLiteRepository) Import(ctx context.Context, units []core.Unit, txs []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	for _, u := range units {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("unit %s: %w", u.ID, err)
		}
		if err := q.UpsertUnit(ctx, unitRow(u)); err != nil {
			return fmt.Errorf("upsert unit %s: %w", u.ID, err)
		}
	}
	for _, t := range txs {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		if err := q.UpsertTransaction(ctx, transactionRow(t)); err != nil {
			return fmt.Errorf("upsert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	slog.InfoContext(ctx, "Imported records into SQLite", "units", len(units), "transactions", len(txs))
	return nil
}

// Count returns the number of stored units and transactions.
func (r *SQLiteRepository) Count(ctx context.Context) (units, txs int, err error) {
	if err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM units").Scan(&units); err != nil {
		return 0, 0, fmt.Errorf("count units: %w", err)
	}
	if err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&txs); err != nil {
		return 0, 0, fmt.Errorf("count transactions: %w", err)
	}
	return units, txs, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func unitRow(u core.Unit) Unit {
	raw := u.Raw()
	return Unit{
		ID:           raw.ID,
		Name:         raw.Name,
		BasePrice:    nullString(raw.BasePrice),
		WeekendPrice: nullString(raw.WeekendPrice),
		HolidayPrice: nullString(raw.HolidayPrice),
		CheckInTime:  raw.CheckInTime,
		CheckOutTime: raw.CheckOutTime,
	}
}

func (u Unit) raw() core.RawUnit {
	return core.RawUnit{
		ID:           u.ID,
		Name:         u.Name,
		BasePrice:    u.BasePrice.String,
		WeekendPrice: u.WeekendPrice.String,
		HolidayPrice: u.HolidayPrice.String,
		CheckInTime:  u.CheckInTime,
		CheckOutTime: u.CheckOutTime,
	}
}

func transactionRow(t core.Transaction) Transaction {
	raw := t.Raw()
	return Transaction{
		ID:              raw.ID,
		TransactionType: raw.Type,
		Category:        raw.Category,
		Description:     raw.Description,
		Amount:          raw.Amount,
		DueDate:         nullString(raw.DueDate),
		PaidDate:        nullString(raw.PaidDate),
	}
}

func (t Transaction) raw() core.RawTransaction {
	return core.RawTransaction{
		ID:          t.ID,
		Type:        t.TransactionType,
		Category:    t.Category,
		Description: t.Description,
		Amount:      t.Amount,
		DueDate:     t.DueDate.String,
		PaidDate:    t.PaidDate.String,
	}
}
