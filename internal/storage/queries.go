package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Unit is a row of the units table. Decimals are stored as text.
type Unit struct {
	ID           string
	Name         string
	BasePrice    sql.NullString
	WeekendPrice sql.NullString
	HolidayPrice sql.NullString
	CheckInTime  string
	CheckOutTime string
}

// Transaction is a row of the transactions table.
type Transaction struct {
	ID              string
	TransactionType string
	Category        string
	Description     string
	Amount          string
	DueDate         sql.NullString
	PaidDate        sql.NullString
}

const listUnits = `SELECT id, name, base_price, weekend_price, holiday_price, check_in_time, check_out_time
FROM units ORDER BY id`

func (q *Queries) ListUnits(ctx context.Context) ([]Unit, error) {
	rows, err := q.db.QueryContext(ctx, listUnits)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Unit
	for rows.Next() {
		var i Unit
		if err := rows.Scan(&i.ID, &i.Name, &i.BasePrice, &i.WeekendPrice, &i.HolidayPrice, &i.CheckInTime, &i.CheckOutTime); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getUnit = `SELECT id, name, base_price, weekend_price, holiday_price, check_in_time, check_out_time
FROM units WHERE id = ?`

func (q *Queries) GetUnit(ctx context.Context, id string) (Unit, error) {
	row := q.db.QueryRowContext(ctx, getUnit, id)
	var i Unit
	err := row.Scan(&i.ID, &i.Name, &i.BasePrice, &i.WeekendPrice, &i.HolidayPrice, &i.CheckInTime, &i.CheckOutTime)
	return i, err
}

const upsertUnit = `INSERT INTO units (id, name, base_price, weekend_price, holiday_price, check_in_time, check_out_time)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    base_price = excluded.base_price,
    weekend_price = excluded.weekend_price,
    holiday_price = excluded.holiday_price,
    check_in_time = excluded.check_in_time,
    check_out_time = excluded.check_out_time,
    updated_at = CURRENT_TIMESTAMP`

func (q *Queries) UpsertUnit(ctx context.Context, arg Unit) error {
	_, err := q.db.ExecContext(ctx, upsertUnit,
		arg.ID, arg.Name, arg.BasePrice, arg.WeekendPrice, arg.HolidayPrice, arg.CheckInTime, arg.CheckOutTime)
	return err
}

const listTransactions = `SELECT id, transaction_type, category, description, amount, due_date, paid_date
FROM transactions ORDER BY id`

func (q *Queries) ListTransactions(ctx context.Context) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(&i.ID, &i.TransactionType, &i.Category, &i.Description, &i.Amount, &i.DueDate, &i.PaidDate); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertTransaction = `INSERT INTO transactions (id, transaction_type, category, description, amount, due_date, paid_date)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    transaction_type = excluded.transaction_type,
    category = excluded.category,
    description = excluded.description,
    amount = excluded.amount,
    due_date = excluded.due_date,
    paid_date = excluded.paid_date,
    updated_at = CURRENT_TIMESTAMP`

func (q *Queries) UpsertTransaction(ctx context.Context, arg Transaction) error {
	_, err := q.db.ExecContext(ctx, upsertTransaction,
		arg.ID, arg.TransactionType, arg.Category, arg.Description, arg.Amount, arg.DueDate, arg.PaidDate)
	return err
}
