package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// RawUnit is a unit record as read from fixtures, sheets or SQL rows.
type RawUnit struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	BasePrice    string `json:"base_price" yaml:"base_price"`
	WeekendPrice string `json:"weekend_price,omitempty" yaml:"weekend_price,omitempty"`
	HolidayPrice string `json:"holiday_price,omitempty" yaml:"holiday_price,omitempty"`
	CheckInTime  string `json:"check_in_time,omitempty" yaml:"check_in_time,omitempty"`
	CheckOutTime string `json:"check_out_time,omitempty" yaml:"check_out_time,omitempty"`
}

// RawTransaction is a transaction record before parsing.
type RawTransaction struct {
	ID          string `json:"id" yaml:"id"`
	Type        string `json:"transaction_type" yaml:"transaction_type"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Amount      string `json:"amount" yaml:"amount"`
	DueDate     string `json:"due_date" yaml:"due_date"`
	PaidDate    string `json:"paid_date,omitempty" yaml:"paid_date,omitempty"`
}

// ParseUnit converts a raw record. Unset rates stay unset; they are not zero,
// while an explicit zero rate is kept.
func ParseUnit(r RawUnit) (Unit, error) {
	id := strings.TrimSpace(r.ID)
	u := Unit{
		ID:           id,
		Name:         strings.TrimSpace(r.Name),
		CheckInTime:  strings.TrimSpace(r.CheckInTime),
		CheckOutTime: strings.TrimSpace(r.CheckOutTime),
	}
	var err error
	if u.BasePrice, err = ParseOptionalRate(r.BasePrice); err != nil {
		return Unit{}, &ParseError{Record: id, Field: "base_price", Value: r.BasePrice, Err: err}
	}
	if u.WeekendPrice, err = ParseOptionalRate(r.WeekendPrice); err != nil {
		return Unit{}, &ParseError{Record: id, Field: "weekend_price", Value: r.WeekendPrice, Err: err}
	}
	if u.HolidayPrice, err = ParseOptionalRate(r.HolidayPrice); err != nil {
		return Unit{}, &ParseError{Record: id, Field: "holiday_price", Value: r.HolidayPrice, Err: err}
	}
	if err := u.Validate(); err != nil {
		return Unit{}, &ParseError{Record: id, Field: "unit", Value: r.Name, Err: err}
	}
	return u, nil
}

// ParseUnits parses every record or none.
func ParseUnits(raws []RawUnit) ([]Unit, error) {
	out := make([]Unit, 0, len(raws))
	for _, r := range raws {
		u, err := ParseUnit(r)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// ParseTransaction converts a raw record into a Transaction. A paid date turns
// the payment into Paid; its absence leaves it Pending.
func ParseTransaction(r RawTransaction) (Transaction, error) {
	id := strings.TrimSpace(r.ID)
	fail := func(field, value string, err error) (Transaction, error) {
		var pe *ParseError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return Transaction{}, &ParseError{Record: id, Field: field, Value: value, Err: err}
	}

	typ := TransactionType(strings.ToUpper(strings.TrimSpace(r.Type)))
	if !typ.IsValid() {
		return fail("transaction_type", r.Type, ErrInvalidType)
	}
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return fail("amount", r.Amount, err)
	}
	due, err := ParseOptionalDate(r.DueDate)
	if err != nil {
		return fail("due_date", r.DueDate, err)
	}
	paidOn, err := ParseOptionalDate(r.PaidDate)
	if err != nil {
		return fail("paid_date", r.PaidDate, err)
	}

	category := Category(strings.ToUpper(strings.TrimSpace(r.Category)))
	if category == "" {
		category = Other
	}

	t := Transaction{
		ID:          id,
		Type:        typ,
		Category:    category,
		Description: strings.TrimSpace(r.Description),
		Amount:      amount,
		DueDate:     due,
		Payment:     Paid(paidOn),
	}
	if err := t.Validate(); err != nil {
		return fail("transaction", id, err)
	}
	return t, nil
}

// ParseTransactions parses every record or none; the first failure is returned.
func ParseTransactions(raws []RawTransaction) ([]Transaction, error) {
	out := make([]Transaction, 0, len(raws))
	for _, r := range raws {
		t, err := ParseTransaction(r)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Raw converts a transaction back to its string form.
func (t Transaction) Raw() RawTransaction {
	raw := RawTransaction{
		ID:          t.ID,
		Type:        string(t.Type),
		Category:    string(t.Category),
		Description: t.Description,
		Amount:      t.Amount.StringFixed(2),
		DueDate:     t.DueDate.Key(),
	}
	if on, ok := t.Payment.PaidOn(); ok {
		raw.PaidDate = on.Key()
	}
	return raw
}

// Raw converts a unit back to its string form.
func (u Unit) Raw() RawUnit {
	rate := func(n decimal.NullDecimal) string {
		if !n.Valid {
			return ""
		}
		return n.Decimal.StringFixed(2)
	}
	return RawUnit{
		ID:           u.ID,
		Name:         u.Name,
		BasePrice:    rate(u.BasePrice),
		WeekendPrice: rate(u.WeekendPrice),
		HolidayPrice: rate(u.HolidayPrice),
		CheckInTime:  u.CheckInTime,
		CheckOutTime: u.CheckOutTime,
	}
}
