package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

const (
	Lodging     Category = "LODGING"
	Maintenance Category = "MAINTENANCE"
	Utilities   Category = "UTILITIES"
	Supplies    Category = "SUPPLIES"
	Salary      Category = "SALARY"
	Other       Category = "OTHER"
)

const (
	StatusPaid    PaymentStatus = "PAID"
	StatusPending PaymentStatus = "PENDING"
)

type (
	TransactionType string

	// Category is a free tag; the constants above are the ones the dashboard offers.
	Category string

	PaymentStatus string

	Unit struct {
		ID           string
		Name         string
		BasePrice    decimal.NullDecimal
		WeekendPrice decimal.NullDecimal
		HolidayPrice decimal.NullDecimal
		CheckInTime  string // display only, e.g. "14:00"
		CheckOutTime string
	}

	// Stay is the half-open interval [CheckIn, CheckOut).
	Stay struct {
		CheckIn  Date
		CheckOut Date
	}

	// Payment is either Paid(on) or Pending(). The zero value is Pending.
	Payment struct {
		paid   bool
		paidOn Date
	}

	Transaction struct {
		ID          string
		Type        TransactionType
		Category    Category
		Description string
		Amount      decimal.Decimal
		DueDate     Date // zero when absent
		Payment     Payment
	}
)

var (
	ErrEmptyID      = errors.New("empty id")
	ErrInvalidType  = errors.New("invalid transaction type")
	ErrEmptyName    = errors.New("empty unit name")
	ErrNegativeRate = errors.New("negative rate")
)

// Paid records a settled payment. A zero date cannot mark a payment as settled,
// so Paid(Date{}) is Pending.
func Paid(on Date) Payment {
	if on.IsZero() {
		return Payment{}
	}
	return Payment{paid: true, paidOn: on}
}

// Pending is an open payment.
func Pending() Payment {
	return Payment{}
}

func (p Payment) IsPaid() bool {
	return p.paid
}

// PaidOn returns the settlement date, if any.
func (p Payment) PaidOn() (Date, bool) {
	return p.paidOn, p.paid
}

func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Opposite swaps INCOME and EXPENSE.
func (t TransactionType) Opposite() TransactionType {
	if t == Income {
		return Expense
	}
	return Income
}

func (t Transaction) Status() PaymentStatus {
	if t.Payment.IsPaid() {
		return StatusPaid
	}
	return StatusPending
}

func (t Transaction) IsPaid() bool {
	return t.Payment.IsPaid()
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !t.DueDate.IsZero() {
		if err := t.DueDate.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (u Unit) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	for _, r := range []decimal.NullDecimal{u.BasePrice, u.WeekendPrice, u.HolidayPrice} {
		if r.Valid && r.Decimal.IsNegative() {
			return ErrNegativeRate
		}
	}
	return nil
}

// NewStay builds a stay from two civil dates; no ordering is enforced.
func NewStay(checkIn, checkOut Date) Stay {
	return Stay{CheckIn: checkIn, CheckOut: checkOut}
}

// Nights is the number of nights in the stay, never negative.
func (s Stay) Nights() int {
	n := DaysBetween(s.CheckIn, s.CheckOut)
	if n < 0 {
		return 0
	}
	return n
}

// Dates lists every night of the stay starting at CheckIn; CheckOut is excluded.
func (s Stay) Dates() []Date {
	n := s.Nights()
	out := make([]Date, 0, n)
	for i := range n {
		out = append(out, s.CheckIn.AddDays(i))
	}
	return out
}

// Years returns every calendar year touched by the stay's nights, ascending.
func (s Stay) Years() []int {
	n := s.Nights()
	if n == 0 {
		return nil
	}
	first := s.CheckIn.Year()
	last := s.CheckIn.AddDays(n - 1).Year()
	out := make([]int, 0, last-first+1)
	for y := first; y <= last; y++ {
		out = append(out, y)
	}
	return out
}

// DateOf drops the clock and zone of t, keeping its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}
