package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only textual form accepted for civil dates.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidDay   = errors.New("invalid day")
	ErrInvalidMonth = errors.New("invalid month")
)

// Date is a civil date held as midnight UTC.
type Date struct {
	time.Time
}

// ParseError reports a field that could not be converted to its domain type.
type ParseError struct {
	Record string // record identifier when known
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("parse %s of %s: %q: %v", e.Field, e.Record, e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s: %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD. Out-of-range days such as 2025-02-30 are
// rejected rather than normalised into the following month.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &ParseError{Field: "date", Value: s, Err: ErrInvalidDate}
	}
	return DateOf(t), nil
}

// ParseOptionalDate treats an empty string as an absent date.
func ParseOptionalDate(s string) (Date, error) {
	if strings.TrimSpace(s) == "" {
		return Date{}, nil
	}
	return ParseDate(s)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// Key formats the date as YYYY-MM-DD; the zero date yields "".
func (d Date) Key() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) String() string {
	return d.Key()
}

// AddDays moves the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// IsWeekend reports Friday, Saturday and Sunday, the nights priced as weekend.
func (d Date) IsWeekend() bool {
	switch d.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}

func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool  { return d.Time.After(o.Time) }
func (d Date) Equal(o Date) bool  { return d.Time.Equal(o.Time) }

// MarshalText emits YYYY-MM-DD (empty for the zero date).
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Key()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseOptionalDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON overrides the promoted time.Time encoding.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Key() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	return d.UnmarshalText([]byte(s))
}

// DaysBetween is the whole-day difference to - from. Both dates sit on a UTC
// midnight, so the division is exact and independent of DST.
func DaysBetween(from, to Date) int {
	const secondsPerDay = 24 * 60 * 60
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}
