package http

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"pousada/internal/core"
	"pousada/internal/report"
)

// ParamError reports a query parameter that could not be used.
type ParamError struct {
	Param string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Param, e.Err)
	}
	return fmt.Sprintf("%s=%q: %v", e.Param, e.Value, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// Request bounds.
const (
	MinYear         = 1583
	MaxYear         = 9999
	MaxStayNights   = 730
	MaxHolidayYears = 10
)

var (
	errMissing   = errors.New("required")
	errNotNumber = errors.New("must be a whole number")
	errYearRange = fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	errStayLong  = fmt.Errorf("stay longer than %d nights", MaxStayNights)
	errSpanLong  = fmt.Errorf("range spans more than %d years", MaxHolidayYears)
	errReversed  = errors.New("before the start of the range")
)

// ParseDateParam reads a YYYY-MM-DD parameter. An absent optional parameter
// yields the zero date.
func ParseDateParam(q url.Values, name string, required bool) (core.Date, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		if required {
			return core.Date{}, &ParamError{Param: name, Err: errMissing}
		}
		return core.Date{}, nil
	}
	d, err := core.ParseDate(v)
	if err != nil {
		return core.Date{}, &ParamError{Param: name, Value: v, Err: core.ErrInvalidDate}
	}
	return d, nil
}

// parseCalendarDate is ParseDateParam limited to years MinYear..MaxYear.
func parseCalendarDate(q url.Values, name string, required bool) (core.Date, error) {
	d, err := ParseDateParam(q, name, required)
	if err != nil || strings.TrimSpace(q.Get(name)) == "" {
		return d, err
	}
	if y := d.Year(); y < MinYear || y > MaxYear {
		return core.Date{}, &ParamError{Param: name, Value: d.Key(), Err: errYearRange}
	}
	return d, nil
}

// ParseStay reads check_in and check_out. A check-out on or before the
// check-in is a zero-night stay; a stay over MaxStayNights is rejected.
// Both dates must fall in MinYear..MaxYear.
func ParseStay(q url.Values) (core.Stay, error) {
	checkIn, err := parseCalendarDate(q, "check_in", true)
	if err != nil {
		return core.Stay{}, err
	}
	checkOut, err := parseCalendarDate(q, "check_out", true)
	if err != nil {
		return core.Stay{}, err
	}
	stay := core.NewStay(checkIn, checkOut)
	if stay.Nights() > MaxStayNights {
		return core.Stay{}, &ParamError{Param: "check_out", Value: checkOut.Key(), Err: errStayLong}
	}
	return stay, nil
}

// ParseHolidayRange reads a from and to pair covering at most
// MaxHolidayYears calendar years between MinYear and MaxYear.
func ParseHolidayRange(q url.Values) (from, to core.Date, err error) {
	if from, err = parseCalendarDate(q, "from", true); err != nil {
		return core.Date{}, core.Date{}, err
	}
	if to, err = parseCalendarDate(q, "to", true); err != nil {
		return core.Date{}, core.Date{}, err
	}
	if to.Before(from) {
		return core.Date{}, core.Date{}, &ParamError{Param: "to", Value: to.Key(), Err: errReversed}
	}
	if to.Year()-from.Year()+1 > MaxHolidayYears {
		return core.Date{}, core.Date{}, &ParamError{Param: "to", Value: to.Key(), Err: errSpanLong}
	}
	return from, to, nil
}

// ParseRef reads the reference date, defaulting to today.
func ParseRef(q url.Values, today core.Date) (core.Date, error) {
	ref, err := parseCalendarDate(q, "ref", false)
	if err != nil {
		return core.Date{}, err
	}
	if ref.IsZero() {
		return today, nil
	}
	return ref, nil
}

// ParseOverride reads an optional manual total. Only a positive amount
// replaces the computed total; zero or negative means no override.
func ParseOverride(q url.Values) (decimal.NullDecimal, error) {
	v := strings.TrimSpace(q.Get("override"))
	if v == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := core.ParseRate(strings.TrimPrefix(v, "-"))
	if err != nil {
		return decimal.NullDecimal{}, &ParamError{Param: "override", Value: v, Err: err}
	}
	if strings.HasPrefix(v, "-") || d.IsZero() {
		return decimal.NullDecimal{}, nil
	}
	return decimal.NewNullDecimal(d), nil
}

// ParseType reads an optional INCOME or EXPENSE filter.
func ParseType(q url.Values) (*core.TransactionType, error) {
	v := strings.TrimSpace(q.Get("type"))
	if v == "" {
		return nil, nil
	}
	t := core.TransactionType(strings.ToUpper(v))
	if !t.IsValid() {
		return nil, &ParamError{Param: "type", Value: v, Err: core.ErrInvalidType}
	}
	return &t, nil
}

// ParseLimit reads a non-negative limit; absent means def.
func ParseLimit(q url.Values, def int) (int, error) {
	v := strings.TrimSpace(q.Get("limit"))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, &ParamError{Param: "limit", Value: v, Err: errNotNumber}
	}
	return n, nil
}

// ParseYear reads a year in MinYear..MaxYear; absent means def.
func ParseYear(q url.Values, def int) (int, error) {
	v := strings.TrimSpace(q.Get("year"))
	if v == "" {
		return def, nil
	}
	y, err := strconv.Atoi(v)
	if err != nil || y < MinYear || y > MaxYear {
		return 0, &ParamError{Param: "year", Value: v, Err: errYearRange}
	}
	return y, nil
}

// ParsePeriod reads either all=true or a start and end pair. With no
// selector at all the period covers every date.
func ParsePeriod(q url.Values) (report.Period, error) {
	if v := strings.TrimSpace(q.Get("all")); v != "" {
		all, err := strconv.ParseBool(v)
		if err != nil {
			return report.Period{}, &ParamError{Param: "all", Value: v, Err: errors.New("must be true or false")}
		}
		if all {
			return report.AllDates(), nil
		}
	}

	start, err := ParseDateParam(q, "start", false)
	if err != nil {
		return report.Period{}, err
	}
	end, err := ParseDateParam(q, "end", false)
	if err != nil {
		return report.Period{}, err
	}
	switch {
	case start.IsZero() && end.IsZero():
		return report.AllDates(), nil
	case start.IsZero():
		return report.Period{}, &ParamError{Param: "start", Err: errMissing}
	case end.IsZero():
		return report.Period{}, &ParamError{Param: "end", Err: errMissing}
	}

	p, err := report.Between(start, end)
	if err != nil {
		return report.Period{}, &ParamError{Param: "end", Value: end.Key(), Err: err}
	}
	return p, nil
}
