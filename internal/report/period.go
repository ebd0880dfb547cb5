// Package report aggregates transactions into category and month views.
// Every function returns fresh values and leaves its input untouched.
package report

import (
	"errors"
	"fmt"

	"pousada/internal/core"
)

var ErrInvalidPeriod = errors.New("invalid period")

// Period selects either every transaction or those due within an inclusive
// date range.
type Period struct {
	all   bool
	start core.Date
	end   core.Date
}

// AllDates selects every transaction, including those without a due date.
func AllDates() Period {
	return Period{all: true}
}

// Between selects [start, end]. Both ends are required and end may not
// precede start.
func Between(start, end core.Date) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, fmt.Errorf("%w: both start and end are required", ErrInvalidPeriod)
	}
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: end %s before start %s", ErrInvalidPeriod, end, start)
	}
	return Period{start: start, end: end}, nil
}

func (p Period) IsAll() bool {
	return p.all
}

// Bounds returns the range of a bounded period.
func (p Period) Bounds() (start, end core.Date, ok bool) {
	return p.start, p.end, !p.all
}

// Contains reports whether d falls in the period. A bounded period never
// contains the zero date.
func (p Period) Contains(d core.Date) bool {
	if p.all {
		return true
	}
	if d.IsZero() {
		return false
	}
	return !d.Before(p.start) && !d.After(p.end)
}

func (p Period) String() string {
	if p.all {
		return "all"
	}
	return p.start.Key() + ".." + p.end.Key()
}
