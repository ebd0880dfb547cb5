package holiday

import (
	"sort"

	"pousada/internal/cache"
	"pousada/internal/core"
)

// Holiday is a named civil date.
type Holiday struct {
	Date core.Date `json:"date"`
	Name string    `json:"name"`
}

// Set is an immutable collection of holidays keyed by date. The zero Set is
// empty and usable. Sets may be shared between goroutines.
type Set struct {
	byKey map[string]Holiday
}

// NewSet builds a set; when two holidays share a date the first one wins.
func NewSet(hs ...Holiday) Set {
	m := make(map[string]Holiday, len(hs))
	for _, h := range hs {
		k := h.Date.Key()
		if _, ok := m[k]; !ok {
			m[k] = h
		}
	}
	return Set{byKey: m}
}

func (s Set) Contains(d core.Date) bool {
	_, ok := s.byKey[d.Key()]
	return ok
}

func (s Set) Lookup(d core.Date) (Holiday, bool) {
	h, ok := s.byKey[d.Key()]
	return h, ok
}

func (s Set) Len() int {
	return len(s.byKey)
}

// List returns the holidays sorted by date.
func (s Set) List() []Holiday {
	out := make([]Holiday, 0, len(s.byKey))
	for _, h := range s.byKey {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Union returns a new set holding the holidays of s and every other set.
func (s Set) Union(others ...Set) Set {
	n := len(s.byKey)
	for _, o := range others {
		n += len(o.byKey)
	}
	m := make(map[string]Holiday, n)
	for _, src := range append([]Set{s}, others...) {
		for k, h := range src.byKey {
			if _, ok := m[k]; !ok {
				m[k] = h
			}
		}
	}
	return Set{byKey: m}
}

// Calendar hands out holiday sets, computing each year once.
type Calendar struct {
	years cache.Memo[int, Set]
}

// Default is the process-wide calendar.
var Default = NewCalendar()

func NewCalendar() *Calendar {
	return &Calendar{}
}

// ForYear returns the (memoised) holiday set of year.
func (c *Calendar) ForYear(year int) Set {
	return c.years.Get(year, ForYear)
}

// ForYears unions the sets of the given years.
func (c *Calendar) ForYears(years ...int) Set {
	switch len(years) {
	case 0:
		return Set{}
	case 1:
		return c.ForYear(years[0])
	}
	sets := make([]Set, 0, len(years)-1)
	for _, y := range years[1:] {
		sets = append(sets, c.ForYear(y))
	}
	return c.ForYear(years[0]).Union(sets...)
}

// ForRange unions the sets of every year touched by [from, to]. A reversed
// range yields the empty set.
func (c *Calendar) ForRange(from, to core.Date) Set {
	if to.Before(from) {
		return Set{}
	}
	years := make([]int, 0, to.Year()-from.Year()+1)
	for y := from.Year(); y <= to.Year(); y++ {
		years = append(years, y)
	}
	return c.ForYears(years...)
}

// Between lists the holidays dated within [from, to], sorted.
func (c *Calendar) Between(from, to core.Date) []Holiday {
	all := c.ForRange(from, to).List()
	out := all[:0]
	for _, h := range all {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out
}
