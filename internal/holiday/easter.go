// Package holiday computes the Brazilian national holidays of a year: the
// eight fixed-date holidays plus Carnaval, Sexta-feira Santa and Corpus
// Christi, which move with Easter.
package holiday

import (
	"time"

	"pousada/internal/core"
)

// Easter returns the month and day of Easter Sunday in the Gregorian
// calendar using the anonymous (Meeus/Jones/Butcher) algorithm. The result
// falls between March 22 and April 25 for every year from 1583 on.
func Easter(year int) (time.Month, int) {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	n := h + l - 7*m + 114
	return time.Month(n / 31), n%31 + 1
}

// EasterDate is Easter as a civil date.
func EasterDate(year int) core.Date {
	month, day := Easter(year)
	return core.NewDate(year, int(month), day)
}

var fixed = []struct {
	month, day int
	name       string
}{
	{1, 1, "Confraternização Universal"},
	{4, 21, "Tiradentes"},
	{5, 1, "Dia do Trabalho"},
	{9, 7, "Independência do Brasil"},
	{10, 12, "Nossa Senhora Aparecida"},
	{11, 2, "Finados"},
	{11, 15, "Proclamação da República"},
	{12, 25, "Natal"},
}

var movable = []struct {
	offset int
	name   string
}{
	{-47, "Carnaval"},
	{-2, "Sexta-feira Santa"},
	{60, "Corpus Christi"},
}

// Fixed lists the fixed-date holidays of year in calendar order.
func Fixed(year int) []Holiday {
	out := make([]Holiday, 0, len(fixed))
	for _, f := range fixed {
		out = append(out, Holiday{Date: core.NewDate(year, f.month, f.day), Name: f.name})
	}
	return out
}

// Movable lists the holidays derived from the given Easter Sunday.
func Movable(easter core.Date) []Holiday {
	out := make([]Holiday, 0, len(movable))
	for _, m := range movable {
		out = append(out, Holiday{Date: easter.AddDays(m.offset), Name: m.name})
	}
	return out
}

// ForYear computes the full holiday set of year.
func ForYear(year int) Set {
	return NewSet(append(Fixed(year), Movable(EasterDate(year))...)...)
}
