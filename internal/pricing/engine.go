package pricing

import (
	"github.com/shopspring/decimal"

	"pousada/internal/core"
	"pousada/internal/holiday"
)

// Night is the resolved rate of one date of a stay.
type Night struct {
	Date core.Date       `json:"date"`
	Rate decimal.Decimal `json:"rate"`
	Tier string          `json:"tier"`
}

// Quote is the priced stay.
type Quote struct {
	UnitID          string          `json:"unit_id"`
	CheckIn         core.Date       `json:"check_in"`
	CheckOut        core.Date       `json:"check_out"`
	Nights          []Night         `json:"nights"`
	Computed        decimal.Decimal `json:"computed"`
	Total           decimal.Decimal `json:"total"`
	AveragePerNight decimal.Decimal `json:"average_per_night"`
	Overridden      bool            `json:"overridden"`
}

// NightCount is the number of priced nights.
func (q Quote) NightCount() int {
	return len(q.Nights)
}

// Engine prices stays. It keeps no state between calls and is safe for
// concurrent use.
type Engine struct {
	calendar *holiday.Calendar
	tiers    []Tier
}

// NewEngine builds an engine over cal. With no tiers, DefaultTiers is used.
// A nil calendar means holiday.Default.
func NewEngine(cal *holiday.Calendar, tiers ...Tier) *Engine {
	if cal == nil {
		cal = holiday.Default
	}
	if len(tiers) == 0 {
		tiers = DefaultTiers()
	}
	return &Engine{calendar: cal, tiers: append([]Tier(nil), tiers...)}
}

// NightlyRate resolves the rate of d for u against holidays.
func (e *Engine) NightlyRate(d core.Date, u core.Unit, holidays holiday.Set) Night {
	for _, t := range e.tiers {
		if !t.Applies(d, holidays) {
			continue
		}
		if r := t.Rate(u); r.Valid {
			return Night{Date: d, Rate: r.Decimal, Tier: t.Name}
		}
	}
	return Night{Date: d, Rate: baseRate(u), Tier: TierBase}
}

// Quote prices stay for u. override replaces the computed total when it is
// set and positive. A stay without nights yields a zero quote.
func (e *Engine) Quote(stay core.Stay, u core.Unit, override decimal.NullDecimal) Quote {
	q := Quote{
		UnitID:          u.ID,
		CheckIn:         stay.CheckIn,
		CheckOut:        stay.CheckOut,
		Nights:          []Night{},
		Computed:        decimal.Zero,
		Total:           decimal.Zero,
		AveragePerNight: decimal.Zero,
	}
	n := stay.Nights()
	if n == 0 {
		return q
	}

	holidays := e.calendar.ForYears(stay.Years()...)
	q.Nights = make([]Night, 0, n)
	for _, d := range stay.Dates() {
		night := e.NightlyRate(d, u, holidays)
		q.Nights = append(q.Nights, night)
		q.Computed = q.Computed.Add(night.Rate)
	}

	q.Total = q.Computed
	if override.Valid && override.Decimal.IsPositive() {
		q.Total = override.Decimal
		q.Overridden = true
	}
	q.AveragePerNight = q.Total.DivRound(decimal.NewFromInt(int64(n)), 2)
	return q
}

// StayTotal sums the nightly rates of [checkIn, checkOut) using the caller's
// per-year holiday sets. Years missing from holidaySetsByYear have no
// holidays. It returns 0 when checkOut is not after checkIn.
func StayTotal(checkIn, checkOut core.Date, u core.Unit, holidaySetsByYear map[int]holiday.Set) decimal.Decimal {
	stay := core.NewStay(checkIn, checkOut)
	sets := make([]holiday.Set, 0, len(holidaySetsByYear))
	for _, y := range stay.Years() {
		sets = append(sets, holidaySetsByYear[y])
	}
	var holidays holiday.Set
	if len(sets) > 0 {
		holidays = sets[0].Union(sets[1:]...)
	}

	e := defaultEngine
	total := decimal.Zero
	for _, d := range stay.Dates() {
		total = total.Add(e.NightlyRate(d, u, holidays).Rate)
	}
	return total
}

var defaultEngine = NewEngine(nil)
