// Package pricing resolves the nightly rate of a unit for each date of a stay
// and sums the stay total.
//
// Rates are resolved through an ordered list of tiers. Each tier pairs a
// predicate over the date with the unit rate it selects. The first tier whose
// predicate holds and whose rate is set on the unit wins; when none does, the
// unit's base price applies.
package pricing

import (
	"github.com/shopspring/decimal"

	"pousada/internal/core"
	"pousada/internal/holiday"
)

// Tier names.
const (
	TierHoliday = "holiday"
	TierWeekend = "weekend"
	TierBase    = "base"
)

// Tier is one priority level of the rate table.
type Tier struct {
	Name    string
	Applies func(d core.Date, holidays holiday.Set) bool
	Rate    func(u core.Unit) decimal.NullDecimal
}

// HolidayTier selects HolidayPrice on national holidays.
func HolidayTier() Tier {
	return Tier{
		Name:    TierHoliday,
		Applies: func(d core.Date, holidays holiday.Set) bool { return holidays.Contains(d) },
		Rate:    func(u core.Unit) decimal.NullDecimal { return u.HolidayPrice },
	}
}

// WeekendTier selects WeekendPrice on Friday, Saturday and Sunday nights.
func WeekendTier() Tier {
	return Tier{
		Name:    TierWeekend,
		Applies: func(d core.Date, _ holiday.Set) bool { return d.IsWeekend() },
		Rate:    func(u core.Unit) decimal.NullDecimal { return u.WeekendPrice },
	}
}

// DefaultTiers is holiday then weekend; a holiday outranks a weekend.
func DefaultTiers() []Tier {
	return []Tier{HolidayTier(), WeekendTier()}
}

// baseRate is the terminal fallback. An unset base price prices the night at 0.
func baseRate(u core.Unit) decimal.Decimal {
	if u.BasePrice.Valid {
		return u.BasePrice.Decimal
	}
	return decimal.Zero
}
