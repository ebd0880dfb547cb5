package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"pousada/internal/core"
	"pousada/internal/holiday"
)

func rate(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fullUnit() core.Unit {
	return core.Unit{
		ID:           "chale-1",
		Name:         "Chalé 1",
		BasePrice:    rate("100"),
		WeekendPrice: rate("150"),
		HolidayPrice: rate("200"),
	}
}

func TestQuoteWeekdaysOnly(t *testing.T) {
	e := NewEngine(holiday.NewCalendar())
	unit := core.Unit{ID: "u", Name: "U", BasePrice: rate("100")}
	stay := core.NewStay(core.NewDate(2025, 12, 1), core.NewDate(2025, 12, 4))

	q := e.Quote(stay, unit, decimal.NullDecimal{})

	if !q.Total.Equal(dec("300")) {
		t.Errorf("Total = %s, want 300", q.Total)
	}
	if !q.AveragePerNight.Equal(dec("100")) {
		t.Errorf("AveragePerNight = %s, want 100", q.AveragePerNight)
	}
	if q.NightCount() != 3 {
		t.Fatalf("NightCount() = %d, want 3", q.NightCount())
	}
	for _, n := range q.Nights {
		if n.Tier != TierBase {
			t.Errorf("%s priced as %s, want base", n.Date, n.Tier)
		}
	}
}

func TestNightlyRatePrecedence(t *testing.T) {
	e := NewEngine(holiday.NewCalendar())
	set := holiday.ForYear(2025)

	tests := []struct {
		name     string
		date     core.Date
		unit     core.Unit
		wantRate string
		wantTier string
	}{
		{"weekday", core.NewDate(2025, 4, 17), fullUnit(), "100", TierBase},
		{"holiday on friday", core.NewDate(2025, 4, 18), fullUnit(), "200", TierHoliday},
		{"saturday", core.NewDate(2025, 4, 19), fullUnit(), "150", TierWeekend},
		{"holiday on weekday", core.NewDate(2025, 12, 25), fullUnit(), "200", TierHoliday},
		{
			name:     "holiday without holiday price falls to weekend",
			date:     core.NewDate(2025, 11, 15), // Saturday
			unit:     core.Unit{ID: "u", Name: "U", BasePrice: rate("100"), WeekendPrice: rate("150")},
			wantRate: "150",
			wantTier: TierWeekend,
		},
		{
			name:     "holiday without overrides falls to base",
			date:     core.NewDate(2025, 11, 15),
			unit:     core.Unit{ID: "u", Name: "U", BasePrice: rate("100")},
			wantRate: "100",
			wantTier: TierBase,
		},
		{
			name:     "unset base price is zero",
			date:     core.NewDate(2025, 12, 2),
			unit:     core.Unit{ID: "u", Name: "U", WeekendPrice: rate("150")},
			wantRate: "0",
			wantTier: TierBase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := e.NightlyRate(tt.date, tt.unit, set)
			if !n.Rate.Equal(dec(tt.wantRate)) {
				t.Errorf("Rate = %s, want %s", n.Rate, tt.wantRate)
			}
			if n.Tier != tt.wantTier {
				t.Errorf("Tier = %s, want %s", n.Tier, tt.wantTier)
			}
		})
	}
}

func TestQuoteMixedTiers(t *testing.T) {
	e := NewEngine(holiday.NewCalendar())
	// Thu (base) + Good Friday (holiday) + Sat (weekend)
	stay := core.NewStay(core.NewDate(2025, 4, 17), core.NewDate(2025, 4, 20))
	q := e.Quote(stay, fullUnit(), decimal.NullDecimal{})
	if !q.Total.Equal(dec("450")) {
		t.Errorf("Total = %s, want 450", q.Total)
	}
	if !q.AveragePerNight.Equal(dec("150")) {
		t.Errorf("AveragePerNight = %s, want 150", q.AveragePerNight)
	}
}

func TestQuoteAcrossYearBoundary(t *testing.T) {
	e := NewEngine(holiday.NewCalendar())
	// Wed 2025-12-31 (base) + Thu 2026-01-01 (holiday)
	stay := core.NewStay(core.NewDate(2025, 12, 31), core.NewDate(2026, 1, 2))
	q := e.Quote(stay, fullUnit(), decimal.NullDecimal{})
	if !q.Total.Equal(dec("300")) {
		t.Errorf("Total = %s, want 300", q.Total)
	}
	if q.Nights[1].Tier != TierHoliday {
		t.Errorf("2026-01-01 priced as %s, want holiday", q.Nights[1].Tier)
	}
}

func TestQuoteEmptyStay(t *testing.T) {
	e := NewEngine(nil)
	for _, stay := range []core.Stay{
		core.NewStay(core.NewDate(2025, 12, 4), core.NewDate(2025, 12, 4)),
		core.NewStay(core.NewDate(2025, 12, 4), core.NewDate(2025, 12, 1)),
	} {
		q := e.Quote(stay, fullUnit(), rate("500"))
		if !q.Total.IsZero() || !q.AveragePerNight.IsZero() || q.NightCount() != 0 || q.Overridden {
			t.Errorf("expected zero quote for %s..%s, got %+v", stay.CheckIn, stay.CheckOut, q)
		}
	}
}

func TestQuoteOverride(t *testing.T) {
	e := NewEngine(holiday.NewCalendar())
	unit := core.Unit{ID: "u", Name: "U", BasePrice: rate("100")}
	stay := core.NewStay(core.NewDate(2025, 12, 1), core.NewDate(2025, 12, 4))

	tests := []struct {
		name       string
		override   decimal.NullDecimal
		total      string
		average    string
		overridden bool
	}{
		{"unset", decimal.NullDecimal{}, "300", "100", false},
		{"positive", rate("1000"), "1000", "333.33", true},
		{"zero ignored", decimal.NewNullDecimal(decimal.Zero), "300", "100", false},
		{"negative ignored", decimal.NewNullDecimal(dec("-50")), "300", "100", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := e.Quote(stay, unit, tt.override)
			if !q.Total.Equal(dec(tt.total)) {
				t.Errorf("Total = %s, want %s", q.Total, tt.total)
			}
			if !q.AveragePerNight.Equal(dec(tt.average)) {
				t.Errorf("AveragePerNight = %s, want %s", q.AveragePerNight, tt.average)
			}
			if !q.Computed.Equal(dec("300")) {
				t.Errorf("Computed = %s, want 300", q.Computed)
			}
			if q.Overridden != tt.overridden {
				t.Errorf("Overridden = %v, want %v", q.Overridden, tt.overridden)
			}
		})
	}
}

func TestCustomTierOrder(t *testing.T) {
	// Weekend before holiday: Good Friday resolves to the weekend rate.
	e := NewEngine(holiday.NewCalendar(), WeekendTier(), HolidayTier())
	n := e.NightlyRate(core.NewDate(2025, 4, 18), fullUnit(), holiday.ForYear(2025))
	if n.Tier != TierWeekend {
		t.Errorf("Tier = %s, want weekend", n.Tier)
	}
}

func TestStayTotal(t *testing.T) {
	unit := fullUnit()
	checkIn := core.NewDate(2025, 12, 31)
	checkOut := core.NewDate(2026, 1, 2)

	both := map[int]holiday.Set{2025: holiday.ForYear(2025), 2026: holiday.ForYear(2026)}
	if got := StayTotal(checkIn, checkOut, unit, both); !got.Equal(dec("300")) {
		t.Errorf("StayTotal = %s, want 300", got)
	}

	onlyFirst := map[int]holiday.Set{2025: holiday.ForYear(2025)}
	if got := StayTotal(checkIn, checkOut, unit, onlyFirst); !got.Equal(dec("200")) {
		t.Errorf("StayTotal without 2026 set = %s, want 200", got)
	}

	if got := StayTotal(checkOut, checkIn, unit, both); !got.IsZero() {
		t.Errorf("reversed StayTotal = %s, want 0", got)
	}
}
