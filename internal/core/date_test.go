package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-04-20", "2025-04-20", false},
		{" 2024-02-29 ", "2024-02-29", false},
		{"2025-02-29", "", true}, // not a leap year
		{"2025-02-30", "", true},
		{"2025-13-01", "", true},
		{"20/04/2025", "", true},
		{"2025-4-20", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("expected *ParseError, got %T", err)
				}
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("expected ErrInvalidDate in chain, got %v", err)
				}
				return
			}
			if got.Key() != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Key(), tt.want)
			}
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("")
	if err != nil || !d.IsZero() {
		t.Fatalf("empty should be absent, got %v err=%v", d, err)
	}
	if _, err := ParseOptionalDate("nope"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to Date
		want     int
	}{
		{"same day", NewDate(2025, 1, 1), NewDate(2025, 1, 1), 0},
		{"forward", NewDate(2025, 1, 1), NewDate(2025, 1, 31), 30},
		{"backward", NewDate(2025, 1, 31), NewDate(2025, 1, 1), -30},
		{"leap february", NewDate(2024, 2, 28), NewDate(2024, 3, 1), 2},
		{"year boundary", NewDate(2025, 12, 31), NewDate(2026, 1, 1), 1},
		{"across dst in other zones", NewDate(2025, 3, 1), NewDate(2025, 4, 1), 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDateOfDropsClockAndZone(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	d := DateOf(time.Date(2025, 6, 19, 23, 30, 0, 0, loc))
	if d.Key() != "2025-06-19" {
		t.Fatalf("expected local calendar day kept, got %s", d.Key())
	}
	if d.Location() != time.UTC || d.Hour() != 0 {
		t.Fatalf("expected midnight UTC, got %v", d.Time)
	}
}

func TestIsWeekend(t *testing.T) {
	// 2025-12-01 is a Monday
	want := map[int]bool{1: false, 2: false, 3: false, 4: false, 5: true, 6: true, 7: true}
	for day, weekend := range want {
		if got := NewDate(2025, 12, day).IsWeekend(); got != weekend {
			t.Errorf("2025-12-%02d IsWeekend = %v, want %v", day, got, weekend)
		}
	}
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Due  Date `json:"due"`
		Paid Date `json:"paid"`
	}
	b, err := json.Marshal(payload{Due: NewDate(2025, 4, 18)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"due":"2025-04-18","paid":null}` {
		t.Fatalf("unexpected json: %s", b)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"due":"2025-06-19","paid":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Due.Key() != "2025-06-19" || !p.Paid.IsZero() {
		t.Fatalf("unexpected payload: %+v", p)
	}
	if err := json.Unmarshal([]byte(`{"due":"2025-06-31"}`), &p); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}
