package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{"1.005", "1.01", true}, // half-up rounding
		{"12.344", "12.34", true},
		{" 2.50 ", "2.5", true},
		{".5", "0.5", true},
		{"-1", "", false},
		{"+1", "", false},
		{"0", "", false},
		{"0.001", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseOptionalRate(t *testing.T) {
	got, err := ParseOptionalRate("  ")
	if err != nil || got.Valid {
		t.Fatalf("empty should be unset, got %+v err=%v", got, err)
	}
	got, err = ParseOptionalRate("180,00")
	if err != nil || !got.Valid || !got.Decimal.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("expected 180, got %+v err=%v", got, err)
	}
	got, err = ParseOptionalRate("0.00")
	if err != nil || !got.Valid || !got.Decimal.IsZero() {
		t.Fatalf("zero rate should be set to 0, got %+v err=%v", got, err)
	}
	for _, in := range []string{"x", "-1", "+0"} {
		if _, err := ParseOptionalRate(in); err == nil {
			t.Errorf("%q expected error", in)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"12.5", "R$ 12,50"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.8", "R$ 1.234.567,80"},
		{"-300", "-R$ 300,00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatBRL(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("FormatBRL(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
