package utils

import (
	"testing"
	"time"
)

func TestRoundToCents(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{"exact", 120.00, 120.00},
		{"half up", 10.005, 10.01},
		{"down", 10.004, 10.00},
		{"binary artifact", 0.1 + 0.2, 0.30},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundToCents(tt.amount); got != tt.want {
				t.Errorf("RoundToCents(%v) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestCeilToInt(t *testing.T) {
	tests := []struct {
		name        string
		numerator   float64
		denominator float64
		want        int
	}{
		{"exact division", 100, 0.2, 500},
		{"rounds up", 299, 0.08, 3738},
		{"starter breakeven", 149, 0.05, 2980},
		{"zero denominator", 100, 0, 0},
		{"negative denominator", 100, -0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CeilToInt(tt.numerator, tt.denominator); got != tt.want {
				t.Errorf("CeilToInt(%v, %v) = %d, want %d", tt.numerator, tt.denominator, got, tt.want)
			}
		})
	}
}

func TestAddBusinessDays(t *testing.T) {
	// 2026-08-27 is a Thursday
	thursday := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	friday := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		from time.Time
		days int
		want time.Time
	}{
		{"thursday plus two skips weekend", thursday, 2, time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)},
		{"friday plus one lands monday", friday, 1, time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)},
		{"friday plus two lands tuesday", friday, 2, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)},
		{"zero days", thursday, 0, thursday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddBusinessDays(tt.from, tt.days); !got.Equal(tt.want) {
				t.Errorf("AddBusinessDays(%v, %d) = %v, want %v", tt.from, tt.days, got, tt.want)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	at := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	if got := MonthKey(at); got != "2026-08" {
		t.Errorf("MonthKey = %q, want %q", got, "2026-08")
	}
}

func TestMonthStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		offset int
		want   time.Time
	}{
		{"current month", 0, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"previous month", 1, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"across year boundary", 3, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthStart(now, tt.offset); !got.Equal(tt.want) {
				t.Errorf("MonthStart(now, %d) = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}
