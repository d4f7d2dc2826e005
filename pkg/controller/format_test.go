package controller

import (
	"math"
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{21.5, "21.5"},
		{15, "15"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-4.25, "-4.25"},
		{1013.1, "1013.1"},
		{123456789012345680000, "123456789012345680000"},
		{1e21, "1e+21"},
		{-2.5e22, "-2.5e+22"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{1.5e-10, "1.5e-10"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatWind(t *testing.T) {
	dir := 180.0
	if got := FormatWind(10, &dir); got != "10.0 km/h (180°)" {
		t.Fatalf("unexpected wind text %q", got)
	}
	if got := FormatWind(7.26, nil); got != "7.3 km/h" {
		t.Fatalf("unexpected wind text %q", got)
	}
}

func TestTomorrowAndMidnight(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 02:00 UTC on Jan 1 is still Dec 31 in UTC-5.
	now := time.Date(2025, time.January, 1, 2, 0, 0, 0, time.UTC)

	if got := Tomorrow(now, loc); got != "2025-01-01" {
		t.Fatalf("Tomorrow = %q, want 2025-01-01", got)
	}
	if got := Tomorrow(time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC), time.UTC); got != "2025-01-01" {
		t.Fatalf("Tomorrow across year = %q", got)
	}

	mid := Midnight(now, loc)
	if mid.Day() != 31 || mid.Hour() != 0 || mid.Location() != loc {
		t.Fatalf("unexpected midnight %v", mid)
	}
}
