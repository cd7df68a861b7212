package money

import "testing"

func TestAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50000, "500.00"},
		{120000, "1200.00"},
		{220000, "2200.00"},
		{123456789, "1234567.89"},
		{-9950, "-99.50"},
	}
	for _, tt := range tests {
		if got := Amount(tt.cents); got != tt.want {
			t.Fatalf("Amount(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "Rs. 0.00"},
		{50000, "Rs. 500.00"},
		{220000, "Rs. 2,200.00"},
		{123456789, "Rs. 1,234,567.89"},
		{-9950, "Rs. -99.50"},
	}
	for _, tt := range tests {
		if got := Display(tt.cents); got != tt.want {
			t.Fatalf("Display(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
