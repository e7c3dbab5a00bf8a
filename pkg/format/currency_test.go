package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Simple amount", 50.0, "$50.00"},
		{"Thousands separator", 1234.56, "$1,234.56"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -1234.56, "-$1,234.56"},
		{"Zero", 0.0, "$0.00"},
		{"Sub-dollar", 0.05, "$0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	if got := NumericCurrency(1234.5); got != "1,234.50" {
		t.Errorf("NumericCurrency(1234.5) = %q, expected %q", got, "1,234.50")
	}
	if got := NumericCurrency(-42.0); got != "-42.00" {
		t.Errorf("NumericCurrency(-42.0) = %q, expected %q", got, "-42.00")
	}
}
