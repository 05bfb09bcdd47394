package util

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		code string
		want string
	}{
		{"yen rounds to whole", 208333.33, "JPY", "¥208,333"},
		{"yen lowercase code", 500, "jpy", "¥500"},
		{"negative yen", -141666.67, "JPY", "-¥141,667"},
		{"dollars", 1234.5, "USD", "$1,234.50"},
		{"negative dollars", -1234.5, "USD", "-$1,234.50"},
		{"zero", 0, "EUR", "€0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.v, tt.code); got != tt.want {
				t.Errorf("FormatCurrency(%v, %q) = %q, want %q", tt.v, tt.code, got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{500, "500"},
		{1500, "1.5K"},
		{1500000, "1.5M"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(80.5); got != "80.5%" {
		t.Errorf("FormatPercent(80.5) = %q", got)
	}
}

func TestFormatMonths(t *testing.T) {
	if got := FormatMonths(120); got != "120.0 months" {
		t.Errorf("FormatMonths(120) = %q", got)
	}
	if got := FormatMonths(math.Inf(1)); got != "n/a" {
		t.Errorf("FormatMonths(+Inf) = %q", got)
	}
}
