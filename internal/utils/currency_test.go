package utils

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{"west african franc", 7000, "XOF", "7000 FCFA"},
		{"central african franc", 9000, "XAF", "9000 FCFA"},
		{"guinean franc", 95000, "GNF", "95000 FG"},
		{"dirham", 150, "MAD", "DH150.00"},
		{"euro", 15, "EUR", "€15.00"},
		{"franc amounts drop decimals", 6000.4, "XOF", "6000 FCFA"},
		{"unknown currency falls back to XOF", 7000, "ZZZ", "7000 FCFA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.amount, tt.currency); got != tt.want {
				t.Errorf("FormatCurrency(%v, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}

func TestCurrencySymbol(t *testing.T) {
	if got := CurrencySymbol("GNF"); got != "FG" {
		t.Errorf("CurrencySymbol(GNF) = %q, want FG", got)
	}
	if got := CurrencySymbol("nope"); got != "FCFA" {
		t.Errorf("CurrencySymbol(nope) = %q, want FCFA fallback", got)
	}
}
