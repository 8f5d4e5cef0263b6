package utils

import "testing"

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+221771234567", true},
		{"221771234567", true},
		{"77 123 45 67", true},
		{"+33 6 12 34 56 78", true},
		{"not-a-phone", false},
		{"", false},
		{"+0123", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := IsValidPhone(tt.phone); got != tt.want {
				t.Errorf("IsValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+221 77 123 45 67", "+221771234567"},
		{"221771234567", "+221771234567"},
		{"(+33) 6-12-34-56-78", "+33612345678"},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCountryFromPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"+221771234567", "SN"},
		{"+224621234567", "GN"},
		{"+33612345678", "FR"},
		{"+212612345678", "MA"},
		{"+15551234567", ""},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := CountryFromPhone(tt.phone); got != tt.want {
				t.Errorf("CountryFromPhone(%q) = %q, want %q", tt.phone, got, tt.want)
			}
		})
	}
}
