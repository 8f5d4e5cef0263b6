package utils

import (
	"regexp"
	"strings"
)

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

func IsValidPhone(phone string) bool {
	cleaned := regexp.MustCompile(`[^\d+]`).ReplaceAllString(phone, "")

	// Basic E.164 format validation
	return phoneRegex.MatchString(cleaned)
}

func NormalizePhone(phone string) string {
	normalized := regexp.MustCompile(`[^\d+]`).ReplaceAllString(phone, "")

	if !strings.HasPrefix(normalized, "+") {
		normalized = "+" + normalized
	}

	return normalized
}

// dialing prefix -> ISO country code, for the markets the platform serves
var dialingPrefixes = map[string]string{
	"+221": "SN",
	"+225": "CI",
	"+223": "ML",
	"+226": "BF",
	"+228": "TG",
	"+229": "BJ",
	"+227": "NE",
	"+224": "GN",
	"+237": "CM",
	"+241": "GA",
	"+212": "MA",
	"+33":  "FR",
}

// CountryFromPhone guesses the ISO country code from a phone number's
// dialing prefix. Returns "" when no known prefix matches.
func CountryFromPhone(phone string) string {
	normalized := NormalizePhone(phone)

	for prefix, country := range dialingPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return country
		}
	}

	return ""
}
