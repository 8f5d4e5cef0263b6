package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	promoCodeRegex = regexp.MustCompile(`^[A-Z0-9]{4,16}$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidName(name string) bool {
	if len(strings.TrimSpace(name)) < 2 {
		return false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

// CanonicalPromoCode returns the canonical form a code is stored and looked
// up under: trimmed and uppercased.
func CanonicalPromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func IsValidPromoCodeFormat(code string) bool {
	return promoCodeRegex.MatchString(CanonicalPromoCode(code))
}

func SanitizeString(input string) string {
	// Remove HTML tags
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")

	return strings.TrimSpace(cleaned)
}
