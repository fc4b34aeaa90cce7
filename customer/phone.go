package customer

import "strings"

// NormalizePhoneE164US normalizes a US phone number to E.164. Accepts
// exactly 10 digits, or 11 digits with a leading 1, after stripping all
// non-digit characters. Returns "" and false otherwise.
func NormalizePhoneE164US(input string) (string, bool) {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case len(digits) == 10:
		return "+1" + digits, true
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits, true
	}
	return "", false
}

// NormalizeEmail case-folds and trims an email so casing differences never
// create duplicate customer identities.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// phoneDigits strips a phone down to digits for free-text search matching.
func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
