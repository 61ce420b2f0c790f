// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "BR"

// digitsPattern accepts a normalized number: 8 to 15 digits with an optional
// leading +. This is the minimum bar for a dialable lead phone.
var digitsPattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns
// the trimmed input.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// Digits strips every non-digit character, keeping a single leading +.
func Digits(input string) string {
	trimmed := strings.TrimSpace(input)
	var b strings.Builder
	for i, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsDialable reports whether the input normalizes to a plausible phone number.
// Numbers that libphonenumber recognizes as valid pass outright; otherwise the
// stripped digits must match the 8-15 digit pattern.
func IsDialable(input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return false
	}

	if number, err := phonenumbers.Parse(trimmed, defaultRegion); err == nil {
		if phonenumbers.IsValidNumber(number) {
			return true
		}
	}

	return digitsPattern.MatchString(Digits(trimmed))
}
