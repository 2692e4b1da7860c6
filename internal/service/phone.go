package service

import "strings"

// NormalizePhone canonicalizes a raw WhatsApp sender id into the dialing-code-qualified
// digit string used as the conversation state key.
//
// Every non-digit is stripped first. Ten digits is a local number and gets the default
// country code prepended; eleven to fifteen digits already carry a country code and
// pass through. Anything else passes through as bare digits. The empty string is
// returned only when the input has no digits at all.
func NormalizePhone(raw, defaultCountryCode string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case digits == "":
		return ""
	case len(digits) == 10:
		return defaultCountryCode + digits
	default:
		return digits
	}
}
