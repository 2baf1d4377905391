package utils

import (
	"strings"
)

// maximum message length the payment provider accepts
const maxPaymentMessageLen = 50

// SanitizePaymentMessage makes a string safe for the gateway message field:
// path-unsafe characters are replaced and the result is capped at 50 chars.
func SanitizePaymentMessage(s string) string {
	s = strings.ReplaceAll(s, "/", "-")

	runes := []rune(s)
	if len(runes) > maxPaymentMessageLen {
		runes = runes[:maxPaymentMessageLen]
	}
	return string(runes)
}

// FirstWord returns the first whitespace-separated word of s.
func FirstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// NormalizeAlias converts a phone number to the gateway alias format:
// digits only, national prefix 0 rewritten to country code 46.
func NormalizeAlias(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if strings.HasPrefix(digits, "0") {
		digits = "46" + digits[1:]
	}
	return digits
}
