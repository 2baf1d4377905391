package utils

import (
	"strings"
	"testing"
)

func TestSanitizePaymentMessage(t *testing.T) {
	if got := SanitizePaymentMessage("Cup 2026/2027"); got != "Cup 2026-2027" {
		t.Errorf("slash not replaced: %q", got)
	}

	long := strings.Repeat("x", 80)
	if got := SanitizePaymentMessage(long); len([]rune(got)) != 50 {
		t.Errorf("long message not capped: %d runes", len([]rune(got)))
	}

	// Rune-safe truncation
	swedish := strings.Repeat("å", 60)
	got := SanitizePaymentMessage(swedish)
	if len([]rune(got)) != 50 || !strings.HasPrefix(got, "å") {
		t.Errorf("multibyte truncation wrong: %q", got)
	}
}

func TestFirstWord(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Away game at Rivals", "Away"},
		{"  padded  ", "padded"},
		{"", ""},
		{"single", "single"},
	}
	for _, tc := range cases {
		if got := FirstWord(tc.in); got != tc.want {
			t.Errorf("FirstWord(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeAlias(t *testing.T) {
	cases := []struct{ in, want string }{
		{"070-123 45 67", "46701234567"},
		{"0701234567", "46701234567"},
		{"+46 70 123 45 67", "46701234567"},
		{"46701234567", "46701234567"},
	}
	for _, tc := range cases {
		if got := NormalizeAlias(tc.in); got != tc.want {
			t.Errorf("NormalizeAlias(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
