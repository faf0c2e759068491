package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsValid rejects degenerate input before it enters the dialogue pipeline:
// too short, punctuation-only, or a single character repeated. Curated FAQ
// questions bypass this check.
func IsValid(text string) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < 2 {
		return false
	}

	hasAlnum := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			hasAlnum = true
			break
		}
	}
	if !hasAlnum {
		return false
	}

	if isRepeatedRune(trimmed) {
		return false
	}

	return true
}

func isRepeatedRune(text string) bool {
	var first rune
	for i, r := range text {
		if i == 0 {
			first = r
			continue
		}
		if r != first {
			return false
		}
	}
	return true
}
