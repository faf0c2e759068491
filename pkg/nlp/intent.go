package nlp

import (
	"regexp"
	"strings"
)

// helpPatterns recognize explicit requests to escalate to a person. They are
// evaluated in order and the first match wins.
var helpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(talk|speak|chat)\s+(to|with)\s+(a\s+|an\s+|the\s+)?(human|person|someone|staff|agent|manager|receptionist)\b`),
	regexp.MustCompile(`(?i)\b(phone|telephone|contact)\s+number\b`),
	regexp.MustCompile(`(?i)\b(call|phone|ring)\s+(you|us|me|reception|the\s+hotel)\b`),
	regexp.MustCompile(`(?i)\breal\s+person\b`),
	regexp.MustCompile(`(?i)\bcustomer\s+(service|support|care)\b`),
	regexp.MustCompile(`(?i)\b(urgent|emergency|asap|right\s+now)\b`),
}

// helpPhrases are weaker signals. A single occurrence is not enough; two or
// more corroborating phrases are required so one accidental substring does not
// trigger an escalation.
var helpPhrases = []string{
	"help",
	"contact",
	"phone",
	"call",
	"speak",
	"human",
	"agent",
	"staff",
	"reception",
	"number",
	"reach you",
	"talk to",
}

// IsHelpRequest reports whether text is a request for human help or contact
// information rather than a question for the knowledge base.
func IsHelpRequest(text string) bool {
	clean := strings.ToLower(strings.TrimSpace(text))
	if clean == "help" {
		return true
	}

	for _, pattern := range helpPatterns {
		if pattern.MatchString(clean) {
			return true
		}
	}

	hits := 0
	for _, phrase := range helpPhrases {
		if strings.Contains(clean, phrase) {
			hits++
		}
	}
	return hits >= 2
}
