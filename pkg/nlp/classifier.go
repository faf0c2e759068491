package nlp

import "strings"

// classifyThreshold is the minimum keyword-coverage score a category must
// reach before Classify reports a match.
const classifyThreshold = 0.15

// Classify scores text against every lexicon category and returns the ID of
// the best match, or false when no category reaches the threshold.
//
// Scoring is keyword coverage: the fraction of a category's keywords that
// occur as substrings of the normalized text. A later category replaces the
// current best only on a strictly greater score, so equal scores resolve to
// the category that appears earlier in the table.
func Classify(text string) (string, bool) {
	clean := Normalize(text)
	if clean == "" {
		return "", false
	}

	var bestID string
	var bestScore float64

	for _, cat := range lexicon {
		if len(cat.Keywords) == 0 {
			continue
		}

		matches := 0
		for _, keyword := range cat.Keywords {
			if strings.Contains(clean, keyword) {
				matches++
			}
		}

		score := float64(matches) / float64(len(cat.Keywords))
		if score > bestScore {
			bestScore = score
			bestID = cat.ID
		}
	}

	if bestScore >= classifyThreshold {
		return bestID, true
	}
	return "", false
}
