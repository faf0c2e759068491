package nlp

import "strings"

// continuationPhrases are generic ways of staying on the current topic. Any
// one of them marks the message as a continuation regardless of content.
var continuationPhrases = []string{
	"tell me more",
	"more about",
	"what about",
	"what else",
	"how about",
	"why",
	"also",
	"and the",
	"is that",
	"really",
	"explain",
}

const (
	// shortReplyWordLimit: replies at or under this many words are assumed to
	// continue the active topic.
	shortReplyWordLimit = 5

	// topicOverlapRatio of the topic's significant words must reappear in the
	// message for the overlap rule to pass.
	topicOverlapRatio = 0.3

	// topicWordMinLen filters out short filler words when extracting the
	// topic's significant words.
	topicWordMinLen = 3
)

type relevanceRule struct {
	name    string
	applies func(message, topic string) bool
}

// relevanceRules are evaluated in order; the first rule that applies marks the
// message as related. Keeping them as a table lets each rule be tested and
// reordered on its own.
var relevanceRules = []relevanceRule{
	{
		name: "continuation-phrase",
		applies: func(message, _ string) bool {
			lower := strings.ToLower(message)
			for _, phrase := range continuationPhrases {
				if strings.Contains(lower, phrase) {
					return true
				}
			}
			return false
		},
	},
	{
		name: "short-reply",
		applies: func(message, _ string) bool {
			return len(strings.Fields(message)) <= shortReplyWordLimit
		},
	},
	{
		name: "same-category",
		applies: func(message, topic string) bool {
			messageCat, okMessage := Classify(message)
			topicCat, okTopic := Classify(topic)
			return okMessage && okTopic && messageCat == topicCat
		},
	},
	{
		name: "topic-word-overlap",
		applies: func(message, topic string) bool {
			topicWords := significantWords(topic)
			if len(topicWords) == 0 {
				return false
			}

			normalized := Normalize(message)
			overlap := 0
			for _, word := range topicWords {
				if strings.Contains(normalized, word) {
					overlap++
				}
			}

			needed := int(topicOverlapRatio * float64(len(topicWords)))
			if needed < 1 {
				needed = 1
			}
			return overlap >= needed
		},
	},
}

// IsRelated decides whether message continues the conversation about topic.
func IsRelated(message, topic string) bool {
	for _, rule := range relevanceRules {
		if rule.applies(message, topic) {
			return true
		}
	}
	return false
}

func significantWords(topic string) []string {
	var words []string
	for _, word := range Words(topic) {
		if len(word) > topicWordMinLen {
			words = append(words, word)
		}
	}
	return words
}
