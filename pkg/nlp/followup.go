package nlp

import "strings"

type followUpBucket struct {
	name      string
	keywords  []string
	questions []string
}

// followUpBuckets are tried in priority order; the first bucket with a keyword
// occurring in the topic supplies the suggestions.
var followUpBuckets = []followUpBucket{
	{
		name:     "pricing",
		keywords: []string{"price", "cost", "fee", "rate", "how much", "discount"},
		questions: []string{
			"Do you offer any discounts for long stays?",
			"What payment methods do you accept?",
			"Is food included in the price?",
		},
	},
	{
		name:     "booking",
		keywords: []string{"book", "reserv", "availab", "cancel"},
		questions: []string{
			"What is your cancellation policy?",
			"How far in advance should I book?",
			"Can I change my reservation dates?",
		},
	},
	{
		name:     "services",
		keywords: []string{"service", "daycare", "boarding", "training", "walk"},
		questions: []string{
			"How much do your services cost?",
			"Do you offer dog walking?",
			"Is grooming included in boarding?",
		},
	},
	{
		name:     "requirements",
		keywords: []string{"vaccin", "require", "document", "certificate"},
		questions: []string{
			"Which vaccinations are required?",
			"Do you accept pets with medical conditions?",
			"What should I bring for my pet's stay?",
		},
	},
	{
		name:     "location",
		keywords: []string{"location", "address", "where", "direction", "parking"},
		questions: []string{
			"Is there parking available?",
			"What are your opening hours?",
		},
	},
	{
		name:     "hours",
		keywords: []string{"hour", "open", "clos", "schedule"},
		questions: []string{
			"Are you open on weekends?",
			"Can I pick up my pet after closing time?",
		},
	},
	{
		name:     "rooms",
		keywords: []string{"room", "suite", "kennel", "accommodat"},
		questions: []string{
			"What room sizes do you have?",
			"Can two pets share a room?",
			"Do rooms have cameras I can watch?",
		},
	},
	{
		name:     "grooming",
		keywords: []string{"groom", "bath", "haircut", "nail"},
		questions: []string{
			"How much does grooming cost?",
			"Do you groom cats as well?",
		},
	},
	{
		name:     "contact",
		keywords: []string{"contact", "phone", "email", "call"},
		questions: []string{
			"What are your reception hours?",
			"How do I reach you in an emergency?",
		},
	},
	{
		name:     "pet-type",
		keywords: []string{"dog", "cat", "puppy", "kitten", "rabbit", "bird"},
		questions: []string{
			"Which animals do you accept?",
			"Do you separate cats from dogs?",
			"Is there an age limit for pets?",
		},
	},
}

// defaultFollowUps is returned when no bucket matches the topic.
var defaultFollowUps = []string{
	"What services do you offer?",
	"How much do your services cost?",
}

// Suggest returns follow-up questions for the active topic. The result is a
// fresh slice that callers may keep.
func Suggest(topic string) []string {
	lower := strings.ToLower(topic)

	for _, bucket := range followUpBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(lower, keyword) {
				return append([]string(nil), bucket.questions...)
			}
		}
	}

	return append([]string(nil), defaultFollowUps...)
}
