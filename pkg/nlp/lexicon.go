package nlp

// lexicon is the static topic table for the pet hotel domain. Entries are
// checked in slice order by Classify; on equal scores the earlier entry wins,
// so reordering this table changes classification results.
var lexicon = []Category{
	{
		ID:       "booking",
		Title:    "Booking & Reservations",
		Keywords: []string{"book", "reserv", "check in", "drop off", "availab", "cancel"},
		Subtopics: []string{
			"Making a reservation",
			"Changing reservation dates",
			"Cancellation policy",
		},
	},
	{
		ID:       "pricing",
		Title:    "Pricing & Payment",
		Keywords: []string{"price", "cost", "fee", "rate", "how much", "discount"},
		Subtopics: []string{
			"Nightly rates",
			"Long-stay discounts",
			"Payment methods",
		},
	},
	{
		ID:       "services",
		Title:    "Services",
		Keywords: []string{"service", "daycare", "boarding", "training", "walk", "playtime"},
		Subtopics: []string{
			"Daycare",
			"Overnight boarding",
			"Dog walking",
			"Training sessions",
		},
	},
	{
		ID:       "rooms",
		Title:    "Rooms & Accommodation",
		Keywords: []string{"room", "suite", "kennel", "enclosure", "accommodat", "bed"},
		Subtopics: []string{
			"Room sizes",
			"Shared rooms",
			"Room cameras",
		},
	},
	{
		ID:       "grooming",
		Title:    "Grooming",
		Keywords: []string{"groom", "bath", "haircut", "nail", "trim", "fur"},
		Subtopics: []string{
			"Bathing",
			"Haircuts",
			"Nail trimming",
		},
	},
	{
		ID:       "requirements",
		Title:    "Stay Requirements",
		Keywords: []string{"vaccin", "require", "document", "certificate", "medical", "health"},
		Subtopics: []string{
			"Required vaccinations",
			"Health certificates",
			"Medical conditions",
		},
	},
	{
		ID:       "location",
		Title:    "Location & Directions",
		Keywords: []string{"location", "address", "where", "direction", "parking", "map"},
		Subtopics: []string{
			"Address",
			"Parking",
			"Directions",
		},
	},
	{
		ID:       "hours",
		Title:    "Opening Hours",
		Keywords: []string{"hour", "open", "clos", "schedule", "weekend", "holiday"},
		Subtopics: []string{
			"Weekday hours",
			"Weekend hours",
			"Holiday schedule",
		},
	},
	{
		ID:       "contact",
		Title:    "Contact",
		Keywords: []string{"contact", "phone", "email", "call", "number", "reach"},
		Subtopics: []string{
			"Reception phone",
			"Email",
			"Emergency contact",
		},
	},
	{
		ID:       "pets",
		Title:    "Accepted Pets",
		Keywords: []string{"dog", "cat", "puppy", "kitten", "rabbit", "bird"},
		Subtopics: []string{
			"Accepted animals",
			"Age limits",
			"Cat and dog separation",
		},
	},
}

// Lexicon returns the shared topic table. Callers must not mutate it.
func Lexicon() []Category {
	return lexicon
}

func CategoryByID(id string) (Category, bool) {
	for _, cat := range lexicon {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}
