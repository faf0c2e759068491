package nlp

// Category is one entry of the static topic lexicon. The table is loaded once
// at process start and shared read-only across sessions; its order matters for
// classification tie-breaks.
type Category struct {
	ID        string
	Title     string
	Keywords  []string
	Subtopics []string
}
