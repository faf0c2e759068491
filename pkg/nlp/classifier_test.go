package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantID  string
		wantHit bool
	}{
		{
			name:    "pricing question",
			text:    "How much do your services cost?",
			wantID:  "pricing",
			wantHit: true,
		},
		{
			name:    "rooms question",
			text:    "What are your room options for pets?",
			wantID:  "rooms",
			wantHit: true,
		},
		{
			name:    "single strong keyword",
			text:    "parking",
			wantID:  "location",
			wantHit: true,
		},
		{
			name:    "grooming with diacritics and punctuation",
			text:    "Grooming... when?!",
			wantID:  "grooming",
			wantHit: true,
		},
		{
			name:    "no category reaches threshold",
			text:    "zzz qqq www",
			wantHit: false,
		},
		{
			name:    "empty input",
			text:    "",
			wantHit: false,
		},
		{
			name:    "punctuation only",
			text:    "?!...",
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Classify(tt.text)
			require.Equal(t, tt.wantHit, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	const text = "Do you have any rooms available next weekend?"

	firstID, firstOK := Classify(text)
	for i := 0; i < 50; i++ {
		id, ok := Classify(text)
		require.Equal(t, firstOK, ok)
		require.Equal(t, firstID, id)
	}
}

// Equal scores must resolve to the category that appears earlier in the
// lexicon. "book a bath" scores booking and grooming identically (one keyword
// each out of six); booking comes first in the table.
func TestClassifyTieKeepsEarlierCategory(t *testing.T) {
	id, ok := Classify("book a bath")
	require.True(t, ok)
	assert.Equal(t, "booking", id)
}

func TestLexiconOrderIsFrozen(t *testing.T) {
	wantOrder := []string{
		"booking", "pricing", "services", "rooms", "grooming",
		"requirements", "location", "hours", "contact", "pets",
	}

	var gotOrder []string
	for _, cat := range Lexicon() {
		gotOrder = append(gotOrder, cat.ID)
	}
	assert.Equal(t, wantOrder, gotOrder)
}

func TestCategoryByID(t *testing.T) {
	cat, ok := CategoryByID("grooming")
	require.True(t, ok)
	assert.Equal(t, "Grooming", cat.Title)

	_, ok = CategoryByID("spa")
	assert.False(t, ok)
}
