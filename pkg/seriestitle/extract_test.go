package seriestitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		clean    string
		series   string
		position string
	}{
		{
			name:     "parenthetical hash",
			title:    "The Way of Kings (The Stormlight Archive #1)",
			clean:    "The Way of Kings",
			series:   "The Stormlight Archive",
			position: "1",
		},
		{
			name:     "parenthetical comma book",
			title:    "Words of Radiance (The Stormlight Archive, Book 2)",
			clean:    "Words of Radiance",
			series:   "The Stormlight Archive",
			position: "2",
		},
		{
			name:     "parenthetical book without comma",
			title:    "Oathbringer (The Stormlight Archive Book 3)",
			clean:    "Oathbringer",
			series:   "The Stormlight Archive",
			position: "3",
		},
		{
			name:     "parenthetical vol",
			title:    "Berserk (Berserk, Vol 1)",
			clean:    "Berserk",
			series:   "Berserk",
			position: "1",
		},
		{
			name:     "parenthetical dash book",
			title:    "Dawnshard (Stormlight - Book 3.5)",
			clean:    "Dawnshard",
			series:   "Stormlight",
			position: "3.5",
		},
		{
			name:     "leading colon book",
			title:    "Mistborn: Book 1 - The Final Empire",
			clean:    "The Final Empire",
			series:   "Mistborn",
			position: "1",
		},
		{
			name:     "leading hash dash",
			title:    "Dresden Files #4 - Summer Knight",
			clean:    "Summer Knight",
			series:   "Dresden Files",
			position: "4",
		},
		{
			name:     "trailing book",
			title:    "The Wandering Inn Book 2",
			clean:    "The Wandering Inn",
			series:   "The Wandering Inn",
			position: "2",
		},
		{
			name:     "trailing hash",
			title:    "Cradle #7",
			clean:    "Cradle",
			series:   "Cradle",
			position: "7",
		},
		{
			name:     "decimal position",
			title:    "Edgedancer (The Stormlight Archive #2.5)",
			clean:    "Edgedancer",
			series:   "The Stormlight Archive",
			position: "2.5",
		},
		{
			name:     "case insensitive",
			title:    "elantris BOOK 1",
			clean:    "elantris",
			series:   "elantris",
			position: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, series, position := Extract(tt.title)
			assert.Equal(t, tt.clean, clean)
			if assert.NotNil(t, series) {
				assert.Equal(t, tt.series, *series)
			}
			if assert.NotNil(t, position) {
				assert.Equal(t, tt.position, *position)
			}
		})
	}
}

func TestExtractNoMatch(t *testing.T) {
	clean, series, position := Extract("The Emperor's Soul")
	assert.Equal(t, "The Emperor's Soul", clean)
	assert.Nil(t, series)
	assert.Nil(t, position)
}

func TestExtractShortCleanTitleKeepsOriginal(t *testing.T) {
	// Stripping the series span would leave just "IT", which is too short, so
	// the original title is kept.
	clean, series, _ := Extract("IT (Derry #1)")
	assert.Equal(t, "IT (Derry #1)", clean)
	assert.NotNil(t, series)
}

func TestExtractIdempotentOnCleanTitle(t *testing.T) {
	titles := []string{
		"The Way of Kings (The Stormlight Archive #1)",
		"Mistborn: Book 1 - The Final Empire",
		"The Wandering Inn Book 2",
		"Cradle #7",
		"Dawnshard (Stormlight - Book 3.5)",
	}
	for _, title := range titles {
		clean, _, _ := Extract(title)
		again, series, position := Extract(clean)
		assert.Equal(t, clean, again)
		assert.Nil(t, series)
		assert.Nil(t, position)
	}
}
