package metadata

import (
	"testing"

	"github.com/bookscoutapp/bookscout/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupKey(t *testing.T) {
	assert.Equal(t, "isbn13:9780765326355", DedupKey(Record{Title: "X", ISBN: "0765326353", ISBN13: "9780765326355", ASIN: "B003P2WO5E"}))
	assert.Equal(t, "isbn:0765326353", DedupKey(Record{Title: "X", ISBN: "0765326353", ASIN: "B003P2WO5E"}))
	assert.Equal(t, "asin:B003P2WO5E", DedupKey(Record{Title: "X", ASIN: "B003P2WO5E"}))
	assert.Equal(t, "title:the way of kings", DedupKey(Record{Title: "  The Way of Kings "}))
}

func TestMergeDeduplicatesAcrossSources(t *testing.T) {
	openlibrary := []Record{{
		Title:   "The Way of Kings (The Stormlight Archive #1)",
		ISBN13:  "9780765326355",
		Sources: models.SourceList{SourceOpenLibrary},
	}}
	googlebooks := []Record{{
		Title:       "The Way of Kings",
		ISBN13:      "9780765326355",
		Description: "An epic fantasy novel.",
		CoverURL:    "http://example.com/cover.jpg",
		Sources:     models.SourceList{SourceGoogleBooks},
	}}

	merged := Merge(openlibrary, googlebooks)
	require.Len(t, merged, 1)

	rec := merged[0]
	assert.Equal(t, "The Way of Kings", rec.Title)
	assert.Equal(t, "The Stormlight Archive", rec.Series)
	assert.Equal(t, "1", rec.SeriesPosition)
	assert.Equal(t, "An epic fantasy novel.", rec.Description)
	assert.Equal(t, "http://example.com/cover.jpg", rec.CoverURL)
	assert.Equal(t, models.SourceList{SourceOpenLibrary, SourceGoogleBooks}, rec.Sources)
}

func TestMergeNeverOverwritesNonEmptyFields(t *testing.T) {
	first := []Record{{
		Title:       "Elantris",
		ISBN13:      "9780765350374",
		Description: "Original description.",
		Sources:     models.SourceList{SourceOpenLibrary},
	}}
	second := []Record{{
		Title:       "Elantris",
		ISBN13:      "9780765350374",
		Description: "A different description.",
		Subtitle:    "Tenth Anniversary Edition",
		Sources:     models.SourceList{SourceGoogleBooks},
	}}

	merged := Merge(first, second)
	require.Len(t, merged, 1)
	assert.Equal(t, "Original description.", merged[0].Description)
	assert.Equal(t, "Tenth Anniversary Edition", merged[0].Subtitle)
}

func TestMergeCommutativeExceptSourceOrder(t *testing.T) {
	a := []Record{{Title: "Warbreaker", ISBN13: "9780765320308", Subtitle: "A", Sources: models.SourceList{SourceOpenLibrary}}}
	b := []Record{{Title: "Warbreaker", ISBN13: "9780765320308", CoverURL: "http://example.com/w.jpg", Sources: models.SourceList{SourceGoogleBooks}}}

	ab := Merge(a, b)
	ba := Merge(b, a)
	require.Len(t, ab, 1)
	require.Len(t, ba, 1)

	assert.Equal(t, ab[0].Subtitle, ba[0].Subtitle)
	assert.Equal(t, ab[0].CoverURL, ba[0].CoverURL)
	assert.Equal(t, models.SourceList{SourceOpenLibrary, SourceGoogleBooks}, ab[0].Sources)
	assert.Equal(t, models.SourceList{SourceGoogleBooks, SourceOpenLibrary}, ba[0].Sources)
}

func TestMergeEmptyInput(t *testing.T) {
	assert.Empty(t, Merge(nil, nil, nil))
	assert.Empty(t, Merge([]Record{}, []Record{}, []Record{}))
	assert.Empty(t, Merge())
}

func TestMergeIdempotent(t *testing.T) {
	lists := [][]Record{
		{{Title: "The Final Empire (Mistborn #1)", ISBN13: "9780765311788", Sources: models.SourceList{SourceOpenLibrary}}},
		{{Title: "The Final Empire", ISBN13: "9780765311788", Sources: models.SourceList{SourceGoogleBooks}}},
		{{Title: "The Well of Ascension", ASIN: "B002GYI9C4", Sources: models.SourceList{SourceAudnexus}}},
	}

	once := Merge(lists...)
	twice := Merge(once, once)
	assert.Equal(t, once, twice)
}

func TestMergeTitleFallbackIdentity(t *testing.T) {
	merged := Merge(
		[]Record{{Title: "The Emperor's Soul", Sources: models.SourceList{SourceOpenLibrary}}},
		[]Record{{Title: "the emperor's soul  ", Sources: models.SourceList{SourceAudnexus}}},
	)
	require.Len(t, merged, 1)
	assert.Equal(t, models.SourceList{SourceOpenLibrary, SourceAudnexus}, merged[0].Sources)
}
