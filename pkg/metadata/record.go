// Package metadata queries the catalog sources for an author's published
// works and reconciles their results into canonical records.
package metadata

import (
	"context"
	"strings"

	"github.com/bookscoutapp/bookscout/pkg/models"
)

// Source names as they appear in the books.source column.
const (
	SourceOpenLibrary = "OpenLibrary"
	SourceGoogleBooks = "GoogleBooks"
	SourceAudnexus    = "Audnexus"
	SourceManual      = "Manual Entry"
)

// LanguageAll disables language filtering.
const LanguageAll = "all"

// Record is the normalized shape every catalog source emits. It is transient;
// records are merged and then persisted as books. Empty string means the
// source didn't provide the field.
type Record struct {
	Title          string            `json:"title"`
	Subtitle       string            `json:"subtitle,omitempty"`
	ISBN           string            `json:"isbn,omitempty"`
	ISBN13         string            `json:"isbn13,omitempty"`
	ASIN           string            `json:"asin,omitempty"`
	ReleaseDate    string            `json:"release_date,omitempty"`
	Format         string            `json:"format,omitempty"`
	CoverURL       string            `json:"cover_url,omitempty"`
	Description    string            `json:"description,omitempty"`
	Language       string            `json:"language,omitempty"`
	Series         string            `json:"series,omitempty"`
	SeriesPosition string            `json:"series_position,omitempty"`
	HaveIt         bool              `json:"have_it"`
	Sources        models.SourceList `json:"source"`
}

// Source is a catalog backend that can list an author's works. A failing or
// unreachable source returns an empty slice; it never propagates an error.
type Source interface {
	Name() string
	Search(ctx context.Context, authorName, languageFilter string) []Record
}

// TitleContains reports whether either title contains the other, ignoring
// case. Used to narrow a full author search down to one book.
func TitleContains(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func languageMatches(filter string, languages []string) bool {
	if filter == "" || filter == LanguageAll {
		return true
	}
	for _, lang := range languages {
		if lang == filter {
			return true
		}
	}
	return false
}
