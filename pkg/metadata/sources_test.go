package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLibraryClientSearch(t *testing.T) {
	t.Run("parses documents", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search.json", r.URL.Path)
			assert.Equal(t, "Brandon Sanderson", r.URL.Query().Get("author"))
			assert.Equal(t, "100", r.URL.Query().Get("limit"))
			w.Write([]byte(`{"docs": [
				{"title": "Elantris", "isbn": ["0765350378", "9780765350374"], "first_publish_year": 2005, "cover_i": 12345, "language": ["en"]},
				{"title": "Elantris", "language": ["fr"]},
				{"title": ""}
			]}`))
		}))
		defer srv.Close()

		c := NewOpenLibraryClient(srv.URL, time.Second)
		records := c.Search(context.Background(), "Brandon Sanderson", "en")
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "Elantris", rec.Title)
		assert.Equal(t, "0765350378", rec.ISBN)
		assert.Equal(t, "9780765350374", rec.ISBN13)
		assert.Equal(t, "2005", rec.ReleaseDate)
		assert.Equal(t, "https://covers.openlibrary.org/b/id/12345-M.jpg", rec.CoverURL)
		assert.Equal(t, []string{SourceOpenLibrary}, []string(rec.Sources))
	})

	t.Run("assumes english when language missing", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"docs": [{"title": "Warbreaker"}]}`))
		}))
		defer srv.Close()

		c := NewOpenLibraryClient(srv.URL, time.Second)
		records := c.Search(context.Background(), "Brandon Sanderson", "en")
		require.Len(t, records, 1)
		assert.Equal(t, "en", records[0].Language)
	})

	t.Run("returns nil on server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewOpenLibraryClient(srv.URL, time.Second)
		assert.Nil(t, c.Search(context.Background(), "Brandon Sanderson", "en"))
	})
}

func TestGoogleBooksClientSearch(t *testing.T) {
	t.Run("parses volumes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/books/v1/volumes", r.URL.Path)
			assert.Equal(t, `inauthor:"Brandon Sanderson"`, r.URL.Query().Get("q"))
			assert.Equal(t, "en", r.URL.Query().Get("langRestrict"))
			w.Write([]byte(`{"items": [{"volumeInfo": {
				"title": "The Way of Kings",
				"subtitle": "Book One of the Stormlight Archive",
				"industryIdentifiers": [
					{"type": "ISBN_10", "identifier": "0765326353"},
					{"type": "ISBN_13", "identifier": "9780765326355"}
				],
				"publishedDate": "2010-08-31",
				"description": "An epic.",
				"language": "en",
				"imageLinks": {"thumbnail": "http://books.google.com/thumb.jpg"}
			}}]}`))
		}))
		defer srv.Close()

		c := NewGoogleBooksClient(srv.URL, time.Second)
		records := c.Search(context.Background(), "Brandon Sanderson", "en")
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "The Way of Kings", rec.Title)
		assert.Equal(t, "Book One of the Stormlight Archive", rec.Subtitle)
		assert.Equal(t, "0765326353", rec.ISBN)
		assert.Equal(t, "9780765326355", rec.ISBN13)
		assert.Equal(t, "2010-08-31", rec.ReleaseDate)
		assert.Equal(t, "An epic.", rec.Description)
		assert.Equal(t, "http://books.google.com/thumb.jpg", rec.CoverURL)
	})

	t.Run("omits language restriction when unfiltered", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("langRestrict"))
			w.Write([]byte(`{"items": []}`))
		}))
		defer srv.Close()

		c := NewGoogleBooksClient(srv.URL, time.Second)
		assert.Empty(t, c.Search(context.Background(), "Brandon Sanderson", LanguageAll))
	})
}

func TestAudnexusClientSearch(t *testing.T) {
	t.Run("parses results", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "Brandon Sanderson", r.URL.Query().Get("name"))
			w.Write([]byte(`{"results": [{
				"title": "The Final Empire",
				"asin": "B002GYI9C4",
				"releaseDate": "2006-07-25",
				"image": "https://m.media-amazon.com/cover.jpg"
			}]}`))
		}))
		defer srv.Close()

		c := NewAudnexusClient(srv.URL, time.Second)
		records := c.Search(context.Background(), "Brandon Sanderson", "en")
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "The Final Empire", rec.Title)
		assert.Equal(t, "B002GYI9C4", rec.ASIN)
		assert.Equal(t, "audiobook", rec.Format)
		assert.Equal(t, "en", rec.Language)
	})

	t.Run("returns nil on unreachable server", func(t *testing.T) {
		c := NewAudnexusClient("http://127.0.0.1:1", 100*time.Millisecond)
		assert.Nil(t, c.Search(context.Background(), "Brandon Sanderson", "en"))
	})
}
