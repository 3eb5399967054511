package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bookscoutapp/bookscout/pkg/identifiers"
	"github.com/robinjoseph08/golib/logger"
)

const DefaultOpenLibraryBaseURL = "https://openlibrary.org"

const openLibraryCoversURL = "https://covers.openlibrary.org/b/id/%d-M.jpg"

type OpenLibraryClient struct {
	baseURL string
	client  *http.Client
}

func NewOpenLibraryClient(baseURL string, timeout time.Duration) *OpenLibraryClient {
	if baseURL == "" {
		baseURL = DefaultOpenLibraryBaseURL
	}
	return &OpenLibraryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *OpenLibraryClient) Name() string {
	return SourceOpenLibrary
}

type openLibraryResponse struct {
	Docs []struct {
		Title            string   `json:"title"`
		Subtitle         string   `json:"subtitle"`
		ISBN             []string `json:"isbn"`
		FirstPublishYear int      `json:"first_publish_year"`
		CoverID          int      `json:"cover_i"`
		Language         []string `json:"language"`
	} `json:"docs"`
}

func (c *OpenLibraryClient) Search(ctx context.Context, authorName, languageFilter string) []Record {
	log := logger.FromContext(ctx)

	query := url.Values{}
	query.Set("author", authorName)
	query.Set("limit", "100")

	data := openLibraryResponse{}
	err := getJSON(ctx, c.client, c.baseURL+"/search.json?"+query.Encode(), &data)
	if err != nil {
		log.Err(err).Warn("openlibrary query failed")
		return nil
	}

	records := []Record{}
	for _, doc := range data.Docs {
		if doc.Title == "" {
			continue
		}

		languages := doc.Language
		if len(languages) == 0 {
			languages = []string{"en"}
		}
		if !languageMatches(languageFilter, languages) {
			continue
		}

		rec := Record{
			Title:    doc.Title,
			Subtitle: doc.Subtitle,
			Language: languages[0],
			Sources:  []string{SourceOpenLibrary},
		}
		for _, raw := range doc.ISBN {
			switch identifiers.Classify(raw) {
			case identifiers.TypeISBN13:
				if rec.ISBN13 == "" {
					rec.ISBN13 = identifiers.NormalizeISBN(raw)
				}
			case identifiers.TypeISBN10:
				if rec.ISBN == "" {
					rec.ISBN = identifiers.NormalizeISBN(raw)
				}
			}
		}
		if doc.FirstPublishYear > 0 {
			rec.ReleaseDate = fmt.Sprintf("%d", doc.FirstPublishYear)
		}
		if doc.CoverID > 0 {
			rec.CoverURL = fmt.Sprintf(openLibraryCoversURL, doc.CoverID)
		}

		records = append(records, rec)
	}

	return records
}
