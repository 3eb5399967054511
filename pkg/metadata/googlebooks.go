package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bookscoutapp/bookscout/pkg/htmlutil"
	"github.com/robinjoseph08/golib/logger"
)

const DefaultGoogleBooksBaseURL = "https://www.googleapis.com"

type GoogleBooksClient struct {
	baseURL string
	client  *http.Client
}

func NewGoogleBooksClient(baseURL string, timeout time.Duration) *GoogleBooksClient {
	if baseURL == "" {
		baseURL = DefaultGoogleBooksBaseURL
	}
	return &GoogleBooksClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *GoogleBooksClient) Name() string {
	return SourceGoogleBooks
}

type googleBooksResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title               string `json:"title"`
			Subtitle            string `json:"subtitle"`
			IndustryIdentifiers []struct {
				Type       string `json:"type"`
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
			PublishedDate string `json:"publishedDate"`
			Description   string `json:"description"`
			Language      string `json:"language"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (c *GoogleBooksClient) Search(ctx context.Context, authorName, languageFilter string) []Record {
	log := logger.FromContext(ctx)

	query := url.Values{}
	query.Set("q", fmt.Sprintf("inauthor:%q", authorName))
	query.Set("maxResults", "40")
	if languageFilter != "" && languageFilter != LanguageAll {
		query.Set("langRestrict", languageFilter)
	}

	data := googleBooksResponse{}
	err := getJSON(ctx, c.client, c.baseURL+"/books/v1/volumes?"+query.Encode(), &data)
	if err != nil {
		log.Err(err).Warn("google books query failed")
		return nil
	}

	records := []Record{}
	for _, item := range data.Items {
		info := item.VolumeInfo
		if info.Title == "" {
			continue
		}

		language := info.Language
		if language == "" {
			language = "en"
		}
		if !languageMatches(languageFilter, []string{language}) {
			continue
		}

		rec := Record{
			Title:       info.Title,
			Subtitle:    info.Subtitle,
			ReleaseDate: info.PublishedDate,
			CoverURL:    info.ImageLinks.Thumbnail,
			Description: htmlutil.StripTags(info.Description),
			Language:    language,
			Sources:     []string{SourceGoogleBooks},
		}
		for _, id := range info.IndustryIdentifiers {
			switch id.Type {
			case "ISBN_10":
				rec.ISBN = id.Identifier
			case "ISBN_13":
				rec.ISBN13 = id.Identifier
			}
		}

		records = append(records, rec)
	}

	return records
}
