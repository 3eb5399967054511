package ownership

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/segmentio/encoding/json"
)

const (
	DefaultAudibleBaseURL  = "https://api.audible.com"
	DefaultAudnexusBaseURL = "https://api.audnex.us"
)

// AudibleClient resolves series metadata for a single book in two steps: the
// Audible catalog search finds the book's ASIN, then Audnexus returns its
// primary series. It is a best-effort fallback for books the library doesn't
// have.
type AudibleClient struct {
	audibleURL  string
	audnexusURL string
	client      *http.Client
}

func NewAudibleClient(audibleURL, audnexusURL string, timeout time.Duration) *AudibleClient {
	if audibleURL == "" {
		audibleURL = DefaultAudibleBaseURL
	}
	if audnexusURL == "" {
		audnexusURL = DefaultAudnexusBaseURL
	}
	return &AudibleClient{
		audibleURL:  audibleURL,
		audnexusURL: audnexusURL,
		client:      &http.Client{Timeout: timeout},
	}
}

func (c *AudibleClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.WithStack(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// LookupSeries finds a book's series name and position. It returns (nil, nil)
// whenever anything along the way fails or neither service knows the book.
func (c *AudibleClient) LookupSeries(ctx context.Context, title, authorName string) (*string, *string) {
	log := logger.FromContext(ctx)

	query := url.Values{}
	query.Set("num_results", "1")
	query.Set("products_sort_by", "Relevance")
	query.Set("title", title)
	if authorName != "" {
		query.Set("author", authorName)
	}

	catalog := struct {
		Products []struct {
			ASIN string `json:"asin"`
		} `json:"products"`
	}{}
	err := c.getJSON(ctx, c.audibleURL+"/1.0/catalog/products?"+query.Encode(), &catalog)
	if err != nil {
		log.Err(err).Warn("audible catalog query failed")
		return nil, nil
	}
	if len(catalog.Products) == 0 || catalog.Products[0].ASIN == "" {
		return nil, nil
	}

	book := struct {
		SeriesPrimary struct {
			Name     string `json:"name"`
			Position string `json:"position"`
		} `json:"seriesPrimary"`
	}{}
	err = c.getJSON(ctx, c.audnexusURL+"/books/"+catalog.Products[0].ASIN, &book)
	if err != nil {
		log.Err(err).Warn("audnexus book lookup failed")
		return nil, nil
	}
	if book.SeriesPrimary.Name == "" {
		return nil, nil
	}

	var position *string
	if book.SeriesPrimary.Position != "" {
		position = pointerutil.String(book.SeriesPrimary.Position)
	}
	return pointerutil.String(book.SeriesPrimary.Name), position
}
