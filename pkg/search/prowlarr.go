package search

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
)

type ProwlarrClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewProwlarrClient(baseURL, apiKey string, timeout time.Duration) *ProwlarrClient {
	return &ProwlarrClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *ProwlarrClient) Name() string {
	return "Prowlarr"
}

type prowlarrResult struct {
	Title       string `json:"title"`
	Size        int64  `json:"size"`
	Indexer     string `json:"indexer"`
	DownloadURL string `json:"downloadUrl"`
	GUID        string `json:"guid"`
	PublishDate string `json:"publishDate"`
}

// Search runs a book-type query. Prowlarr fronts usenet indexers here, so
// every result is typed Usenet with zero seeders.
func (c *ProwlarrClient) Search(ctx context.Context, query string) []Result {
	log := logger.FromContext(ctx)

	if c.baseURL == "" || c.apiKey == "" {
		return nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("type", "book")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/search?"+params.Encode(), nil)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("prowlarr request failed")
		return nil
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("prowlarr request failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Data(logger.Data{"status": resp.StatusCode}).Warn("prowlarr search failed")
		return nil
	}

	items := []prowlarrResult{}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		log.Err(errors.WithStack(err)).Warn("prowlarr decode failed")
		return nil
	}

	results := []Result{}
	for _, item := range items {
		results = append(results, Result{
			Title:       item.Title,
			Source:      c.Name(),
			Type:        TypeUsenet,
			Size:        item.Size,
			Indexer:     item.Indexer,
			DownloadURL: item.DownloadURL,
			GUID:        item.GUID,
			Seeders:     0,
			PublishDate: item.PublishDate,
		})
	}

	return results
}
