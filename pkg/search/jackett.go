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

type JackettClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewJackettClient(baseURL, apiKey string, timeout time.Duration) *JackettClient {
	return &JackettClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *JackettClient) Name() string {
	return "Jackett"
}

type jackettResponse struct {
	Results []struct {
		Title       string `json:"Title"`
		Size        int64  `json:"Size"`
		Tracker     string `json:"Tracker"`
		Link        string `json:"Link"`
		MagnetURI   string `json:"MagnetUri"`
		GUID        string `json:"Guid"`
		Seeders     int    `json:"Seeders"`
		Peers       int    `json:"Peers"`
		PublishDate string `json:"PublishDate"`
	} `json:"Results"`
}

// Search queries all configured Jackett indexers. No category filter; the
// query itself narrows the results.
func (c *JackettClient) Search(ctx context.Context, query string) []Result {
	log := logger.FromContext(ctx)

	if c.baseURL == "" || c.apiKey == "" {
		return nil
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("Query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v2.0/indexers/all/results?"+params.Encode(), nil)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("jackett request failed")
		return nil
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("jackett request failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Data(logger.Data{"status": resp.StatusCode}).Warn("jackett search failed")
		return nil
	}

	data := jackettResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Err(errors.WithStack(err)).Warn("jackett decode failed")
		return nil
	}

	results := []Result{}
	for _, item := range data.Results {
		results = append(results, Result{
			Title:       item.Title,
			Source:      c.Name(),
			Type:        TypeTorrent,
			Size:        item.Size,
			Indexer:     item.Tracker,
			DownloadURL: item.Link,
			MagnetURL:   item.MagnetURI,
			GUID:        item.GUID,
			Seeders:     item.Seeders,
			Leechers:    item.Peers,
			PublishDate: item.PublishDate,
		})
	}

	return results
}
