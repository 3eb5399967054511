package metadata

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/robinjoseph08/golib/logger"
)

const DefaultAudnexusBaseURL = "https://api.audnex.us"

const audnexusResultLimit = 40

type AudnexusClient struct {
	baseURL string
	client  *http.Client
}

func NewAudnexusClient(baseURL string, timeout time.Duration) *AudnexusClient {
	if baseURL == "" {
		baseURL = DefaultAudnexusBaseURL
	}
	return &AudnexusClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *AudnexusClient) Name() string {
	return SourceAudnexus
}

type audnexusSearchResponse struct {
	Results []struct {
		Title       string `json:"title"`
		Subtitle    string `json:"subtitle"`
		ASIN        string `json:"asin"`
		ReleaseDate string `json:"releaseDate"`
		Image       string `json:"image"`
	} `json:"results"`
}

// Search lists audiobooks by author. Audnexus doesn't report languages in
// search results, so audiobooks are assumed English and only filtered out by
// an explicit non-English filter.
func (c *AudnexusClient) Search(ctx context.Context, authorName, languageFilter string) []Record {
	log := logger.FromContext(ctx)

	query := url.Values{}
	query.Set("name", authorName)

	data := audnexusSearchResponse{}
	err := getJSON(ctx, c.client, c.baseURL+"/search?"+query.Encode(), &data)
	if err != nil {
		log.Err(err).Warn("audnexus query failed")
		return nil
	}

	results := data.Results
	if len(results) > audnexusResultLimit {
		results = results[:audnexusResultLimit]
	}

	records := []Record{}
	for _, item := range results {
		if item.Title == "" {
			continue
		}

		records = append(records, Record{
			Title:       item.Title,
			Subtitle:    item.Subtitle,
			ASIN:        item.ASIN,
			ReleaseDate: item.ReleaseDate,
			CoverURL:    item.Image,
			Format:      "audiobook",
			Language:    "en",
			Sources:     []string{SourceAudnexus},
		})
	}

	return records
}
