package downloads

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
)

type SabnzbdClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSabnzbdClient(baseURL, apiKey string, timeout time.Duration) *SabnzbdClient {
	return &SabnzbdClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *SabnzbdClient) Name() string {
	return "SABnzbd"
}

type sabnzbdResponse struct {
	Status bool `json:"status"`
}

// Submit fetches the NZB and uploads it. Indexers sometimes return an HTML
// error page instead of an NZB; in that case the URL is handed to SABnzbd to
// fetch itself.
func (c *SabnzbdClient) Submit(ctx context.Context, downloadURL, title string) bool {
	log := logger.FromContext(ctx)

	if c.baseURL == "" || c.apiKey == "" {
		return false
	}

	payload, err := c.fetchNZB(ctx, downloadURL)
	if err != nil {
		log.Err(err).Warn("nzb fetch failed")
		return false
	}

	if !bytes.HasPrefix(payload, []byte("<?xml")) {
		return c.addByURL(ctx, downloadURL, title)
	}

	return c.addFile(ctx, payload, title)
}

func (c *SabnzbdClient) fetchNZB(ctx context.Context, downloadURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %d fetching nzb", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return payload, nil
}

func (c *SabnzbdClient) addByURL(ctx context.Context, downloadURL, title string) bool {
	log := logger.FromContext(ctx)

	params := url.Values{}
	params.Set("mode", "addurl")
	params.Set("name", downloadURL)
	params.Set("nzbname", title)
	params.Set("apikey", c.apiKey)
	params.Set("output", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api?"+params.Encode(), nil)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("sabnzbd addurl failed")
		return false
	}

	return c.expectStatusTrue(ctx, req)
}

func (c *SabnzbdClient) addFile(ctx context.Context, payload []byte, title string) bool {
	log := logger.FromContext(ctx)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("nzbfile", title+".nzb")
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("sabnzbd addfile failed")
		return false
	}
	if _, err := part.Write(payload); err != nil {
		log.Err(errors.WithStack(err)).Warn("sabnzbd addfile failed")
		return false
	}
	if err := form.Close(); err != nil {
		log.Err(errors.WithStack(err)).Warn("sabnzbd addfile failed")
		return false
	}

	params := url.Values{}
	params.Set("mode", "addfile")
	params.Set("apikey", c.apiKey)
	params.Set("output", "json")
	params.Set("nzbname", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api?"+params.Encode(), body)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("sabnzbd addfile failed")
		return false
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	return c.expectStatusTrue(ctx, req)
}

func (c *SabnzbdClient) expectStatusTrue(ctx context.Context, req *http.Request) bool {
	log := logger.FromContext(ctx)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("sabnzbd request failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Data(logger.Data{"status": resp.StatusCode}).Warn("sabnzbd request failed")
		return false
	}

	result := sabnzbdResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Err(errors.WithStack(err)).Warn("sabnzbd decode failed")
		return false
	}
	return result.Status
}
