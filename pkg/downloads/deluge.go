package downloads

import (
	"bytes"
	"context"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
)

type DelugeClient struct {
	baseURL  string
	password string
	timeout  time.Duration
}

func NewDelugeClient(baseURL, password string, timeout time.Duration) *DelugeClient {
	return &DelugeClient{
		baseURL:  baseURL,
		password: password,
		timeout:  timeout,
	}
}

func (c *DelugeClient) Name() string {
	return "Deluge"
}

type delugeRequest struct {
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
	ID     int           `json:"id"`
}

type delugeResponse struct {
	Result interface{} `json:"result"`
}

// Submit authenticates against the Deluge web API and adds the torrent by
// URL. Both calls report success through a truthy result field.
func (c *DelugeClient) Submit(ctx context.Context, downloadURL, title string) bool {
	log := logger.FromContext(ctx)

	if c.baseURL == "" {
		return false
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("deluge cookie jar failed")
		return false
	}
	client := &http.Client{Timeout: c.timeout, Jar: jar}

	ok := c.call(ctx, client, delugeRequest{
		Method: "auth.login",
		Params: []interface{}{c.password},
		ID:     1,
	})
	if !ok {
		log.Warn("deluge login failed")
		return false
	}

	ok = c.call(ctx, client, delugeRequest{
		Method: "core.add_torrent_url",
		Params: []interface{}{downloadURL, map[string]interface{}{}},
		ID:     2,
	})
	if !ok {
		log.Warn("deluge add failed")
	}
	return ok
}

func (c *DelugeClient) call(ctx context.Context, client *http.Client, request delugeRequest) bool {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(request)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("deluge marshal failed")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/json", bytes.NewReader(payload))
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("deluge request failed")
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("deluge request failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	result := delugeResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Err(errors.WithStack(err)).Warn("deluge decode failed")
		return false
	}

	switch value := result.Result.(type) {
	case bool:
		return value
	case nil:
		return false
	default:
		return true
	}
}
