package downloads

import (
	"bytes"
	"context"
	"encoding/xml"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type RTorrentClient struct {
	baseURL  string
	username string
	password string
	client   *http.Client
}

func NewRTorrentClient(baseURL, username, password string, timeout time.Duration) *RTorrentClient {
	return &RTorrentClient{
		baseURL:  baseURL,
		username: username,
		password: password,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *RTorrentClient) Name() string {
	return "rTorrent"
}

type xmlrpcCall struct {
	XMLName    xml.Name `xml:"methodCall"`
	MethodName string   `xml:"methodName"`
	Params     []string `xml:"params>param>value>string"`
}

type xmlrpcResponse struct {
	XMLName xml.Name  `xml:"methodResponse"`
	Fault   *struct{} `xml:"fault"`
}

// Submit issues an XML-RPC load.start so rTorrent fetches and starts the
// torrent itself. Success is simply a fault-free response.
func (c *RTorrentClient) Submit(ctx context.Context, downloadURL, title string) bool {
	log := logger.FromContext(ctx)

	if c.baseURL == "" {
		return false
	}

	endpoint, err := c.endpointURL()
	if err != nil {
		log.Err(err).Warn("rtorrent url invalid")
		return false
	}

	payload, err := xml.Marshal(xmlrpcCall{
		MethodName: "load.start",
		Params:     []string{"", downloadURL},
	})
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("rtorrent marshal failed")
		return false
	}
	payload = append([]byte(xml.Header), payload...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("rtorrent request failed")
		return false
	}
	req.Header.Set("Content-Type", "text/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("rtorrent request failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	result := xmlrpcResponse{}
	if err := xml.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Err(errors.WithStack(err)).Warn("rtorrent decode failed")
		return false
	}
	return result.Fault == nil
}

func (c *RTorrentClient) endpointURL() (string, error) {
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if c.username != "" && c.password != "" {
		parsed.User = url.UserPassword(c.username, c.password)
	}
	return parsed.String(), nil
}
