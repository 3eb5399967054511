package downloads

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type QBittorrentClient struct {
	baseURL  string
	username string
	password string
	timeout  time.Duration
}

func NewQBittorrentClient(baseURL, username, password string, timeout time.Duration) *QBittorrentClient {
	return &QBittorrentClient{
		baseURL:  baseURL,
		username: username,
		password: password,
		timeout:  timeout,
	}
}

func (c *QBittorrentClient) Name() string {
	return "qBittorrent"
}

// Submit logs in for a session cookie and posts the torrent URL. qBittorrent
// answers a literal "Ok." on both calls when they succeed.
func (c *QBittorrentClient) Submit(ctx context.Context, downloadURL, title string) bool {
	log := logger.FromContext(ctx)

	if c.baseURL == "" {
		return false
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("qbittorrent cookie jar failed")
		return false
	}
	client := &http.Client{Timeout: c.timeout, Jar: jar}

	login := url.Values{}
	login.Set("username", c.username)
	login.Set("password", c.password)

	body, ok := c.postForm(ctx, client, c.baseURL+"/api/v2/auth/login", login)
	if !ok || body != "Ok." {
		log.Warn("qbittorrent login failed")
		return false
	}

	add := url.Values{}
	add.Set("urls", downloadURL)

	body, ok = c.postForm(ctx, client, c.baseURL+"/api/v2/torrents/add", add)
	if !ok || body != "Ok." {
		log.Warn("qbittorrent add failed")
		return false
	}

	return true
}

func (c *QBittorrentClient) postForm(ctx context.Context, client *http.Client, endpoint string, form url.Values) (string, bool) {
	log := logger.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("qbittorrent request failed")
		return "", false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("qbittorrent request failed")
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Err(errors.WithStack(err)).Warn("qbittorrent read failed")
		return "", false
	}
	return string(body), true
}
