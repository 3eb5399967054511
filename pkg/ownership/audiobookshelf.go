package ownership

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/segmentio/encoding/json"
)

const authorPageSize = 100

// AudiobookshelfClient talks to an Audiobookshelf server. An unconfigured
// client (empty URL or token) answers every question with "not owned".
type AudiobookshelfClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewAudiobookshelfClient(baseURL, token string, timeout time.Duration) *AudiobookshelfClient {
	return &AudiobookshelfClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *AudiobookshelfClient) Configured() bool {
	return c.baseURL != "" && c.token != ""
}

func (c *AudiobookshelfClient) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

type Library struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type absSeries struct {
	Name     string `json:"name"`
	Sequence string `json:"sequence"`
}

type absMetadata struct {
	Title      string      `json:"title"`
	AuthorName string      `json:"authorName"`
	Series     []absSeries `json:"series"`
}

func (c *AudiobookshelfClient) ListLibraries(ctx context.Context) ([]Library, error) {
	data := struct {
		Libraries []Library `json:"libraries"`
	}{}
	if err := c.getJSON(ctx, "/api/libraries", nil, &data); err != nil {
		return nil, err
	}
	return data.Libraries, nil
}

// CheckBook reports whether the library already has a book with this title,
// along with the library's series metadata for it when present. Errors and a
// missing configuration both come back as "not owned"; a scan should never
// fail because the library was unreachable.
func (c *AudiobookshelfClient) CheckBook(ctx context.Context, title string) (bool, *string, *string) {
	log := logger.FromContext(ctx)

	if !c.Configured() {
		return false, nil, nil
	}

	libraries, err := c.ListLibraries(ctx)
	if err != nil {
		log.Err(err).Warn("audiobookshelf libraries query failed")
		return false, nil, nil
	}

	for _, library := range libraries {
		query := url.Values{}
		query.Set("q", title)

		data := struct {
			Book []struct {
				LibraryItem struct {
					Media struct {
						Metadata absMetadata `json:"metadata"`
					} `json:"media"`
				} `json:"libraryItem"`
			} `json:"book"`
		}{}
		err := c.getJSON(ctx, fmt.Sprintf("/api/libraries/%s/search", library.ID), query, &data)
		if err != nil {
			log.Err(err).Warn("audiobookshelf search failed")
			continue
		}

		for _, result := range data.Book {
			metadata := result.LibraryItem.Media.Metadata
			if !titlesMatch(title, metadata.Title) {
				continue
			}

			var series, position *string
			if len(metadata.Series) > 0 && metadata.Series[0].Name != "" {
				series = pointerutil.String(metadata.Series[0].Name)
				if metadata.Series[0].Sequence != "" {
					position = pointerutil.String(metadata.Series[0].Sequence)
				}
			}
			return true, series, position
		}
	}

	return false, nil, nil
}

// ListAuthors walks every library item and collects the distinct author
// names, splitting joint credits like "A & B" or "A, B and C" into
// individuals. The result is sorted and feeds bulk import.
func (c *AudiobookshelfClient) ListAuthors(ctx context.Context) ([]string, error) {
	libraries, err := c.ListLibraries(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}

	for _, library := range libraries {
		page := 0
		processed := 0

		for {
			query := url.Values{}
			query.Set("limit", fmt.Sprintf("%d", authorPageSize))
			query.Set("page", fmt.Sprintf("%d", page))

			data := struct {
				Results []struct {
					Media struct {
						Metadata absMetadata `json:"metadata"`
					} `json:"media"`
				} `json:"results"`
				Total int `json:"total"`
			}{}
			err := c.getJSON(ctx, fmt.Sprintf("/api/libraries/%s/items", library.ID), query, &data)
			if err != nil {
				return nil, err
			}
			if len(data.Results) == 0 {
				break
			}

			for _, item := range data.Results {
				for _, name := range splitAuthorNames(item.Media.Metadata.AuthorName) {
					seen[name] = struct{}{}
				}
			}

			processed += len(data.Results)
			if processed >= data.Total {
				break
			}
			page++
		}
	}

	authors := make([]string, 0, len(seen))
	for name := range seen {
		authors = append(authors, name)
	}
	sort.Strings(authors)
	return authors, nil
}

// splitAuthorNames breaks a joint author credit into individual names.
func splitAuthorNames(authorName string) []string {
	names := []string{authorName}
	for _, sep := range []string{" & ", " and ", ", "} {
		split := []string{}
		for _, name := range names {
			for _, part := range strings.Split(name, sep) {
				split = append(split, strings.TrimSpace(part))
			}
		}
		names = split
	}

	kept := []string{}
	for _, name := range names {
		if len(name) > 1 {
			kept = append(kept, name)
		}
	}
	return kept
}
