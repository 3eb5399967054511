// Package search fans a query out to the configured release indexers and
// merges their results for the download picker.
package search

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bookscoutapp/bookscout/pkg/settings"
	"github.com/dustin/go-humanize"
)

// Release types; the dispatcher routes on them.
const (
	TypeUsenet  = "Usenet"
	TypeTorrent = "Torrent"
)

// Result is one release offered by an indexer. Results are displayed and
// handed to the dispatcher; they are never persisted.
type Result struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	Type        string `json:"type"`
	Size        int64  `json:"size"`
	SizeDisplay string `json:"size_display"`
	Indexer     string `json:"indexer"`
	DownloadURL string `json:"download_url"`
	MagnetURL   string `json:"magnet_url,omitempty"`
	GUID        string `json:"guid"`
	Seeders     int    `json:"seeders"`
	Leechers    int    `json:"leechers"`
	PublishDate string `json:"publish_date"`
}

// Indexer is one searchable release backend. An unconfigured or failing
// indexer contributes an empty slice.
type Indexer interface {
	Name() string
	Search(ctx context.Context, query string) []Result
}

type Service struct {
	settingsService *settings.Service

	// Swapped out in tests.
	indexers func(resolved *settings.ResolvedConfig) []Indexer
}

func NewService(settingsService *settings.Service, timeout time.Duration) *Service {
	svc := &Service{settingsService: settingsService}
	svc.indexers = func(resolved *settings.ResolvedConfig) []Indexer {
		return []Indexer{
			NewProwlarrClient(resolved.ProwlarrURL, resolved.ProwlarrAPIKey, timeout),
			NewJackettClient(resolved.JackettURL, resolved.JackettAPIKey, timeout),
		}
	}
	return svc
}

// UnifiedSearch queries every indexer concurrently and returns the combined
// results, best first: most seeders, then largest.
func (svc *Service) UnifiedSearch(ctx context.Context, query string) ([]Result, error) {
	resolved, err := svc.settingsService.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	indexers := svc.indexers(resolved)
	lists := make([][]Result, len(indexers))

	wg := sync.WaitGroup{}
	for i, indexer := range indexers {
		wg.Add(1)
		go func(i int, indexer Indexer) {
			defer wg.Done()
			lists[i] = indexer.Search(ctx, query)
		}(i, indexer)
	}
	wg.Wait()

	results := []Result{}
	for _, list := range lists {
		results = append(results, list...)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Seeders != results[j].Seeders {
			return results[i].Seeders > results[j].Seeders
		}
		return results[i].Size > results[j].Size
	})

	for i := range results {
		results[i].SizeDisplay = humanize.IBytes(uint64(results[i].Size))
	}

	return results, nil
}
