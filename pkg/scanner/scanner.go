// Package scanner runs the discovery pipeline for a tracked author: query
// every catalog source, merge, check the library, and persist.
package scanner

import (
	"context"
	"sync"

	"github.com/bookscoutapp/bookscout/pkg/authors"
	"github.com/bookscoutapp/bookscout/pkg/books"
	"github.com/bookscoutapp/bookscout/pkg/config"
	"github.com/bookscoutapp/bookscout/pkg/metadata"
	"github.com/bookscoutapp/bookscout/pkg/ownership"
	"github.com/bookscoutapp/bookscout/pkg/settings"
	"github.com/robinjoseph08/golib/logger"
)

// LibraryChecker answers whether the user already owns a title.
type LibraryChecker interface {
	CheckBook(ctx context.Context, title string) (bool, *string, *string)
}

// SeriesResolver finds series metadata for books the library doesn't have.
type SeriesResolver interface {
	LookupSeries(ctx context.Context, title, authorName string) (*string, *string)
}

type Service struct {
	cfg             *config.Config
	authorService   *authors.Service
	bookService     *books.Service
	settingsService *settings.Service

	// Swapped out in tests.
	sources      func(resolved *settings.ResolvedConfig) []metadata.Source
	library      func(resolved *settings.ResolvedConfig) LibraryChecker
	seriesLookup SeriesResolver
}

func NewService(cfg *config.Config, authorService *authors.Service, bookService *books.Service, settingsService *settings.Service) *Service {
	svc := &Service{
		cfg:             cfg,
		authorService:   authorService,
		bookService:     bookService,
		settingsService: settingsService,
		seriesLookup:    ownership.NewAudibleClient("", "", cfg.MetadataTimeout),
	}
	svc.sources = func(resolved *settings.ResolvedConfig) []metadata.Source {
		return []metadata.Source{
			metadata.NewOpenLibraryClient("", cfg.MetadataTimeout),
			metadata.NewGoogleBooksClient("", cfg.MetadataTimeout),
			metadata.NewAudnexusClient("", cfg.MetadataTimeout),
		}
	}
	svc.library = func(resolved *settings.ResolvedConfig) LibraryChecker {
		return ownership.NewAudiobookshelfClient(resolved.AudiobookshelfURL, resolved.AudiobookshelfToken, cfg.MetadataTimeout)
	}
	return svc
}

// ScanResult summarizes one author scan.
type ScanResult struct {
	BooksFound   int `json:"books_found"`
	NewBooks     int `json:"new_books"`
	UpdatedBooks int `json:"updated_books"`
}

// Scan discovers an author's books and persists them. A scan event is
// recorded even when every source came back empty; a dead source never
// aborts the scan.
func (svc *Service) Scan(ctx context.Context, authorID int) (*ScanResult, error) {
	log := logger.FromContext(ctx)

	author, err := svc.authorService.RetrieveAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	resolved, err := svc.settingsService.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	sources := svc.sources(resolved)
	lists := make([][]metadata.Record, len(sources))

	wg := sync.WaitGroup{}
	for i, source := range sources {
		wg.Add(1)
		go func(i int, source metadata.Source) {
			defer wg.Done()
			lists[i] = source.Search(ctx, author.Name, resolved.LanguageFilter)
		}(i, source)
	}
	wg.Wait()

	merged := metadata.Merge(lists...)
	log.Data(logger.Data{"author": author.Name, "books_found": len(merged)}).Info("scan merged source results")

	library := svc.library(resolved)
	for i := range merged {
		rec := &merged[i]

		owned, series, position := library.CheckBook(ctx, rec.Title)
		rec.HaveIt = owned

		// The library's own series metadata beats whatever the title parsed
		// out.
		if series != nil {
			rec.Series = *series
			rec.SeriesPosition = ""
			if position != nil {
				rec.SeriesPosition = *position
			}
		} else if !owned && rec.Series == "" {
			series, position := svc.seriesLookup.LookupSeries(ctx, rec.Title, author.Name)
			if series != nil {
				rec.Series = *series
				if position != nil {
					rec.SeriesPosition = *position
				}
			}
		}
	}

	result := &ScanResult{BooksFound: len(merged)}
	for _, rec := range merged {
		existing, err := svc.bookService.FindExisting(ctx, authorID, rec)
		if err != nil {
			return nil, err
		}

		switch {
		case existing != nil && existing.Deleted:
			// Tombstoned; the user removed it on purpose.
		case existing != nil:
			if err := svc.bookService.UpdatePreserving(ctx, existing.ID, rec); err != nil {
				return nil, err
			}
			result.UpdatedBooks++
		default:
			if _, err := svc.bookService.CreateFromRecord(ctx, authorID, rec); err != nil {
				return nil, err
			}
			result.NewBooks++
		}
	}

	if err := svc.authorService.TouchLastScanned(ctx, authorID); err != nil {
		return nil, err
	}
	if err := svc.bookService.RecordScanEvent(ctx, authorID, result.BooksFound, result.NewBooks); err != nil {
		return nil, err
	}

	return result, nil
}

// ScanAll scans every active author in sequence. A failing author is logged
// and skipped.
func (svc *Service) ScanAll(ctx context.Context) error {
	log := logger.FromContext(ctx)

	active, err := svc.authorService.ListAuthors(ctx)
	if err != nil {
		return err
	}

	for _, author := range active {
		if _, err := svc.Scan(ctx, author.ID); err != nil {
			log.Err(err).Data(logger.Data{"author_id": author.ID}).Error("author scan failed")
		}
	}

	return nil
}
