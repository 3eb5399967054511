package scanner

import (
	"context"
	"database/sql"
	"testing"

	"github.com/bookscoutapp/bookscout/pkg/authors"
	"github.com/bookscoutapp/bookscout/pkg/books"
	"github.com/bookscoutapp/bookscout/pkg/config"
	"github.com/bookscoutapp/bookscout/pkg/metadata"
	"github.com/bookscoutapp/bookscout/pkg/migrations"
	"github.com/bookscoutapp/bookscout/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

type stubSource struct {
	name    string
	records []metadata.Record
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Search(ctx context.Context, authorName, languageFilter string) []metadata.Record {
	return s.records
}

type stubLibrary struct {
	owned map[string]bool
}

func (s *stubLibrary) CheckBook(ctx context.Context, title string) (bool, *string, *string) {
	return s.owned[title], nil, nil
}

type stubSeriesResolver struct {
	series map[string]string
}

func (s *stubSeriesResolver) LookupSeries(ctx context.Context, title, authorName string) (*string, *string) {
	if name, ok := s.series[title]; ok {
		position := "1"
		return &name, &position
	}
	return nil, nil
}

func setupScanner(t *testing.T, db *bun.DB) (*Service, *authors.Service, *books.Service) {
	t.Helper()

	cfg := &config.Config{}
	authorService := authors.NewService(db)
	bookService := books.NewService(db)
	settingsService := settings.NewService(db, cfg)

	svc := NewService(cfg, authorService, bookService, settingsService)
	svc.sources = func(resolved *settings.ResolvedConfig) []metadata.Source {
		return []metadata.Source{&stubSource{name: metadata.SourceOpenLibrary}}
	}
	svc.library = func(resolved *settings.ResolvedConfig) LibraryChecker {
		return &stubLibrary{}
	}
	svc.seriesLookup = &stubSeriesResolver{}

	return svc, authorService, bookService
}

func TestService_Scan(t *testing.T) {
	db := setupTestDB(t)
	svc, authorService, bookService := setupScanner(t, db)
	ctx := context.Background()

	author, err := authorService.CreateAuthor(ctx, "Brandon Sanderson")
	require.NoError(t, err)

	svc.sources = func(resolved *settings.ResolvedConfig) []metadata.Source {
		return []metadata.Source{
			&stubSource{name: metadata.SourceOpenLibrary, records: []metadata.Record{
				{Title: "The Way of Kings (The Stormlight Archive #1)", ISBN13: "9780765326355", Sources: []string{metadata.SourceOpenLibrary}},
				{Title: "Warbreaker", Sources: []string{metadata.SourceOpenLibrary}},
			}},
			&stubSource{name: metadata.SourceGoogleBooks, records: []metadata.Record{
				{Title: "The Way of Kings", ISBN13: "9780765326355", Description: "An epic.", Sources: []string{metadata.SourceGoogleBooks}},
			}},
		}
	}
	svc.library = func(resolved *settings.ResolvedConfig) LibraryChecker {
		return &stubLibrary{owned: map[string]bool{"The Way of Kings": true}}
	}
	svc.seriesLookup = &stubSeriesResolver{series: map[string]string{"Warbreaker": "Warbreaker Universe"}}

	result, err := svc.Scan(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.BooksFound)
	assert.Equal(t, 2, result.NewBooks)
	assert.Equal(t, 0, result.UpdatedBooks)

	listed, err := bookService.ListBooks(ctx, author.ID, false)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	byTitle := map[string]bool{}
	for _, book := range listed {
		byTitle[book.Title] = true
	}
	assert.True(t, byTitle["The Way of Kings"])
	assert.True(t, byTitle["Warbreaker"])

	for _, book := range listed {
		switch book.Title {
		case "The Way of Kings":
			assert.True(t, book.HaveIt)
			require.NotNil(t, book.Series)
			assert.Equal(t, "The Stormlight Archive", *book.Series)
			require.NotNil(t, book.Description)
			assert.Equal(t, "An epic.", *book.Description)
		case "Warbreaker":
			assert.False(t, book.HaveIt)
			require.NotNil(t, book.Series)
			assert.Equal(t, "Warbreaker Universe", *book.Series)
		}
	}

	refreshed, err := authorService.RetrieveAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.NotNil(t, refreshed.LastScanned)

	events, err := bookService.ListScanEvents(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 2, events[0].BooksFound)
	assert.Equal(t, 2, events[0].NewBooks)
}

func TestService_ScanRecordsEmptyResults(t *testing.T) {
	db := setupTestDB(t)
	svc, authorService, bookService := setupScanner(t, db)
	ctx := context.Background()

	author, err := authorService.CreateAuthor(ctx, "Obscure Author")
	require.NoError(t, err)

	result, err := svc.Scan(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.BooksFound)
	assert.Equal(t, 0, result.NewBooks)

	events, err := bookService.ListScanEvents(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].BooksFound)
}

func TestService_ScanSkipsTombstones(t *testing.T) {
	db := setupTestDB(t)
	svc, authorService, bookService := setupScanner(t, db)
	ctx := context.Background()

	author, err := authorService.CreateAuthor(ctx, "Brandon Sanderson")
	require.NoError(t, err)

	book, err := bookService.CreateFromRecord(ctx, author.ID, metadata.Record{Title: "Warbreaker"})
	require.NoError(t, err)
	require.NoError(t, bookService.SoftDeleteBooks(ctx, []int{book.ID}))

	svc.sources = func(resolved *settings.ResolvedConfig) []metadata.Source {
		return []metadata.Source{
			&stubSource{name: metadata.SourceOpenLibrary, records: []metadata.Record{
				{Title: "Warbreaker", Sources: []string{metadata.SourceOpenLibrary}},
			}},
		}
	}

	result, err := svc.Scan(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.BooksFound)
	assert.Equal(t, 0, result.NewBooks)
	assert.Equal(t, 0, result.UpdatedBooks)

	listed, err := bookService.ListBooks(ctx, author.ID, false)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestService_ScanUpdatesPreserveEdits(t *testing.T) {
	db := setupTestDB(t)
	svc, authorService, bookService := setupScanner(t, db)
	ctx := context.Background()

	author, err := authorService.CreateAuthor(ctx, "Brandon Sanderson")
	require.NoError(t, err)

	svc.sources = func(resolved *settings.ResolvedConfig) []metadata.Source {
		return []metadata.Source{
			&stubSource{name: metadata.SourceOpenLibrary, records: []metadata.Record{
				{Title: "Elantris", ISBN13: "9780765350374", Description: "First pass.", Sources: []string{metadata.SourceOpenLibrary}},
			}},
		}
	}

	_, err = svc.Scan(ctx, author.ID)
	require.NoError(t, err)

	listed, err := bookService.ListBooks(ctx, author.ID, false)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// Manual edit between scans.
	_, err = bookService.UpdateBook(ctx, listed[0].ID, books.UpdateBookFields{
		Title:       "Elantris",
		ISBN13:      listed[0].ISBN13,
		Description: str("Edited by hand."),
	})
	require.NoError(t, err)

	svc.sources = func(resolved *settings.ResolvedConfig) []metadata.Source {
		return []metadata.Source{
			&stubSource{name: metadata.SourceOpenLibrary, records: []metadata.Record{
				{Title: "Elantris", ISBN13: "9780765350374", Description: "Second pass.", CoverURL: "http://example.com/cover.jpg", Sources: []string{metadata.SourceOpenLibrary}},
			}},
		}
	}

	result, err := svc.Scan(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.NewBooks)
	assert.Equal(t, 1, result.UpdatedBooks)

	listed, err = bookService.ListBooks(ctx, author.ID, false)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Edited by hand.", *listed[0].Description)
	assert.Equal(t, "http://example.com/cover.jpg", *listed[0].CoverURL)
}

func TestService_ScanAll(t *testing.T) {
	db := setupTestDB(t)
	svc, authorService, bookService := setupScanner(t, db)
	ctx := context.Background()

	first, err := authorService.CreateAuthor(ctx, "Author One")
	require.NoError(t, err)
	second, err := authorService.CreateAuthor(ctx, "Author Two")
	require.NoError(t, err)
	require.NoError(t, authorService.DeactivateAuthor(ctx, second.ID))

	require.NoError(t, svc.ScanAll(ctx))

	events, err := bookService.ListScanEvents(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	events, err = bookService.ListScanEvents(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func str(s string) *string {
	return &s
}
