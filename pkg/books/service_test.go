package books

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bookscoutapp/bookscout/pkg/metadata"
	"github.com/bookscoutapp/bookscout/pkg/migrations"
	"github.com/bookscoutapp/bookscout/pkg/models"
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

func createTestAuthor(t *testing.T, db *bun.DB, name string) *models.Author {
	t.Helper()
	now := time.Now()
	author := &models.Author{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
		Active:    true,
	}
	_, err := db.NewInsert().Model(author).Exec(context.Background())
	require.NoError(t, err)
	return author
}

func str(s string) *string {
	return &s
}

func TestService_FindExisting(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Brandon Sanderson")

	byISBN13, err := svc.CreateFromRecord(ctx, author.ID, metadata.Record{
		Title:  "The Way of Kings",
		ISBN13: "9780765326355",
		ASIN:   "B003P2WO5E",
	})
	require.NoError(t, err)

	byTitle, err := svc.CreateFromRecord(ctx, author.ID, metadata.Record{
		Title: "Warbreaker",
	})
	require.NoError(t, err)

	t.Run("isbn13 beats asin", func(t *testing.T) {
		found, err := svc.FindExisting(ctx, author.ID, metadata.Record{
			Title:  "Different Title",
			ISBN13: "9780765326355",
			ASIN:   "B000000000",
		})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, byISBN13.ID, found.ID)
	})

	t.Run("falls back to exact title", func(t *testing.T) {
		found, err := svc.FindExisting(ctx, author.ID, metadata.Record{Title: "Warbreaker"})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, byTitle.ID, found.ID)
	})

	t.Run("no match", func(t *testing.T) {
		found, err := svc.FindExisting(ctx, author.ID, metadata.Record{Title: "Elantris"})
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("includes tombstoned rows", func(t *testing.T) {
		require.NoError(t, svc.SoftDeleteBooks(ctx, []int{byTitle.ID}))

		found, err := svc.FindExisting(ctx, author.ID, metadata.Record{Title: "Warbreaker"})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.Deleted)
	})
}

func TestService_UpdatePreserving(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Brandon Sanderson")

	book, err := svc.CreateFromRecord(ctx, author.ID, metadata.Record{
		Title:       "Elantris",
		Description: "Hand-written description.",
		HaveIt:      true,
	})
	require.NoError(t, err)

	err = svc.UpdatePreserving(ctx, book.ID, metadata.Record{
		Title:       "Elantris",
		Description: "Scanned description.",
		CoverURL:    "http://example.com/cover.jpg",
		ISBN13:      "9780765350374",
		HaveIt:      false,
	})
	require.NoError(t, err)

	updated, err := svc.RetrieveBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hand-written description.", *updated.Description)
	assert.Equal(t, "http://example.com/cover.jpg", *updated.CoverURL)
	assert.Equal(t, "9780765350374", *updated.ISBN13)
	assert.False(t, updated.HaveIt)
}

func TestService_ListBooks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Brandon Sanderson")

	_, err := svc.CreateFromRecord(ctx, author.ID, metadata.Record{Title: "Owned", HaveIt: true})
	require.NoError(t, err)
	missing, err := svc.CreateFromRecord(ctx, author.ID, metadata.Record{Title: "Missing"})
	require.NoError(t, err)
	deleted, err := svc.CreateFromRecord(ctx, author.ID, metadata.Record{Title: "Deleted"})
	require.NoError(t, err)
	require.NoError(t, svc.SoftDeleteBooks(ctx, []int{deleted.ID}))

	t.Run("excludes deleted", func(t *testing.T) {
		books, err := svc.ListBooks(ctx, author.ID, false)
		require.NoError(t, err)
		require.Len(t, books, 2)
	})

	t.Run("missing only", func(t *testing.T) {
		books, err := svc.ListBooks(ctx, author.ID, true)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, missing.ID, books[0].ID)
	})

	t.Run("series books sort ahead of standalones", func(t *testing.T) {
		_, err := svc.CreateFromRecord(ctx, author.ID, metadata.Record{
			Title:          "The Alloy of Law",
			Series:         "Wax and Wayne",
			SeriesPosition: "1",
		})
		require.NoError(t, err)

		books, err := svc.ListBooks(ctx, author.ID, false)
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, "The Alloy of Law", books[0].Title)
	})
}

func TestGroupBySeries(t *testing.T) {
	books := []*models.Book{
		{ID: 1, Title: "Book One", Series: str("Mistborn")},
		{ID: 2, Title: "Standalone One"},
		{ID: 3, Title: "Book Two", Series: str("Mistborn")},
		{ID: 4, Title: "Standalone Two", Series: str("")},
	}

	groups := GroupBySeries(books)
	require.Len(t, groups, 2)
	assert.Equal(t, "Mistborn", groups[0].Series)
	assert.Len(t, groups[0].Books, 2)
	assert.Equal(t, "Standalone", groups[1].Series)
	assert.Len(t, groups[1].Books, 2)
}

func TestService_ToggleOwned(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Brandon Sanderson")

	book, err := svc.CreateFromRecord(ctx, author.ID, metadata.Record{Title: "Warbreaker"})
	require.NoError(t, err)

	haveIt, err := svc.ToggleOwned(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, haveIt)

	haveIt, err = svc.ToggleOwned(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, haveIt)
}

func TestService_ApplyMetadata(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Brandon Sanderson")

	book, err := svc.CreateFromRecord(ctx, author.ID, metadata.Record{
		Title:       "Elantris",
		Description: "Kept description.",
	})
	require.NoError(t, err)

	err = svc.ApplyMetadata(ctx, book.ID, metadata.Record{
		Subtitle: "Tenth Anniversary Edition",
		ISBN13:   "9780765350374",
	})
	require.NoError(t, err)

	updated, err := svc.RetrieveBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elantris", updated.Title)
	assert.Equal(t, "Tenth Anniversary Edition", *updated.Subtitle)
	assert.Equal(t, "9780765350374", *updated.ISBN13)
	assert.Equal(t, "Kept description.", *updated.Description)
}

func TestService_ScanEvents(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Brandon Sanderson")

	require.NoError(t, svc.RecordScanEvent(ctx, author.ID, 12, 3))
	require.NoError(t, svc.RecordScanEvent(ctx, author.ID, 0, 0))

	events, err := svc.ListScanEvents(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 0, events[0].BooksFound)
	assert.Equal(t, 12, events[1].BooksFound)
}
