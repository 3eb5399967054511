// Package books persists discovered books and everything the UI does with
// them: listing by series, soft deletion, duplicate cleanup, and manual
// metadata edits.
package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookscoutapp/bookscout/pkg/errcodes"
	"github.com/bookscoutapp/bookscout/pkg/metadata"
	"github.com/bookscoutapp/bookscout/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const standaloneSeries = "Standalone"

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// FindExisting locates the author's row for a merged record, matching by
// isbn13, then isbn, then asin, then exact title. Deleted rows are included
// so tombstones can block re-insertion.
func (svc *Service) FindExisting(ctx context.Context, authorID int, rec metadata.Record) (*models.Book, error) {
	type matcher struct {
		column string
		value  string
	}
	matchers := []matcher{
		{"isbn13", rec.ISBN13},
		{"isbn", rec.ISBN},
		{"asin", rec.ASIN},
		{"title", rec.Title},
	}

	for _, m := range matchers {
		if m.value == "" {
			continue
		}

		book := &models.Book{}
		err := svc.db.NewSelect().
			Model(book).
			Where("author_id = ?", authorID).
			Where("? = ?", bun.Ident(m.column), m.value).
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		} else if err != nil {
			return nil, errors.WithStack(err)
		}
		return book, nil
	}

	return nil, nil
}

// CreateFromRecord inserts a newly discovered book.
func (svc *Service) CreateFromRecord(ctx context.Context, authorID int, rec metadata.Record) (*models.Book, error) {
	now := time.Now()
	book := &models.Book{
		CreatedAt:      now,
		UpdatedAt:      now,
		AuthorID:       authorID,
		Title:          rec.Title,
		Subtitle:       optional(rec.Subtitle),
		ISBN:           optional(rec.ISBN),
		ISBN13:         optional(rec.ISBN13),
		ASIN:           optional(rec.ASIN),
		ReleaseDate:    optional(rec.ReleaseDate),
		Format:         optional(rec.Format),
		Sources:        rec.Sources,
		CoverURL:       optional(rec.CoverURL),
		Description:    optional(rec.Description),
		Series:         optional(rec.Series),
		SeriesPosition: optional(rec.SeriesPosition),
		HaveIt:         rec.HaveIt,
		FoundDate:      now,
	}

	_, err := svc.db.NewInsert().
		Model(book).
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return book, nil
}

// UpdatePreserving refreshes an existing row from a rescan. Only empty
// columns take the new value so manual edits survive; have_it alone always
// reflects the latest library check.
func (svc *Service) UpdatePreserving(ctx context.Context, bookID int, rec metadata.Record) error {
	_, err := svc.db.NewUpdate().
		Model((*models.Book)(nil)).
		Set("have_it = ?", rec.HaveIt).
		Set("series = COALESCE(series, ?)", optional(rec.Series)).
		Set("series_position = COALESCE(series_position, ?)", optional(rec.SeriesPosition)).
		Set("cover_url = COALESCE(cover_url, ?)", optional(rec.CoverURL)).
		Set("subtitle = COALESCE(subtitle, ?)", optional(rec.Subtitle)).
		Set("description = COALESCE(description, ?)", optional(rec.Description)).
		Set("asin = COALESCE(asin, ?)", optional(rec.ASIN)).
		Set("isbn = COALESCE(isbn, ?)", optional(rec.ISBN)).
		Set("isbn13 = COALESCE(isbn13, ?)", optional(rec.ISBN13)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", bookID).
		Exec(ctx)
	return errors.WithStack(err)
}

// ListBooks returns an author's live books ordered for series display.
func (svc *Service) ListBooks(ctx context.Context, authorID int, missingOnly bool) ([]*models.Book, error) {
	books := []*models.Book{}
	q := svc.db.NewSelect().
		Model(&books).
		Where("author_id = ?", authorID).
		Where("deleted = ?", false).
		OrderExpr("series ASC NULLS LAST, series_position ASC, release_date DESC")
	if missingOnly {
		q = q.Where("have_it = ?", false)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	return books, nil
}

// SeriesGroup is one display bucket; books without a series land in
// "Standalone".
type SeriesGroup struct {
	Series string         `json:"series"`
	Books  []*models.Book `json:"books"`
}

// GroupBySeries buckets books by series, preserving the list order within
// and across groups.
func GroupBySeries(books []*models.Book) []SeriesGroup {
	index := map[string]int{}
	groups := []SeriesGroup{}

	for _, book := range books {
		series := standaloneSeries
		if book.Series != nil && *book.Series != "" {
			series = *book.Series
		}

		i, ok := index[series]
		if !ok {
			i = len(groups)
			index[series] = i
			groups = append(groups, SeriesGroup{Series: series})
		}
		groups[i].Books = append(groups[i].Books, book)
	}

	return groups
}

func (svc *Service) RetrieveBook(ctx context.Context, id int) (*models.Book, error) {
	book := &models.Book{}
	err := svc.db.NewSelect().
		Model(book).
		Where("b.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errcodes.NotFound("Book")
	} else if err != nil {
		return nil, errors.WithStack(err)
	}
	return book, nil
}

// SoftDeleteBooks tombstones books so rescans won't re-add them.
func (svc *Service) SoftDeleteBooks(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := svc.db.NewUpdate().
		Model((*models.Book)(nil)).
		Set("deleted = ?", true).
		Set("updated_at = ?", time.Now()).
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) HardDeleteBook(ctx context.Context, id int) error {
	_, err := svc.db.NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}

// ToggleOwned flips have_it and returns the new value.
func (svc *Service) ToggleOwned(ctx context.Context, id int) (bool, error) {
	book, err := svc.RetrieveBook(ctx, id)
	if err != nil {
		return false, err
	}

	book.HaveIt = !book.HaveIt
	book.UpdatedAt = time.Now()
	_, err = svc.db.NewUpdate().
		Model(book).
		Column("have_it", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return book.HaveIt, nil
}

// CreateBook inserts a manually added book.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now
	book.FoundDate = now
	if len(book.Sources) == 0 {
		book.Sources = models.SourceList{metadata.SourceManual}
	}

	_, err := svc.db.NewInsert().
		Model(book).
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return book, nil
}

// UpdateBook replaces a book's editable fields with the payload's values.
func (svc *Service) UpdateBook(ctx context.Context, id int, fields UpdateBookFields) (*models.Book, error) {
	book, err := svc.RetrieveBook(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Title = fields.Title
	book.Subtitle = fields.Subtitle
	book.Series = fields.Series
	book.SeriesPosition = fields.SeriesPosition
	book.ISBN = fields.ISBN
	book.ISBN13 = fields.ISBN13
	book.ASIN = fields.ASIN
	book.ReleaseDate = fields.ReleaseDate
	book.Format = fields.Format
	book.CoverURL = fields.CoverURL
	book.Description = fields.Description
	book.UpdatedAt = time.Now()

	_, err = svc.db.NewUpdate().
		Model(book).
		Column(
			"title", "subtitle", "series", "series_position", "isbn", "isbn13",
			"asin", "release_date", "format", "cover_url", "description",
			"updated_at",
		).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return book, nil
}

// UpdateBookFields is the full set of editable columns.
type UpdateBookFields struct {
	Title          string
	Subtitle       *string
	Series         *string
	SeriesPosition *string
	ISBN           *string
	ISBN13         *string
	ASIN           *string
	ReleaseDate    *string
	Format         *string
	CoverURL       *string
	Description    *string
}

// ApplyMetadata copies the non-empty payload fields onto a book, leaving the
// rest untouched.
func (svc *Service) ApplyMetadata(ctx context.Context, id int, rec metadata.Record) error {
	if _, err := svc.RetrieveBook(ctx, id); err != nil {
		return err
	}

	q := svc.db.NewUpdate().
		Model((*models.Book)(nil)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id)

	fields := []struct {
		column string
		value  string
	}{
		{"title", rec.Title},
		{"subtitle", rec.Subtitle},
		{"series", rec.Series},
		{"series_position", rec.SeriesPosition},
		{"isbn", rec.ISBN},
		{"isbn13", rec.ISBN13},
		{"asin", rec.ASIN},
		{"release_date", rec.ReleaseDate},
		{"format", rec.Format},
		{"cover_url", rec.CoverURL},
		{"description", rec.Description},
	}
	for _, field := range fields {
		if field.value != "" {
			q = q.Set("? = ?", bun.Ident(field.column), field.value)
		}
	}

	_, err := q.Exec(ctx)
	return errors.WithStack(err)
}

// RecordScanEvent appends a scan audit row.
func (svc *Service) RecordScanEvent(ctx context.Context, authorID, booksFound, newBooks int) error {
	event := &models.ScanEvent{
		CreatedAt:  time.Now(),
		AuthorID:   authorID,
		BooksFound: booksFound,
		NewBooks:   newBooks,
	}
	_, err := svc.db.NewInsert().
		Model(event).
		Exec(ctx)
	return errors.WithStack(err)
}

// ListScanEvents returns an author's scan history, newest first.
func (svc *Service) ListScanEvents(ctx context.Context, authorID int) ([]*models.ScanEvent, error) {
	events := []*models.ScanEvent{}
	err := svc.db.NewSelect().
		Model(&events).
		Where("author_id = ?", authorID).
		Order("created_at DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return events, nil
}

func (svc *Service) authorExists(ctx context.Context, id int) (bool, error) {
	exists, err := svc.db.NewSelect().
		Model((*models.Author)(nil)).
		Where("id = ?", id).
		Exists(ctx)
	return exists, errors.WithStack(err)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
