package books

import (
	"net/http"
	"strconv"

	"github.com/bookscoutapp/bookscout/pkg/errcodes"
	"github.com/bookscoutapp/bookscout/pkg/metadata"
	"github.com/bookscoutapp/bookscout/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service

	// Swapped out in tests.
	sources func() []metadata.Source
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	exists, err := h.bookService.authorExists(ctx, params.AuthorID)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.NotFound("Author")
	}

	book := &models.Book{
		AuthorID:       params.AuthorID,
		Title:          params.Title,
		Subtitle:       params.Subtitle,
		Series:         params.Series,
		SeriesPosition: params.SeriesPosition,
		ISBN:           params.ISBN,
		ISBN13:         params.ISBN13,
		ASIN:           params.ASIN,
		ReleaseDate:    params.ReleaseDate,
		Format:         params.Format,
		CoverURL:       params.CoverURL,
		Description:    params.Description,
		HaveIt:         params.HaveIt,
	}
	book, err = h.bookService.CreateBook(ctx, book)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	// Bind params.
	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.UpdateBook(ctx, id, UpdateBookFields{
		Title:          params.Title,
		Subtitle:       params.Subtitle,
		Series:         params.Series,
		SeriesPosition: params.SeriesPosition,
		ISBN:           params.ISBN,
		ISBN13:         params.ISBN13,
		ASIN:           params.ASIN,
		ReleaseDate:    params.ReleaseDate,
		Format:         params.Format,
		CoverURL:       params.CoverURL,
		Description:    params.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) deleteBatch(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := DeleteBooksPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.bookService.SoftDeleteBooks(ctx, params.BookIDs); err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Deleted int `json:"deleted"`
	}{len(params.BookIDs)}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) merge(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := MergeBooksPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.bookService.MergeBooks(ctx, params.PrimaryID, params.DuplicateIDs); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.RetrieveBook(ctx, params.PrimaryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) toggleOwned(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	haveIt, err := h.bookService.ToggleOwned(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		HaveIt bool `json:"have_it"`
	}{haveIt}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

// searchMetadata fans the book's author out to every catalog source without a
// language filter, then keeps only records whose title overlaps the book's.
func (h *handler) searchMetadata(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	if _, err := h.bookService.RetrieveBook(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	// Bind params.
	params := SearchMetadataPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	results := []metadata.Record{}
	for _, source := range h.sources() {
		for _, rec := range source.Search(ctx, params.Author, metadata.LanguageAll) {
			if metadata.TitleContains(rec.Title, params.Title) {
				results = append(results, rec)
			}
		}
	}

	resp := struct {
		Results []metadata.Record `json:"results"`
		Count   int               `json:"count"`
	}{results, len(results)}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) applyMetadata(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	// Bind params.
	params := ApplyMetadataPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	err = h.bookService.ApplyMetadata(ctx, id, metadata.Record{
		Title:          params.Title,
		Subtitle:       params.Subtitle,
		Series:         params.Series,
		SeriesPosition: params.SeriesPosition,
		ISBN:           params.ISBN,
		ISBN13:         params.ISBN13,
		ASIN:           params.ASIN,
		ReleaseDate:    params.ReleaseDate,
		Format:         params.Format,
		CoverURL:       params.CoverURL,
		Description:    params.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.RetrieveBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}
