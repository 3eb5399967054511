package authors

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bookscoutapp/bookscout/pkg/books"
	"github.com/bookscoutapp/bookscout/pkg/errcodes"
	"github.com/bookscoutapp/bookscout/pkg/models"
	"github.com/bookscoutapp/bookscout/pkg/settings"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	authorService   *Service
	bookService     *books.Service
	settingsService *settings.Service

	// Swapped out in tests.
	libraryAuthors func(ctx context.Context, resolved *settings.ResolvedConfig) ([]string, error)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	authors, err := h.authorService.ListAuthors(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Authors []*models.Author `json:"authors"`
	}{authors}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := CreateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	author, err := h.authorService.CreateAuthor(ctx, params.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, author))
}

func (h *handler) bulkImport(c echo.Context) error {
	ctx := c.Request().Context()

	resolved, err := h.settingsService.Resolve(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	names, err := h.libraryAuthors(ctx, resolved)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(names) == 0 {
		return errcodes.ValidationError("Could not retrieve authors from Audiobookshelf. Check your settings.")
	}

	added, skipped, err := h.authorService.BulkImport(ctx, names)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Added   int `json:"added"`
		Skipped int `json:"skipped"`
	}{added, skipped}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	// Bind params.
	params := RetrieveAuthorQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	bookList, err := h.bookService.ListBooks(ctx, id, params.Missing)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Author *models.Author      `json:"author"`
		Books  []*models.Book      `json:"books"`
		Series []books.SeriesGroup `json:"series"`
	}{author, bookList, books.GroupBySeries(bookList)}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	// Bind params.
	params := UpdateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	author, err := h.authorService.RenameAuthor(ctx, id, params.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, author))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	if err := h.authorService.DeactivateAuthor(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) duplicates(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	groups, err := h.bookService.FindDuplicateGroups(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Author *models.Author   `json:"author"`
		Groups [][]*models.Book `json:"groups"`
	}{author, groups}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) scans(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	events, err := h.bookService.ListScanEvents(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Scans []*models.ScanEvent `json:"scans"`
	}{events}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
