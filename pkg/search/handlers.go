package search

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	searchService *Service
}

func (h *handler) unifiedSearch(c echo.Context) error {
	ctx := c.Request().Context()

	payload := UnifiedSearchPayload{}
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	results, err := h.searchService.UnifiedSearch(ctx, payload.Query)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Results []Result `json:"results"`
		Count   int      `json:"count"`
	}{results, len(results)}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
