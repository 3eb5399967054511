package settings

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	settingsService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	all, err := h.settingsService.All(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, settingsResponse{Settings: all})
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	payload := updateSettingsPayload{}
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	if err := h.settingsService.SaveAll(ctx, payload.Settings); err != nil {
		return errors.WithStack(err)
	}

	all, err := h.settingsService.All(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, settingsResponse{Settings: all})
}
