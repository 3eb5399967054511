package downloads

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	dispatcher *Dispatcher
}

func (h *handler) download(c echo.Context) error {
	ctx := c.Request().Context()

	payload := DownloadPayload{}
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	success := h.dispatcher.Dispatch(ctx, payload.DownloadURL, payload.Title, payload.Type)

	resp := struct {
		Success bool `json:"success"`
	}{success}

	if !success {
		return c.JSON(http.StatusBadGateway, resp)
	}
	return errors.WithStack(c.JSON(http.StatusOK, resp))
}
