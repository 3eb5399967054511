package downloads

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, dispatcher *Dispatcher) {
	h := &handler{
		dispatcher: dispatcher,
	}

	e.POST("/api/download", h.download)
}
