package jobs

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		jobService: NewService(db),
	}

	g := e.Group("/jobs")
	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
}
