package scanner

import (
	"github.com/bookscoutapp/bookscout/pkg/authors"
	"github.com/bookscoutapp/bookscout/pkg/jobs"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB, scanService *Service) {
	h := &handler{
		scanService:   scanService,
		authorService: authors.NewService(db),
		jobService:    jobs.NewService(db),
	}

	e.POST("/authors/:id/scan", h.scan)
	e.POST("/scan-all", h.scanAll)
}
