package settings

import (
	"github.com/bookscoutapp/bookscout/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config) {
	h := &handler{
		settingsService: NewService(db, cfg),
	}

	e.GET("/settings", h.list)
	e.PUT("/settings", h.update)
}
