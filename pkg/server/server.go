package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bookscoutapp/bookscout/pkg/authors"
	"github.com/bookscoutapp/bookscout/pkg/binder"
	"github.com/bookscoutapp/bookscout/pkg/books"
	"github.com/bookscoutapp/bookscout/pkg/config"
	"github.com/bookscoutapp/bookscout/pkg/downloads"
	"github.com/bookscoutapp/bookscout/pkg/errcodes"
	"github.com/bookscoutapp/bookscout/pkg/jobs"
	"github.com/bookscoutapp/bookscout/pkg/scanner"
	"github.com/bookscoutapp/bookscout/pkg/search"
	"github.com/bookscoutapp/bookscout/pkg/settings"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB, scanService *scanner.Service) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	settingsService := settings.NewService(db, cfg)

	authors.RegisterRoutes(e, db, cfg)
	books.RegisterRoutes(e, db, cfg)
	scanner.RegisterRoutes(e, db, scanService)
	jobs.RegisterRoutes(e, db)
	settings.RegisterRoutes(e, db, cfg)
	search.RegisterRoutes(e, search.NewService(settingsService, cfg.IndexerTimeout))
	downloads.RegisterRoutes(e, downloads.NewDispatcher(settingsService, cfg.DownloadTimeout))

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
