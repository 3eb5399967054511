package authors

import (
	"context"

	"github.com/bookscoutapp/bookscout/pkg/books"
	"github.com/bookscoutapp/bookscout/pkg/config"
	"github.com/bookscoutapp/bookscout/pkg/ownership"
	"github.com/bookscoutapp/bookscout/pkg/settings"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config) {
	h := &handler{
		authorService:   NewService(db),
		bookService:     books.NewService(db),
		settingsService: settings.NewService(db, cfg),
		libraryAuthors: func(ctx context.Context, resolved *settings.ResolvedConfig) ([]string, error) {
			client := ownership.NewAudiobookshelfClient(resolved.AudiobookshelfURL, resolved.AudiobookshelfToken, cfg.MetadataTimeout)
			return client.ListAuthors(ctx)
		},
	}

	e.GET("/authors", h.list)
	e.POST("/authors", h.create)
	e.POST("/authors/bulk-import", h.bulkImport)
	e.GET("/authors/:id", h.retrieve)
	e.PATCH("/authors/:id", h.update)
	e.DELETE("/authors/:id", h.delete)
	e.GET("/authors/:id/duplicates", h.duplicates)
	e.GET("/authors/:id/scans", h.scans)
}
