package books

import (
	"github.com/bookscoutapp/bookscout/pkg/config"
	"github.com/bookscoutapp/bookscout/pkg/metadata"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config) {
	h := &handler{
		bookService: NewService(db),
		sources: func() []metadata.Source {
			return []metadata.Source{
				metadata.NewOpenLibraryClient("", cfg.MetadataTimeout),
				metadata.NewGoogleBooksClient("", cfg.MetadataTimeout),
				metadata.NewAudnexusClient("", cfg.MetadataTimeout),
			}
		},
	}

	e.POST("/books", h.create)
	e.PATCH("/books/:id", h.update)
	e.POST("/books/delete", h.deleteBatch)
	e.POST("/books/merge", h.merge)
	e.POST("/books/:id/toggle-owned", h.toggleOwned)
	e.POST("/books/:id/search-metadata", h.searchMetadata)
	e.POST("/books/:id/apply-metadata", h.applyMetadata)
}
