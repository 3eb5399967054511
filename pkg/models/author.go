package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID            int        `bun:",pk,nullzero" json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Name          string     `bun:",nullzero" json:"name"`
	OpenLibraryID *string    `bun:"openlibrary_id" json:"openlibrary_id,omitempty"`
	AudibleID     *string    `json:"audible_id,omitempty"`
	GoodreadsID   *string    `json:"goodreads_id,omitempty"`
	LastScanned   *time.Time `json:"last_scanned,omitempty"`
	Active        bool       `json:"active"`
}
