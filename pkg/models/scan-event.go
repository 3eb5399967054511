package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ScanEvent is an append-only audit row, one per scan invocation.
type ScanEvent struct {
	bun.BaseModel `bun:"table:scan_events,alias:se"`

	ID         int       `bun:",pk,nullzero" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorID   int       `bun:",nullzero" json:"author_id"`
	BooksFound int       `json:"books_found"`
	NewBooks   int       `json:"new_books"`
}
