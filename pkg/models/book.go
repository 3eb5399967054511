package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID             int        `bun:",pk,nullzero" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	AuthorID       int        `bun:",nullzero" json:"author_id"`
	Author         *Author    `bun:"rel:belongs-to" json:"author,omitempty"`
	Title          string     `bun:",nullzero" json:"title"`
	Subtitle       *string    `json:"subtitle,omitempty"`
	ISBN           *string    `bun:"isbn" json:"isbn,omitempty"`
	ISBN13         *string    `bun:"isbn13" json:"isbn13,omitempty"`
	ASIN           *string    `bun:"asin" json:"asin,omitempty"`
	ReleaseDate    *string    `json:"release_date,omitempty"`
	Format         *string    `json:"format,omitempty"`
	Sources        SourceList `bun:"source" json:"source"`
	CoverURL       *string    `json:"cover_url,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Series         *string    `json:"series,omitempty"`
	SeriesPosition *string    `json:"series_position,omitempty"`
	HaveIt         bool       `json:"have_it"`
	Deleted        bool       `json:"deleted"`
	FoundDate      time.Time  `bun:",nullzero" json:"found_date"`
}
