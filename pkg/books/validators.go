package books

type CreateBookPayload struct {
	AuthorID       int     `json:"author_id" validate:"required"`
	Title          string  `json:"title" mod:"trim" validate:"required"`
	Subtitle       *string `json:"subtitle,omitempty" mod:"trim"`
	Series         *string `json:"series,omitempty" mod:"trim"`
	SeriesPosition *string `json:"series_position,omitempty" mod:"trim"`
	ISBN           *string `json:"isbn,omitempty" mod:"trim"`
	ISBN13         *string `json:"isbn13,omitempty" mod:"trim"`
	ASIN           *string `json:"asin,omitempty" mod:"trim"`
	ReleaseDate    *string `json:"release_date,omitempty" mod:"trim"`
	Format         *string `json:"format,omitempty" mod:"trim"`
	CoverURL       *string `json:"cover_url,omitempty" mod:"trim"`
	Description    *string `json:"description,omitempty" mod:"trim"`
	HaveIt         bool    `json:"have_it"`
}

type UpdateBookPayload struct {
	Title          string  `json:"title" mod:"trim" validate:"required"`
	Subtitle       *string `json:"subtitle,omitempty" mod:"trim"`
	Series         *string `json:"series,omitempty" mod:"trim"`
	SeriesPosition *string `json:"series_position,omitempty" mod:"trim"`
	ISBN           *string `json:"isbn,omitempty" mod:"trim"`
	ISBN13         *string `json:"isbn13,omitempty" mod:"trim"`
	ASIN           *string `json:"asin,omitempty" mod:"trim"`
	ReleaseDate    *string `json:"release_date,omitempty" mod:"trim"`
	Format         *string `json:"format,omitempty" mod:"trim"`
	CoverURL       *string `json:"cover_url,omitempty" mod:"trim"`
	Description    *string `json:"description,omitempty" mod:"trim"`
}

type DeleteBooksPayload struct {
	BookIDs []int `json:"book_ids" validate:"required,min=1"`
}

type MergeBooksPayload struct {
	PrimaryID    int   `json:"primary_id" validate:"required"`
	DuplicateIDs []int `json:"duplicate_ids" validate:"required,min=1"`
}

type SearchMetadataPayload struct {
	Title  string `json:"title" mod:"trim" validate:"required"`
	Author string `json:"author" mod:"trim" validate:"required"`
}

type ApplyMetadataPayload struct {
	Title          string `json:"title,omitempty" mod:"trim"`
	Subtitle       string `json:"subtitle,omitempty" mod:"trim"`
	Series         string `json:"series,omitempty" mod:"trim"`
	SeriesPosition string `json:"series_position,omitempty" mod:"trim"`
	ISBN           string `json:"isbn,omitempty" mod:"trim"`
	ISBN13         string `json:"isbn13,omitempty" mod:"trim"`
	ASIN           string `json:"asin,omitempty" mod:"trim"`
	ReleaseDate    string `json:"release_date,omitempty" mod:"trim"`
	Format         string `json:"format,omitempty" mod:"trim"`
	CoverURL       string `json:"cover_url,omitempty" mod:"trim"`
	Description    string `json:"description,omitempty" mod:"trim"`
}
