package search

// UnifiedSearchPayload is the request body for a unified search.
type UnifiedSearchPayload struct {
	Query string `json:"query" mod:"trim" validate:"required"`
}
