package authors

type CreateAuthorPayload struct {
	Name string `json:"name" mod:"trim" validate:"required,max=200"`
}

type UpdateAuthorPayload struct {
	Name string `json:"name" mod:"trim" validate:"required,max=200"`
}

type RetrieveAuthorQuery struct {
	Missing bool `query:"missing" json:"missing,omitempty"`
}
