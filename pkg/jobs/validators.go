package jobs

// ListJobsQuery is the query string for listing jobs.
type ListJobsQuery struct {
	Limit  int      `query:"limit" default:"24" validate:"min=1,max=100"`
	Status []string `query:"status" validate:"dive,oneof=pending in_progress completed"`
}
