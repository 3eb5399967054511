package jobs

import (
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

const (
	JobStatusPending    = "pending"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
)

const (
	JobTypeScanAuthor = "scan_author"
	JobTypeScanAll    = "scan_all"
)

type Job struct {
	bun.BaseModel `bun:"table:jobs,alias:j"`

	ID         string      `bun:",pk,nullzero" json:"id"`
	Type       string      `bun:",nullzero" json:"type"`
	Status     string      `bun:",nullzero" json:"status"`
	Data       string      `json:"-"`
	DataParsed interface{} `bun:"-" json:"data"`
	ProcessID  *string     `json:"process_id,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (job *Job) UnmarshalData() error {
	switch job.Type {
	case JobTypeScanAuthor:
		job.DataParsed = &JobScanAuthorData{}
	case JobTypeScanAll:
		job.DataParsed = &JobScanAllData{}
	}

	err := json.Unmarshal([]byte(job.Data), job.DataParsed)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

type JobScanAuthorData struct {
	AuthorID int `json:"author_id"`
}

type JobScanAllData struct{}
