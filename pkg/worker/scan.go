package worker

import (
	"context"

	"github.com/bookscoutapp/bookscout/pkg/jobs"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// ProcessScanAuthorJob runs a single-author scan.
func (w *Worker) ProcessScanAuthorJob(ctx context.Context, job *jobs.Job) error {
	log := logger.FromContext(ctx)

	data, ok := job.DataParsed.(*jobs.JobScanAuthorData)
	if !ok {
		return errors.New("unexpected job data type")
	}

	result, err := w.scanService.Scan(ctx, data.AuthorID)
	if err != nil {
		return err
	}

	log.Data(logger.Data{
		"author_id":   data.AuthorID,
		"books_found": result.BooksFound,
		"new_books":   result.NewBooks,
	}).Info("author scan finished")
	return nil
}

// ProcessScanAllJob scans every active author.
func (w *Worker) ProcessScanAllJob(ctx context.Context, job *jobs.Job) error {
	return w.scanService.ScanAll(ctx)
}
