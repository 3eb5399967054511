package scanner

import (
	"net/http"
	"strconv"

	"github.com/bookscoutapp/bookscout/pkg/authors"
	"github.com/bookscoutapp/bookscout/pkg/errcodes"
	"github.com/bookscoutapp/bookscout/pkg/jobs"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	scanService   *Service
	authorService *authors.Service
	jobService    *jobs.Service
}

// scan kicks off a scan for one author. The default is an enqueued job;
// ?wait=true runs the scan in the request and returns its result.
func (h *handler) scan(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	if _, err := h.authorService.RetrieveAuthor(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	if c.QueryParam("wait") == "true" {
		result, err := h.scanService.Scan(ctx, id)
		if err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(c.JSON(http.StatusOK, result))
	}

	active, err := h.jobService.HasActiveJob(ctx, jobs.JobTypeScanAuthor)
	if err != nil {
		return errors.WithStack(err)
	}
	if active {
		return errcodes.Conflict("A scan is already in progress.")
	}

	job := &jobs.Job{
		Type:       jobs.JobTypeScanAuthor,
		Status:     jobs.JobStatusPending,
		DataParsed: &jobs.JobScanAuthorData{AuthorID: id},
	}
	if err := h.jobService.CreateJob(ctx, job); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, job))
}

func (h *handler) scanAll(c echo.Context) error {
	ctx := c.Request().Context()

	active, err := h.jobService.HasActiveJob(ctx, jobs.JobTypeScanAll)
	if err != nil {
		return errors.WithStack(err)
	}
	if active {
		return errcodes.Conflict("A scan is already in progress.")
	}

	job := &jobs.Job{
		Type:       jobs.JobTypeScanAll,
		Status:     jobs.JobStatusPending,
		DataParsed: &jobs.JobScanAllData{},
	}
	if err := h.jobService.CreateJob(ctx, job); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, job))
}
