package jobs

import (
	"context"
	"database/sql"
	"testing"

	"github.com/bookscoutapp/bookscout/pkg/migrations"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestService_CreateAndRetrieveJob(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	job := &Job{
		Type:       JobTypeScanAuthor,
		Status:     JobStatusPending,
		DataParsed: &JobScanAuthorData{AuthorID: 42},
	}
	require.NoError(t, svc.CreateJob(ctx, job))
	require.NotEmpty(t, job.ID)

	retrieved, err := svc.RetrieveJob(ctx, RetrieveJobOptions{ID: &job.ID})
	require.NoError(t, err)
	assert.Equal(t, JobStatusPending, retrieved.Status)

	data, ok := retrieved.DataParsed.(*JobScanAuthorData)
	require.True(t, ok)
	assert.Equal(t, 42, data.AuthorID)
}

func TestService_ListJobs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	pending := &Job{Type: JobTypeScanAll, Status: JobStatusPending}
	require.NoError(t, svc.CreateJob(ctx, pending))

	claimed := &Job{
		Type:      JobTypeScanAll,
		Status:    JobStatusInProgress,
		ProcessID: pointerutil.String("deadbeef"),
	}
	require.NoError(t, svc.CreateJob(ctx, claimed))

	completed := &Job{Type: JobTypeScanAll, Status: JobStatusCompleted}
	require.NoError(t, svc.CreateJob(ctx, completed))

	t.Run("filters by status", func(t *testing.T) {
		listed, err := svc.ListJobs(ctx, ListJobsOptions{
			Statuses: []string{JobStatusPending},
		})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, pending.ID, listed[0].ID)
	})

	t.Run("excludes jobs claimed by other processes", func(t *testing.T) {
		listed, err := svc.ListJobs(ctx, ListJobsOptions{
			Statuses:           []string{JobStatusPending, JobStatusInProgress},
			ProcessIDToExclude: pointerutil.String("deadbeef"),
		})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, pending.ID, listed[0].ID)
	})
}

func TestService_HasActiveJob(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	active, err := svc.HasActiveJob(ctx, JobTypeScanAll)
	require.NoError(t, err)
	assert.False(t, active)

	job := &Job{Type: JobTypeScanAll, Status: JobStatusPending}
	require.NoError(t, svc.CreateJob(ctx, job))

	active, err = svc.HasActiveJob(ctx, JobTypeScanAll)
	require.NoError(t, err)
	assert.True(t, active)

	job.Status = JobStatusCompleted
	require.NoError(t, svc.UpdateJob(ctx, job, UpdateJobOptions{Columns: []string{"status"}}))

	active, err = svc.HasActiveJob(ctx, JobTypeScanAll)
	require.NoError(t, err)
	assert.False(t, active)
}
