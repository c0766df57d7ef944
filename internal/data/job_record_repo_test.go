package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepskylab/calib-ui-api/internal/core"
	"github.com/deepskylab/calib-ui-api/internal/domain/model"
	"github.com/deepskylab/calib-ui-api/internal/testutil"
)

func TestJobRecordRepo_NotConfigured(t *testing.T) {
	repo := &JobRecordRepo{}

	_, err := repo.FindSuccessful(context.Background(), core.FindSuccessfulParams{})
	assert.ErrorIs(t, err, ErrJobRecordsNotConfigured)

	_, err = repo.GetByID(context.Background(), "wk-1", "")
	assert.ErrorIs(t, err, ErrJobRecordsNotConfigured)
}

func TestJobRecordRepo_GetByID_RequiresJobID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewJobRecordRepo(db)

	_, err := repo.GetByID(context.Background(), "  ", "")
	assert.ErrorIs(t, err, ErrJobIDRequired)
}

func TestJobRecordRepo_FindSuccessful_OrderAndFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewJobRecordRepo(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	testutil.NewJobRecord("wk-old").
		WithCreatedAt(now.Add(-2 * time.Hour)).
		Insert(ctx, t, db)
	testutil.NewJobRecord("wk-new").
		WithCreatedAt(now).
		Insert(ctx, t, db)
	testutil.NewJobRecord("wk-running").
		WithStatus(model.JobStatusRunning).
		WithCreatedAt(now.Add(-time.Minute)).
		Insert(ctx, t, db)
	testutil.NewJobRecord("wk-superdark").
		WithType(model.JobTypeSuperdarkCreation).
		WithResult(`{"superdarkFile": "masters/sd.fits"}`).
		WithCreatedAt(now.Add(-time.Hour)).
		Insert(ctx, t, db)

	records, err := repo.FindSuccessful(ctx, core.FindSuccessfulParams{
		JobType: model.JobTypeCalibration,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first; non-success and other job types excluded.
	assert.Equal(t, "wk-new", records[0].JobID)
	assert.Equal(t, "wk-old", records[1].JobID)
	for _, rec := range records {
		assert.Equal(t, model.JobStatusSuccess, rec.Status)
		assert.NoError(t, rec.CheckInvariants())
	}
}

func TestJobRecordRepo_FindSuccessful_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewJobRecordRepo(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	for i, id := range []string{"wk-a", "wk-b", "wk-c"} {
		testutil.NewJobRecord(id).
			WithCreatedAt(now.Add(-time.Duration(i) * time.Minute)).
			Insert(ctx, t, db)
	}

	records, err := repo.FindSuccessful(ctx, core.FindSuccessfulParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "wk-a", records[0].JobID)
	assert.Equal(t, "wk-b", records[1].JobID)
}

func TestJobRecordRepo_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewJobRecordRepo(db)
	ctx := context.Background()

	testutil.NewJobRecord("wk-sd-1").
		WithType(model.JobTypeSuperdarkCreation).
		WithResult(`{"superdarkFile": "masters/sd.fits"}`).
		Insert(ctx, t, db)

	rec, err := repo.GetByID(ctx, "wk-sd-1", model.JobTypeSuperdarkCreation)
	require.NoError(t, err)
	assert.Equal(t, "wk-sd-1", rec.JobID)
	assert.Equal(t, model.JobTypeSuperdarkCreation, rec.JobType)

	// Constrained to the wrong type, the same id is not found.
	_, err = repo.GetByID(ctx, "wk-sd-1", model.JobTypeCalibration)
	assert.ErrorIs(t, err, ErrJobRecordNotFound)

	// Unknown id is not found.
	_, err = repo.GetByID(ctx, "wk-missing", "")
	assert.ErrorIs(t, err, ErrJobRecordNotFound)
}
