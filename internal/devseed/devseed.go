// Package devseed populates a development database with sample job records.
// In production the worker is the only writer of job_records; the seed exists
// so the dashboard can be exercised locally without a running worker.
package devseed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/deepskylab/calib-ui-api/internal/domain/model"
)

// seedRecord is one sample row. Offsets are relative to now so the
// created_at ordering behaves the same on every seed run.
type seedRecord struct {
	JobID     string
	JobType   model.JobType
	Status    model.JobStatus
	Progress  float64
	Result    string
	Error     string
	AgeOffset time.Duration
}

// Run inserts the sample job records, skipping any job_id that already
// exists. Safe to call repeatedly.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	seeded := 0
	for _, rec := range defaultSeedRecords() {
		inserted, err := insertRecord(ctx, db, rec)
		if err != nil {
			return fmt.Errorf("seed job record %s: %w", rec.JobID, err)
		}
		if inserted {
			seeded++
		}
	}
	logger.InfoContext(ctx, "development seed complete", "inserted", seeded)
	return nil
}

func insertRecord(ctx context.Context, db *sql.DB, rec seedRecord) (bool, error) {
	var result, errText any
	if rec.Result != "" {
		if !json.Valid([]byte(rec.Result)) {
			return false, fmt.Errorf("invalid result JSON for %s", rec.JobID)
		}
		result = rec.Result
	}
	if rec.Error != "" {
		errText = rec.Error
	}

	createdAt := time.Now().Add(-rec.AgeOffset)
	res, err := db.ExecContext(ctx, `
		INSERT INTO job_records (job_id, job_type, status, progress, result, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (job_id) DO NOTHING`,
		rec.JobID, string(rec.JobType), string(rec.Status), rec.Progress, result, errText, createdAt,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func defaultSeedRecords() []seedRecord {
	return []seedRecord{
		{
			JobID:    "dev-calib-older",
			JobType:  model.JobTypeCalibration,
			Status:   model.JobStatusSuccess,
			Progress: 100,
			Result: `{"projectId": "orion-m42", "userId": "astro-dev", "frameType": "light",
				"outputFiles": ["calibrated/m42_0001.fits"], "statistics": {"rejectedFrames": 0}}`,
			AgeOffset: 48 * time.Hour,
		},
		{
			JobID:    "dev-calib-latest",
			JobType:  model.JobTypeCalibration,
			Status:   model.JobStatusSuccess,
			Progress: 100,
			Result: `{"project_id": "orion-m42", "user_id": "astro-dev", "frame_type": "light",
				"outputFiles": ["calibrated/m42_0002.fits"], "statistics": {"rejectedFrames": 1}}`,
			AgeOffset: 2 * time.Hour,
		},
		{
			JobID:     "dev-calib-running",
			JobType:   model.JobTypeCalibration,
			Status:    model.JobStatusRunning,
			Progress:  42.5,
			AgeOffset: 10 * time.Minute,
		},
		{
			JobID:     "dev-calib-failed",
			JobType:   model.JobTypeCalibration,
			Status:    model.JobStatusFailed,
			Progress:  67,
			Error:     "master flat frame could not be decoded",
			AgeOffset: 6 * time.Hour,
		},
		{
			JobID:    "dev-superdark-done",
			JobType:  model.JobTypeSuperdarkCreation,
			Status:   model.JobStatusSuccess,
			Progress: 100,
			Result: `{"projectId": "orion-m42", "userId": "astro-dev",
				"superdarkFile": "masters/superdark_20c_120s.fits", "stackedFrames": 32}`,
			AgeOffset: 24 * time.Hour,
		},
		{
			JobID:     "dev-calib-cancelled",
			JobType:   model.JobTypeCalibration,
			Status:    model.JobStatusCancelled,
			Progress:  15,
			AgeOffset: 30 * time.Hour,
		},
	}
}
