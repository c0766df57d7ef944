package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deepskylab/calib-ui-api/internal/domain/model"
)

// JobRecordBuilder provides a fluent interface for building JobRecord rows for testing.
type JobRecordBuilder struct {
	rec model.JobRecord
}

// NewJobRecord creates a JobRecordBuilder with sensible defaults: a successful
// calibration record whose result payload carries matchable keys.
func NewJobRecord(jobID string) *JobRecordBuilder {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &JobRecordBuilder{
		rec: model.JobRecord{
			JobID:    jobID,
			JobType:  model.JobTypeCalibration,
			Status:   model.JobStatusSuccess,
			Progress: 100,
			Result: json.RawMessage(
				`{"projectId": "proj-1", "userId": "user-1", "frameType": "light"}`,
			),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithType sets the job type.
func (b *JobRecordBuilder) WithType(jobType model.JobType) *JobRecordBuilder {
	b.rec.JobType = jobType
	return b
}

// WithStatus sets the status. Non-success statuses clear the result so the
// built record keeps its invariants.
func (b *JobRecordBuilder) WithStatus(status model.JobStatus) *JobRecordBuilder {
	b.rec.Status = status
	if status != model.JobStatusSuccess {
		b.rec.Result = nil
	}
	return b
}

// WithProgress sets the progress percentage.
func (b *JobRecordBuilder) WithProgress(progress float64) *JobRecordBuilder {
	b.rec.Progress = progress
	return b
}

// WithResult sets the result payload from a JSON string.
func (b *JobRecordBuilder) WithResult(result string) *JobRecordBuilder {
	b.rec.Result = json.RawMessage(result)
	return b
}

// WithResultKeys sets a result payload carrying the given matchable keys.
func (b *JobRecordBuilder) WithResultKeys(projectID, userID string, frameType model.FrameType) *JobRecordBuilder {
	b.rec.Result = json.RawMessage(fmt.Sprintf(
		`{"projectId": %q, "userId": %q, "frameType": %q}`, projectID, userID, frameType,
	))
	return b
}

// WithError sets the error text.
func (b *JobRecordBuilder) WithError(msg string) *JobRecordBuilder {
	b.rec.Error = &msg
	return b
}

// WithWarnings sets the warnings payload from a JSON string.
func (b *JobRecordBuilder) WithWarnings(warnings string) *JobRecordBuilder {
	b.rec.Warnings = json.RawMessage(warnings)
	return b
}

// WithCreatedAt sets the creation timestamp, which drives recency ordering.
func (b *JobRecordBuilder) WithCreatedAt(t time.Time) *JobRecordBuilder {
	b.rec.CreatedAt = t
	b.rec.UpdatedAt = t
	return b
}

// Build returns the constructed JobRecord.
func (b *JobRecordBuilder) Build() model.JobRecord {
	return b.rec
}

// Insert writes the record into the job_records table. Tests stand in for the
// worker here since production code never writes this table.
func (b *JobRecordBuilder) Insert(ctx context.Context, t TestingTB, db *sql.DB) model.JobRecord {
	t.Helper()
	rec := b.rec
	_, err := db.ExecContext(ctx, `
		INSERT INTO job_records (job_id, job_type, status, progress, result, diagnostics, warnings, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.JobID, string(rec.JobType), string(rec.Status), rec.Progress,
		nullableJSON(rec.Result), nullableJSON(rec.Diagnostics), nullableJSON(rec.Warnings),
		rec.Error, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("insert job record %s: %v", rec.JobID, err)
	}
	return rec
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// CalibrationRequestBuilder provides a fluent interface for building
// CalibrationRequest payloads for testing.
type CalibrationRequestBuilder struct {
	req model.CalibrationRequest
}

// NewCalibrationRequest creates a builder with a valid default request.
func NewCalibrationRequest() *CalibrationRequestBuilder {
	return &CalibrationRequestBuilder{
		req: model.CalibrationRequest{
			InputFrames: []string{"frame-001.fits", "frame-002.fits"},
			ProjectID:   "proj-1",
			UserID:      "user-1",
		},
	}
}

// WithInputFrames sets the input frame identifiers.
func (b *CalibrationRequestBuilder) WithInputFrames(frames ...string) *CalibrationRequestBuilder {
	b.req.InputFrames = frames
	return b
}

// WithMasters sets the optional master frame references.
func (b *CalibrationRequestBuilder) WithMasters(bias, dark, flat string) *CalibrationRequestBuilder {
	b.req.MasterBias = bias
	b.req.MasterDark = dark
	b.req.MasterFlat = flat
	return b
}

// WithSettings sets the advanced settings payload from a JSON string.
func (b *CalibrationRequestBuilder) WithSettings(settings string) *CalibrationRequestBuilder {
	b.req.Settings = json.RawMessage(settings)
	return b
}

// WithProject sets the project and user identity.
func (b *CalibrationRequestBuilder) WithProject(projectID, userID string) *CalibrationRequestBuilder {
	b.req.ProjectID = projectID
	b.req.UserID = userID
	return b
}

// Build returns the constructed request.
func (b *CalibrationRequestBuilder) Build() *model.CalibrationRequest {
	req := b.req
	return &req
}

// SuperdarkRequestBuilder provides a fluent interface for building
// SuperdarkRequest payloads for testing.
type SuperdarkRequestBuilder struct {
	req model.SuperdarkRequest
}

// NewSuperdarkRequest creates a builder with a valid default request.
func NewSuperdarkRequest() *SuperdarkRequestBuilder {
	return &SuperdarkRequestBuilder{
		req: model.SuperdarkRequest{
			DarkFrames: []string{"dark-001.fits", "dark-002.fits", "dark-003.fits"},
			ProjectID:  "proj-1",
			UserID:     "user-1",
		},
	}
}

// WithDarkFrames sets the dark frame identifiers.
func (b *SuperdarkRequestBuilder) WithDarkFrames(frames ...string) *SuperdarkRequestBuilder {
	b.req.DarkFrames = frames
	return b
}

// WithProject sets the project and user identity.
func (b *SuperdarkRequestBuilder) WithProject(projectID, userID string) *SuperdarkRequestBuilder {
	b.req.ProjectID = projectID
	b.req.UserID = userID
	return b
}

// Build returns the constructed request.
func (b *SuperdarkRequestBuilder) Build() *model.SuperdarkRequest {
	req := b.req
	return &req
}
