package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Job record repository sentinels.
	ErrJobRecordsNotConfigured = errors.New("job record repository not configured")
	ErrJobRecordNotFound       = errors.New("job record not found")
	ErrJobIDRequired           = errors.New("job_id is required")
)
