// Package core defines the port interfaces between the service layer and the
// outside world (job record store, compute worker, cache). Services depend on
// these interfaces, never on concrete implementations.
package core

import (
	"context"
	"time"

	"github.com/deepskylab/calib-ui-api/internal/domain/model"
)

// FindSuccessfulParams groups parameters for JobRecordRepository.FindSuccessful.
type FindSuccessfulParams struct {
	JobType model.JobType // optional; empty means any type
	Limit   int           // optional; 0 means the repository default
}

// JobRecordRepository is the read-only view of the worker-written job log.
// Rows are created and mutated exclusively by the external worker; this
// service only reads them, so the interface deliberately exposes no writes.
type JobRecordRepository interface {
	// FindSuccessful returns records with status=success ordered by
	// created_at descending. Matching on keys embedded in the result
	// payload happens in memory, not here.
	FindSuccessful(ctx context.Context, params FindSuccessfulParams) ([]model.JobRecord, error)

	// GetByID returns the record for a job identifier, optionally
	// constrained to a job type. Used for the keyed superdark lookup.
	GetByID(ctx context.Context, jobID string, jobType model.JobType) (*model.JobRecord, error)
}

// WorkerClient is the outbound boundary to the external compute worker.
// Every call is a single synchronous request/response with no internal
// retry; callers own backoff policy.
type WorkerClient interface {
	Submit(ctx context.Context, req *model.WorkerSubmitRequest) (*model.WorkerSubmitResponse, error)
	Status(ctx context.Context, jobID string) (*model.WorkerStatusResponse, error)
	Results(ctx context.Context, jobID string) (*model.WorkerResultsResponse, error)
	Cancel(ctx context.Context, jobID string) (*model.WorkerCancelResponse, error)
}

// CacheRepository defines the short-lived cache used for latest-result
// responses. The durable job record store stays the source of truth; the
// cache only exists with explicit invalidation and a small TTL.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
}
