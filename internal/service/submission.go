// Package service implements the business logic of the calibration job
// orchestration layer: submission, status polling, result retrieval,
// latest-result resolution, and cancellation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/deepskylab/calib-ui-api/internal/core"
	"github.com/deepskylab/calib-ui-api/internal/domain/model"
	apperrors "github.com/deepskylab/calib-ui-api/internal/errors"
	"github.com/deepskylab/calib-ui-api/internal/observability/metrics"
	"github.com/deepskylab/calib-ui-api/internal/observability/statsd"
)

// CacheInvalidator invalidates cached latest-result entries for a project.
// Implemented by LatestResultService; optional everywhere it appears.
type CacheInvalidator interface {
	InvalidateProject(ctx context.Context, projectID, userID string)
}

// SubmissionServiceOptions groups dependencies for SubmissionService.
type SubmissionServiceOptions struct {
	Worker      core.WorkerClient // Required: outbound worker client
	Invalidator CacheInvalidator  // Optional: latest-result cache invalidation
	Logger      *slog.Logger      // Optional: structured logger
	Metrics     statsd.Sink       // Optional: metrics sink
}

// SubmissionService validates and normalizes calibration requests and
// forwards them to the compute worker. The worker assigns the job identifier
// and its response is returned verbatim, HTTP status included.
type SubmissionService struct {
	worker      core.WorkerClient
	invalidator CacheInvalidator
	logger      *slog.Logger
	metrics     statsd.Sink
}

// NewSubmissionService constructs a new SubmissionService.
func NewSubmissionService(opts SubmissionServiceOptions) (*SubmissionService, error) {
	if opts.Worker == nil {
		return nil, errors.New("WorkerClient is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "submission_service")
	}

	return &SubmissionService{
		worker:      opts.Worker,
		invalidator: opts.Invalidator,
		logger:      logger,
		metrics:     opts.Metrics,
	}, nil
}

// MustNewSubmissionService constructs a new SubmissionService and panics on error.
func MustNewSubmissionService(opts SubmissionServiceOptions) *SubmissionService {
	svc, err := NewSubmissionService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create SubmissionService: %v", err))
	}
	return svc
}

// SubmitCalibration validates a calibration request, normalizes it into the
// worker schema, and forwards it. Validation failures never reach the worker;
// transport failures come back distinct from worker-reported rejections so
// the caller can tell "worker rejected the job" from "could not reach worker".
func (s *SubmissionService) SubmitCalibration(
	ctx context.Context,
	req *model.CalibrationRequest,
) (*model.WorkerSubmitResponse, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	return s.submit(ctx, req.Normalize())
}

// SubmitSuperdark validates a superdark synthesis request and forwards it.
func (s *SubmissionService) SubmitSuperdark(
	ctx context.Context,
	req *model.SuperdarkRequest,
) (*model.WorkerSubmitResponse, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	return s.submit(ctx, req.Normalize())
}

func (s *SubmissionService) submit(
	ctx context.Context,
	payload *model.WorkerSubmitRequest,
) (*model.WorkerSubmitResponse, error) {
	start := time.Now()
	resp, err := s.worker.Submit(ctx, payload)
	if err != nil {
		s.emit("submit", "error", time.Since(start))
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "job submission failed",
				"job_type", payload.JobType,
				"project_id", payload.ProjectID,
				"error", err)
		}
		return nil, fmt.Errorf("submit job: %w", err)
	}

	// A new submission may soon supersede the cached latest result for this
	// project, so drop the cached entries early rather than waiting out the TTL.
	// Submissions without a project id have no cache keys to drop.
	if s.invalidator != nil && payload.ProjectID != "" {
		s.invalidator.InvalidateProject(ctx, payload.ProjectID, payload.UserID)
	}

	s.emit("submit", "success", time.Since(start))
	if s.logger != nil {
		s.logger.InfoContext(ctx, "job submitted",
			"job_id", resp.JobID,
			"job_type", payload.JobType,
			"status", resp.Status)
	}
	return resp, nil
}

func (s *SubmissionService) emit(op, result string, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	metrics.EmitJobOperation(s.metrics, metrics.JobOperation{
		Operation: op,
		Result:    result,
		Duration:  elapsed,
	})
}
