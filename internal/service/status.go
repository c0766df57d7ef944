package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/deepskylab/calib-ui-api/internal/core"
	"github.com/deepskylab/calib-ui-api/internal/domain/model"
	apperrors "github.com/deepskylab/calib-ui-api/internal/errors"
	"github.com/deepskylab/calib-ui-api/internal/observability/metrics"
	"github.com/deepskylab/calib-ui-api/internal/observability/statsd"
)

// StatusServiceOptions groups dependencies for StatusService.
type StatusServiceOptions struct {
	Worker  core.WorkerClient // Required: outbound worker client
	Logger  *slog.Logger      // Optional: structured logger
	Metrics statsd.Sink       // Optional: metrics sink
}

// StatusService resolves current job status from the worker. It performs one
// synchronous request per call and returns {progress, status} only, keeping
// the polling contract stable even if the worker's schema grows. Pollers own
// retry and backoff; both JobNotFound and transport failures are transient
// from their point of view.
type StatusService struct {
	worker  core.WorkerClient
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewStatusService constructs a new StatusService.
func NewStatusService(opts StatusServiceOptions) (*StatusService, error) {
	if opts.Worker == nil {
		return nil, errors.New("WorkerClient is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "status_service")
	}

	return &StatusService{worker: opts.Worker, logger: logger, metrics: opts.Metrics}, nil
}

// MustNewStatusService constructs a new StatusService and panics on error.
func MustNewStatusService(opts StatusServiceOptions) *StatusService {
	svc, err := NewStatusService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create StatusService: %v", err))
	}
	return svc
}

// Get fetches the worker's view of a job and normalizes it into the minimal
// polling shape. Progress is advisory and not guaranteed monotonic across
// polls; it is clamped into [0,100] before leaving this service.
func (s *StatusService) Get(ctx context.Context, jobID string) (*model.StatusResponse, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, apperrors.Validation("job id is required and cannot be empty")
	}

	start := time.Now()
	raw, err := s.worker.Status(ctx, jobID)
	if err != nil {
		s.emit("status", "error", time.Since(start))
		return nil, fmt.Errorf("fetch job status: %w", err)
	}
	s.emit("status", "success", time.Since(start))

	return &model.StatusResponse{
		Progress: clampProgress(raw.Progress),
		Status:   raw.Status,
	}, nil
}

// clampProgress bounds worker-reported progress into the advisory 0-100 range.
func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func (s *StatusService) emit(op, result string, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	metrics.EmitJobOperation(s.metrics, metrics.JobOperation{
		Operation: op,
		Result:    result,
		Duration:  elapsed,
	})
}
