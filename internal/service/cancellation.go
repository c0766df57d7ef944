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

// CancellationServiceOptions groups dependencies for CancellationService.
type CancellationServiceOptions struct {
	Worker  core.WorkerClient // Required: outbound worker client
	Logger  *slog.Logger      // Optional: structured logger
	Metrics statsd.Sink       // Optional: metrics sink
}

// CancellationService forwards cancel commands to the worker and returns the
// acknowledgement verbatim. It never pre-checks local state: cancelling an
// already-terminal job is forwarded as-is and the worker decides whether
// that is a no-op or an error, which keeps the operation idempotent from the
// caller's perspective.
type CancellationService struct {
	worker  core.WorkerClient
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewCancellationService constructs a new CancellationService.
func NewCancellationService(opts CancellationServiceOptions) (*CancellationService, error) {
	if opts.Worker == nil {
		return nil, errors.New("WorkerClient is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "cancellation_service")
	}

	return &CancellationService{worker: opts.Worker, logger: logger, metrics: opts.Metrics}, nil
}

// MustNewCancellationService constructs a new CancellationService and panics on error.
func MustNewCancellationService(opts CancellationServiceOptions) *CancellationService {
	svc, err := NewCancellationService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create CancellationService: %v", err))
	}
	return svc
}

// Cancel forwards the cancel command for a job identifier. Only transport
// failures surface as errors; the worker's acknowledgement, whatever its
// status, is passed back untouched.
func (s *CancellationService) Cancel(ctx context.Context, jobID string) (*model.WorkerCancelResponse, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, apperrors.Validation("job id is required and cannot be empty")
	}

	start := time.Now()
	ack, err := s.worker.Cancel(ctx, jobID)
	if err != nil {
		s.emit("cancel", "error", time.Since(start))
		return nil, fmt.Errorf("cancel job: %w", err)
	}

	s.emit("cancel", "success", time.Since(start))
	if s.logger != nil {
		s.logger.InfoContext(ctx, "job cancel forwarded",
			"job_id", jobID,
			"worker_status", ack.HTTPStatus)
	}
	return ack, nil
}

func (s *CancellationService) emit(op, result string, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	metrics.EmitJobOperation(s.metrics, metrics.JobOperation{
		Operation: op,
		Result:    result,
		Duration:  elapsed,
	})
}
