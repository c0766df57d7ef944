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

// ResultsServiceOptions groups dependencies for ResultsService.
type ResultsServiceOptions struct {
	Worker  core.WorkerClient // Required: outbound worker client
	Logger  *slog.Logger      // Optional: structured logger
	Metrics statsd.Sink       // Optional: metrics sink
}

// ResultsService fetches the full result payload (calibrated frame
// references, diagnostics, logs) from the worker and passes it through
// unmodified. Nothing is cached; every call re-fetches.
type ResultsService struct {
	worker  core.WorkerClient
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewResultsService constructs a new ResultsService.
func NewResultsService(opts ResultsServiceOptions) (*ResultsService, error) {
	if opts.Worker == nil {
		return nil, errors.New("WorkerClient is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "results_service")
	}

	return &ResultsService{worker: opts.Worker, logger: logger, metrics: opts.Metrics}, nil
}

// MustNewResultsService constructs a new ResultsService and panics on error.
func MustNewResultsService(opts ResultsServiceOptions) *ResultsService {
	svc, err := NewResultsService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create ResultsService: %v", err))
	}
	return svc
}

// Get fetches the result payload for a job, verbatim, with the worker's
// HTTP status preserved on the response.
func (s *ResultsService) Get(ctx context.Context, jobID string) (*model.WorkerResultsResponse, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, apperrors.Validation("job id is required and cannot be empty")
	}

	start := time.Now()
	resp, err := s.worker.Results(ctx, jobID)
	if err != nil {
		s.emit("results", "error", time.Since(start))
		return nil, fmt.Errorf("fetch job results: %w", err)
	}
	s.emit("results", "success", time.Since(start))

	return resp, nil
}

func (s *ResultsService) emit(op, result string, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	metrics.EmitJobOperation(s.metrics, metrics.JobOperation{
		Operation: op,
		Result:    result,
		Duration:  elapsed,
	})
}
