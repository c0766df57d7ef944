package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/deepskylab/calib-ui-api/config"
	"github.com/deepskylab/calib-ui-api/internal/adapters/worker"
	"github.com/deepskylab/calib-ui-api/internal/data"
	"github.com/deepskylab/calib-ui-api/internal/observability/statsd"
	"github.com/deepskylab/calib-ui-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Submissions   *service.SubmissionService
	Status        *service.StatusService
	Results       *service.ResultsService
	LatestResults *service.LatestResultService
	Cancellations *service.CancellationService
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices builds the full service graph from shared infrastructure.
func NewServices(deps ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	obs := buildObservability(logger, cfg.Observability)
	var sink statsd.Sink
	if obs.MetricsSink != nil {
		sink = obs.MetricsSink
	}

	workerClient, err := worker.NewClient(worker.Config{
		BaseURL: cfg.Worker.BaseURL,
		Timeout: cfg.Worker.Timeout,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build worker client: %w", err)
	}

	jobRecordRepo := data.NewJobRecordRepo(deps.DB)
	cacheRepo := data.NewRedisCacheRepo(deps.RedisClient)

	latestResults, err := service.NewLatestResultService(service.LatestResultServiceOptions{
		Repo:  jobRecordRepo,
		Cache: cacheRepo,
		Config: service.LatestResultConfig{
			CacheTTL:  cfg.Cache.LatestResultTTL,
			ScanLimit: cfg.Cache.ScanLimit,
		},
		Logger:  logger,
		Metrics: sink,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build latest-result service: %w", err)
	}

	submissions, err := service.NewSubmissionService(service.SubmissionServiceOptions{
		Worker:      workerClient,
		Invalidator: latestResults,
		Logger:      logger,
		Metrics:     sink,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build submission service: %w", err)
	}

	status, err := service.NewStatusService(service.StatusServiceOptions{
		Worker:  workerClient,
		Logger:  logger,
		Metrics: sink,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build status service: %w", err)
	}

	results, err := service.NewResultsService(service.ResultsServiceOptions{
		Worker:  workerClient,
		Logger:  logger,
		Metrics: sink,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build results service: %w", err)
	}

	cancellations, err := service.NewCancellationService(service.CancellationServiceOptions{
		Worker:  workerClient,
		Logger:  logger,
		Metrics: sink,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build cancellation service: %w", err)
	}

	return ServiceContainer{
		Submissions:   submissions,
		Status:        status,
		Results:       results,
		LatestResults: latestResults,
		Cancellations: cancellations,
		Observability: obs,
	}, nil
}

// buildObservability configures the metrics sink.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  cfg.Metrics.StatsdPrefix,
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:   metricsSink,
		MetricsConfig: cfg.Metrics,
	}
}
