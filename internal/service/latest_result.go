package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/deepskylab/calib-ui-api/internal/core"
	"github.com/deepskylab/calib-ui-api/internal/data"
	"github.com/deepskylab/calib-ui-api/internal/domain/match"
	"github.com/deepskylab/calib-ui-api/internal/domain/model"
	apperrors "github.com/deepskylab/calib-ui-api/internal/errors"
	"github.com/deepskylab/calib-ui-api/internal/observability/metrics"
	"github.com/deepskylab/calib-ui-api/internal/observability/statsd"
)

// LatestResultConfig groups tuning knobs for LatestResultService.
type LatestResultConfig struct {
	// CacheTTL bounds staleness of cached lookups. The durable store stays
	// the source of truth; zero disables caching even when a cache is wired.
	CacheTTL time.Duration
	// ScanLimit caps the recent-candidate window loaded from the store.
	ScanLimit int
}

// LatestResultServiceOptions groups dependencies for LatestResultService.
type LatestResultServiceOptions struct {
	Repo    core.JobRecordRepository // Required: read-only job record store
	Cache   core.CacheRepository     // Optional: short-lived response cache
	Config  LatestResultConfig       // Optional: TTL and scan-window tuning
	Logger  *slog.Logger             // Optional: structured logger
	Metrics statsd.Sink              // Optional: metrics sink
}

// LatestResultService resolves the most recent successful job for a set of
// lookup keys. Two deliberately distinct query shapes live here: calibration
// results are found by scanning recent successes and loose-matching keys
// embedded in the opaque result payload, while superdarks are fetched by
// job identifier plus job type.
type LatestResultService struct {
	repo    core.JobRecordRepository
	cache   core.CacheRepository
	cfg     LatestResultConfig
	logger  *slog.Logger
	metrics statsd.Sink
}

const defaultLatestResultTTL = 30 * time.Second

// NewLatestResultService constructs a new LatestResultService.
func NewLatestResultService(opts LatestResultServiceOptions) (*LatestResultService, error) {
	if opts.Repo == nil {
		return nil, errors.New("JobRecordRepository is required")
	}

	cfg := opts.Config
	if cfg.CacheTTL == 0 && opts.Cache != nil {
		cfg.CacheTTL = defaultLatestResultTTL
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "latest_result_service")
	}

	return &LatestResultService{
		repo:    opts.Repo,
		cache:   opts.Cache,
		cfg:     cfg,
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// MustNewLatestResultService constructs a new LatestResultService and panics on error.
func MustNewLatestResultService(opts LatestResultServiceOptions) *LatestResultService {
	svc, err := NewLatestResultService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create LatestResultService: %v", err))
	}
	return svc
}

// Latest returns the most recent successful calibration result matching the
// query. Candidates are loaded newest-first and filtered in memory because
// the match keys live inside the opaque result payload, not in indexed
// columns. The first match wins; no match is a legitimate "nothing yet".
func (s *LatestResultService) Latest(
	ctx context.Context,
	query model.LatestResultQuery,
) (*model.LatestResultResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if cached := s.cacheGet(ctx, latestCacheKey(query)); cached != nil {
		s.emit("latest_result", "cache_hit", 0)
		return cached, nil
	}

	start := time.Now()
	records, err := s.repo.FindSuccessful(ctx, core.FindSuccessfulParams{
		JobType: model.JobTypeCalibration,
		Limit:   s.cfg.ScanLimit,
	})
	if err != nil {
		s.emit("latest_result", "error", time.Since(start))
		return nil, fmt.Errorf("load successful job records: %w", apperrors.MapDBError(err))
	}

	for i := range records {
		rec := &records[i]
		ok, matchErr := s.recordMatches(rec, query)
		if matchErr != nil {
			// A malformed payload in one record must not hide older matches.
			if s.logger != nil {
				s.logger.WarnContext(ctx, "skipping job record with unreadable result payload",
					"job_id", rec.JobID, "error", matchErr)
			}
			continue
		}
		if ok {
			resp := model.LatestResultFromRecord(rec)
			s.cacheSet(ctx, latestCacheKey(query), resp)
			s.emit("latest_result", "success", time.Since(start))
			return resp, nil
		}
	}

	s.emit("latest_result", "no_match", time.Since(start))
	return nil, apperrors.NoMatch(fmt.Sprintf(
		"no successful %s result for project %q", query.FrameType, query.ProjectID))
}

// Superdark resolves a superdark record by its directly queryable identity
// (job_id plus job_type) instead of content matching.
func (s *LatestResultService) Superdark(
	ctx context.Context,
	jobID string,
) (*model.LatestResultResponse, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, apperrors.Validation("job id is required and cannot be empty")
	}

	start := time.Now()
	rec, err := s.repo.GetByID(ctx, jobID, model.JobTypeSuperdarkCreation)
	if err != nil {
		if errors.Is(err, data.ErrJobRecordNotFound) {
			s.emit("superdark_lookup", "not_found", time.Since(start))
			return nil, apperrors.NotFound(fmt.Sprintf("no superdark record for job %q", jobID))
		}
		s.emit("superdark_lookup", "error", time.Since(start))
		return nil, fmt.Errorf("load superdark record: %w", apperrors.MapDBError(err))
	}

	s.emit("superdark_lookup", "success", time.Since(start))
	return model.LatestResultFromRecord(rec), nil
}

// InvalidateProject drops cached latest-result entries for a project. The
// frame-type set is small and closed, so invalidation fans out over it
// explicitly instead of scanning the cache keyspace. Anonymous lookups cache
// under their own user segment, so a user-scoped invalidation also drops the
// anonymous variant of each key.
func (s *LatestResultService) InvalidateProject(ctx context.Context, projectID, userID string) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}

	queries := make([]model.LatestResultQuery, 0, 2*len(model.FrameTypes()))
	for _, ft := range model.FrameTypes() {
		queries = append(queries, model.LatestResultQuery{
			ProjectID: projectID,
			UserID:    userID,
			FrameType: ft,
		})
		if userID != "" {
			queries = append(queries, model.LatestResultQuery{
				ProjectID: projectID,
				FrameType: ft,
			})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, q := range queries {
		key := latestCacheKey(q)
		g.Go(func() error {
			if _, err := s.cache.Delete(ctx, key); err != nil && s.logger != nil {
				s.logger.WarnContext(ctx, "latest-result cache invalidation failed",
					"key", key, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// recordMatches applies the tolerant-equality comparator to one record.
// The user id is matched only when the query carries one.
func (s *LatestResultService) recordMatches(
	rec *model.JobRecord,
	query model.LatestResultQuery,
) (bool, error) {
	keys, err := match.ExtractKeys(rec.Result)
	if err != nil {
		return false, err
	}
	if !match.Loose(keys.ProjectID, query.ProjectID) {
		return false, nil
	}
	if !match.Loose(keys.FrameType, string(query.FrameType)) {
		return false, nil
	}
	if query.UserID != "" && !match.Loose(keys.UserID, query.UserID) {
		return false, nil
	}
	return true, nil
}

func latestCacheKey(query model.LatestResultQuery) string {
	user := query.UserID
	if user == "" {
		user = "-"
	}
	return fmt.Sprintf("latest_result:%s:%s:%s", query.ProjectID, user, query.FrameType)
}

func (s *LatestResultService) cacheGet(ctx context.Context, key string) *model.LatestResultResponse {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == nil {
		return nil
	}
	var resp model.LatestResultResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *LatestResultService) cacheSet(ctx context.Context, key string, resp *model.LatestResultResponse) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cfg.CacheTTL); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "latest-result cache write failed", "key", key, "error", err)
	}
}

func (s *LatestResultService) emit(op, result string, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	metrics.EmitJobOperation(s.metrics, metrics.JobOperation{
		Operation: op,
		Result:    result,
		Duration:  elapsed,
	})
}
