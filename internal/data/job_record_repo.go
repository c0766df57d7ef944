package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/deepskylab/calib-ui-api/internal/core"
	"github.com/deepskylab/calib-ui-api/internal/data/pgxutil"
	"github.com/deepskylab/calib-ui-api/internal/domain/model"
)

// defaultScanLimit bounds the recent-candidate window loaded for in-memory
// matching. The store holds a modest number of recent jobs, so correctness
// (most-recent-first) matters more than query-plan efficiency here.
const defaultScanLimit = 200

// JobRecordRepo is the read-only repository over the worker-written
// job_records table. All writes originate from the external worker process;
// this repository exposes none.
type JobRecordRepo struct {
	DB *sql.DB
}

// NewJobRecordRepo constructs a JobRecordRepo.
func NewJobRecordRepo(db *sql.DB) *JobRecordRepo {
	return &JobRecordRepo{DB: db}
}

var _ core.JobRecordRepository = (*JobRecordRepo)(nil)

const jobRecordColumns = `job_id, job_type, status, progress, result, diagnostics, warnings, error, created_at, updated_at`

// FindSuccessful returns successful records newest-first. The optional
// job_type filter is applied in SQL; match keys embedded in the result
// payload are not, because their shape is not guaranteed indexable.
func (r *JobRecordRepo) FindSuccessful(
	ctx context.Context,
	params core.FindSuccessfulParams,
) ([]model.JobRecord, error) {
	if r == nil || r.DB == nil {
		return nil, ErrJobRecordsNotConfigured
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultScanLimit
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + jobRecordColumns + `
		FROM job_records
		WHERE status = $1`)
	args := []any{model.JobStatusSuccess}
	if params.JobType != "" {
		args = append(args, params.JobType)
		fmt.Fprintf(&sb, " AND job_type = $%d", len(args))
	}
	args = append(args, limit)
	fmt.Fprintf(&sb, " ORDER BY created_at DESC LIMIT $%d", len(args))
	query := sb.String()

	var records []model.JobRecord
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.JobRecord])
		if err != nil {
			return err
		}
		records = collected
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find successful job_records: %w", err)
	}
	return records, nil
}

// GetByID retrieves the record for a job identifier. A non-empty jobType
// additionally constrains the lookup (superdark records are fetched as
// job_id + job_type=superdark_creation).
func (r *JobRecordRepo) GetByID(
	ctx context.Context,
	jobID string,
	jobType model.JobType,
) (*model.JobRecord, error) {
	if r == nil || r.DB == nil {
		return nil, ErrJobRecordsNotConfigured
	}
	if strings.TrimSpace(jobID) == "" {
		return nil, ErrJobIDRequired
	}

	query := `SELECT ` + jobRecordColumns + `
		FROM job_records
		WHERE job_id = $1`
	args := []any{jobID}
	if jobType != "" {
		args = append(args, jobType)
		query += " AND job_type = $2"
	}

	var rec *model.JobRecord
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.JobRecord])
		if err != nil {
			return err
		}
		rec = &record
		return nil
	})

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrJobRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job_record: %w", err)
	}
	return rec, nil
}
