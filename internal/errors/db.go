package errors

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps database errors onto the application taxonomy:
//   - pgx.ErrNoRows → NotFound
//   - context deadline/cancel → Timeout/Canceled
//   - PostgreSQL protocol errors → Internal (the job record store is
//     read-only from this side, so constraint classes never apply here)
//
// Unrecognized errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Job record store query timed out.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Job record store query was canceled.",
			Cause:   err,
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "Job record not found",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.QueryCanceled:
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Job record store query was canceled.",
			Cause:   pgErr,
		}
	case pgerrcode.UndefinedTable, pgerrcode.UndefinedColumn:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "Job record store schema mismatch.",
			Cause:   pgErr,
		}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}
