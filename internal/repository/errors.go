package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wrnass1/hotelbooking/internal/domain"
)

// Postgres error codes the booking store translates rather than propagates.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// isAvailabilityViolation reports whether err is the commit-time signal that
// another writer claimed an overlapping stay: the exclusion constraint on
// (room_id, stay daterange) fired.
func isAvailabilityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation
	}
	return false
}

// translateStoreError maps low-level failures onto domain error kinds:
// timeouts and cancellations are retryable Unavailable, lost availability
// races are Conflict, everything else passes through wrapped by the caller.
func translateStoreError(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if isAvailabilityViolation(err) {
		return domain.NewConflictError(conflictMsg)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.NewUnavailableError("booking store timed out", err)
	}
	return err
}
