package e

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
	ErrDeadline           = errors.New("deadline exceeded")
	ErrCanceled           = errors.New("context canceled")
	ErrUniqueViolation    = errors.New("unique violation")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrValidation         = errors.New("validation failed")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// ValidationError carries per-field messages for an ingestion request
// that failed validation. Matches ErrValidation via errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(v.Fields))
}

func (v *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrDeadline)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrCanceled)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return fmt.Errorf("%s: %w", op, ErrUniqueViolation)
		case pgErr.Code == "23503" || pgErr.Code == "23514":
			return fmt.Errorf("%s: %w", op, ErrInvalidInput)
		case strings.HasPrefix(pgErr.Code, "08"): // connection exception class
			return fmt.Errorf("%s: %w", op, ErrStoreUnavailable)
		default:
			return fmt.Errorf("%s: pg error %s: %w", op, pgErr.Code, ErrInternal)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	// anything else at the storage boundary means the store could not
	// be reached or the query failed mid-flight
	return fmt.Errorf("%s: %w", op, ErrStoreUnavailable)
}
