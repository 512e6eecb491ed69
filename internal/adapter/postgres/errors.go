package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors, prefixed with the
// entity and its key. context.DeadlineExceeded and context.Canceled are NOT
// mapped; they pass through.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
		case "23514": // check_violation
			if field := checkField(pgErr); field != "" {
				return fmt.Errorf("%s %v: %w", entity, key,
					domain.NewValidationError(field, "violates "+pgErr.ConstraintName))
			}
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrValidation)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %v: %w", entity, key, err)
}

// checkField returns the column of a check constraint named the way Postgres
// names inline column checks, e.g. "run_entropies_bits_check" on table
// run_entropies gives "bits".
func checkField(pgErr *pgconn.PgError) string {
	name, ok := strings.CutSuffix(pgErr.ConstraintName, "_check")
	if !ok || pgErr.TableName == "" {
		return ""
	}
	field, ok := strings.CutPrefix(name, pgErr.TableName+"_")
	if !ok {
		return ""
	}
	return field
}
