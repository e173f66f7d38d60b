// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Why SQLSTATE mapping matters
//
// Handler-level uniqueness pre-checks are check-then-act and can race under
// concurrent requests. The UNIQUE constraints in the schema are the true
// enforcement backstop, so a unique violation surfacing here must translate
// to the same client-facing CONFLICT the pre-check would have produced.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/classcord/classcord/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Parameters
//   - err: The raw error returned by pgx.
//   - resource: Client-facing name of the entity being operated on (e.g. "Class").
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Errors already classified by a service or repository pass through untouched.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint violations (SQLSTATE classification)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(resource + " already exists")
		case pgerrcode.ForeignKeyViolation:
			// The referenced row disappeared between lookup and mutation.
			return apperr.Conflict(resource + " references a missing record")
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
