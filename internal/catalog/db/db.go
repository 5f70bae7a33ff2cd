// Package catalogdb implements the catalog store contract on
// PostgreSQL via pgx. All queries are reads; filter predicates are
// composed dynamically the same way the admin-facing listings do it.
package catalogdb

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the pgx-backed catalog store.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository on an existing connection pool.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// wrapErr annotates store failures, surfacing the SQLSTATE when the
// server rejected the query.
func wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("catalogdb: %s: %s (SQLSTATE %s): %w", op, pgErr.Message, pgErr.Code, err)
	}
	return fmt.Errorf("catalogdb: %s: %w", op, err)
}
