package database

import (
	"context"
	"database/sql"

	"github.com/freshline/supply-backend/internal/apperr"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories are built over it so the same implementation serves both
// standalone calls and calls inside a transaction scope.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Scope executes an ordered sequence of guarded steps as one atomic unit.
// If the step function returns an error, every mutation made inside the
// scope is rolled back and the error is returned unchanged. Only a fully
// successful step function commits.
type Scope interface {
	Execute(ctx context.Context, fn func(tx DBTX) error) error
}

type sqlScope struct{ db *sql.DB }

// NewScope returns a Scope backed by database transactions.
func NewScope(db *sql.DB) Scope { return &sqlScope{db: db} }

func (s *sqlScope) Execute(ctx context.Context, fn func(tx DBTX) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Unavailable(err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperr.Unavailable(err)
	}
	return nil
}

// NoOpScope runs the step function without a real transaction. Service
// tests use it together with in-memory repositories.
type NoOpScope struct{}

func (NoOpScope) Execute(_ context.Context, fn func(tx DBTX) error) error {
	return fn(nil)
}

var _ Scope = (*sqlScope)(nil)
var _ Scope = NoOpScope{}
