package adapters

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter implements DBAdapter for sqlx.DB.
type SQLXAdapter struct {
	db *sqlx.DB
}

// NewSQLXAdapter creates a new SQLX adapter.
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

// Query runs a query and wraps the rows.
func (s *SQLXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &sqlxRows{rows: rows}, nil
}

// Exec executes a statement and wraps the result.
func (s *SQLXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return stdResult{result: result}, nil
}

// Ping verifies the database is reachable.
func (s *SQLXAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *SQLXAdapter) Close() error {
	return s.db.Close()
}

type sqlxRows struct {
	rows *sqlx.Rows
}

func (r *sqlxRows) Next() bool             { return r.rows.Next() }
func (r *sqlxRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *sqlxRows) Err() error             { return r.rows.Err() }
func (r *sqlxRows) Close() error           { return r.rows.Close() }

type stdResult struct {
	result sql.Result
}

func (r stdResult) RowsAffected() (int64, error) {
	return r.result.RowsAffected()
}
