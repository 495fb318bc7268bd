package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // database/sql driver for sqlx
	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/store/internal/adapters"
)

const (
	dialectPostgres = "postgres"
	colName         = "name"
	colData         = "data"
	colUpdatedAt    = "updated_at"
)

// PostgresStore keeps one row per key in a single table:
//
//	name text primary key, data text, updated_at timestamptz
type PostgresStore struct {
	db     adapters.DBAdapter
	table  string
	driver Driver
	logger *zerolog.Logger
}

// NewPostgresStore connects to dsn with the configured driver and creates the table if needed.
func NewPostgresStore(ctx context.Context, dsn string, opts ...Option) (*PostgresStore, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, constants.StoreConnectTimeout)
	defer cancel()

	var db adapters.DBAdapter
	switch cfg.driver {
	case DriverSQLX:
		sqlDB, err := sqlx.Open("postgres", dsn)
		if err != nil {
			return nil, errors.WrapResource("open", "store", "postgres", err)
		}
		sqlDB.SetMaxOpenConns(constants.MaxOpenConns)
		db = adapters.NewSQLXAdapter(sqlDB)
	default:
		pool, err := pgxpool.New(connectCtx, dsn)
		if err != nil {
			return nil, errors.WrapResource("open", "store", "postgres", err)
		}
		db = adapters.NewPGXAdapter(pool)
	}

	if err := db.Ping(connectCtx); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("open", "store", "postgres", err)
	}

	s := newPostgresStore(db, cfg)
	if err := s.EnsureSchema(connectCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.logger.Info().Str("driver", string(s.driver)).Str("table", s.table).Msg("Connected to postgres store")
	return s, nil
}

func newPostgresStore(db adapters.DBAdapter, cfg *config) *PostgresStore {
	return &PostgresStore{
		db:     db,
		table:  cfg.table,
		driver: cfg.driver,
		logger: cfg.logger,
	}
}

// EnsureSchema creates the collections table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, s.schemaSQL()); err != nil {
		return errors.WrapResource("create", "table", s.table, err)
	}
	return nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query, err := s.buildSelectQuery(key)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, errors.WrapIO("read", key, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn().Err(closeErr).Msg("Failed to close rows")
		}
	}()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errors.WrapIO("read", key, err)
		}
		return nil, errors.NewNotFoundError("collection", key)
	}

	var data string
	if err := rows.Scan(&data); err != nil {
		return nil, errors.WrapIO("read", key, err)
	}
	return []byte(data), nil
}

// Put implements Store.
func (s *PostgresStore) Put(ctx context.Context, key string, data []byte) error {
	query, err := s.buildUpsertQuery(key, data)
	if err != nil {
		return err
	}

	start := time.Now()
	if _, err := s.db.Exec(ctx, query); err != nil {
		return errors.WrapIO("write", key, err)
	}

	s.logger.Debug().
		Str("key", key).
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("Upserted collection")
	return nil
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) buildSelectQuery(key string) (string, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(s.table).
		Select(colData).
		Where(goqu.Ex{colName: key}).
		ToSQL()
	if err != nil {
		return "", fmt.Errorf("building select query: %w", err)
	}
	return query, nil
}

func (s *PostgresStore) buildUpsertQuery(key string, data []byte) (string, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		Insert(s.table).
		Rows(goqu.Record{
			colName:      key,
			colData:      string(data),
			colUpdatedAt: goqu.L("NOW()"),
		}).
		OnConflict(goqu.DoUpdate(colName, goqu.Record{
			colData:      goqu.I("excluded." + colData),
			colUpdatedAt: goqu.I("excluded." + colUpdatedAt),
		})).
		ToSQL()
	if err != nil {
		return "", fmt.Errorf("building upsert query: %w", err)
	}
	return query, nil
}

func (s *PostgresStore) schemaSQL() string {
	table := pgx.Identifier(strings.Split(s.table, ".")).Sanitize()
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s TEXT PRIMARY KEY,
	%s TEXT NOT NULL,
	%s TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, table, colName, colData, colUpdatedAt)
}
