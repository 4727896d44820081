// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MKhiriev/obesitrack/internal/config"
	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/migrations"
	sq "github.com/Masterminds/squirrel"
)

// querier is the subset of database/sql used by repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// dialect captures what differs between the supported database engines.
type dialect interface {
	// DriverName is the database/sql driver to open.
	DriverName() string
	// MigrationDialect selects the goose dialect and migration directory.
	MigrationDialect() string
	// Placeholder is the bind variable format of the engine.
	Placeholder() sq.PlaceholderFormat
	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation(err error) bool
	// IsSerializationFailure reports whether err aborted a transaction that
	// can be retried as a whole.
	IsSerializationFailure(err error) bool
	// ConnString converts the configured DSN into a driver connection string.
	ConnString(dsn string) string
	// MaxOpenConns caps the configured pool size for the engine.
	MaxOpenConns(configured int) int
}

// DB wraps the connection pool together with its dialect.
type DB struct {
	*sql.DB
	dialect dialect
	logger  *logger.Logger
}

// dialectFor selects a dialect from the DSN scheme.
func dialectFor(dsn string) (dialect, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgresDialect{}, nil
	case strings.HasPrefix(dsn, "sqlite://"), strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return sqliteDialect{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
}

// NewConnectDB opens and pings the database selected by cfg.DSN.
func NewConnectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	d, err := dialectFor(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectDB").Msg("error selecting database driver")
		return nil, err
	}

	// establish connection
	conn, err := sql.Open(d.DriverName(), d.ConnString(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectDB").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(d.MaxOpenConns(cfg.MaxOpenConns))

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectDB").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Info().Str("func", "NewConnectDB").Str("driver", d.DriverName()).Msg("connected to database successfully")

	return &DB{DB: conn, dialect: d, logger: log}, nil
}

// Migrate applies the embedded schema migrations of the DB dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect.MigrationDialect())
}

// builder returns a squirrel statement builder using the dialect's placeholders.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.dialect.Placeholder())
}

// withTx begins a transaction with opts (nil for driver defaults), runs fn
// with it, and then commits on success or rolls back on error or panic.
// Panics are rethrown.
func (db *DB) withTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.FromContext(ctx).Err(rbErr).Str("func", "*DB.withTx").Msg("error rolling back transaction")
			}
			return
		}
		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
		}
	}()

	return fn(ctx, tx)
}

// redactDSN strips credentials before a DSN is logged or returned in an error.
func redactDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		return scheme + "://***@" + rest[at+1:]
	}
	return dsn
}
