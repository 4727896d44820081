// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/MKhiriev/obesitrack/migrations"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// postgresDialect serves postgres:// and postgresql:// DSNs through pgx.
type postgresDialect struct{}

func (postgresDialect) DriverName() string                { return "pgx" }
func (postgresDialect) MigrationDialect() string          { return migrations.DialectPostgres }
func (postgresDialect) Placeholder() sq.PlaceholderFormat { return sq.Dollar }
func (postgresDialect) ConnString(dsn string) string      { return dsn }
func (postgresDialect) MaxOpenConns(configured int) int   { return configured }

// IsUniqueViolation matches SQLSTATE 23505.
func (postgresDialect) IsUniqueViolation(err error) bool {
	return postgresError(err) == pgerrcode.UniqueViolation
}

// IsSerializationFailure matches SQLSTATE 40001.
func (postgresDialect) IsSerializationFailure(err error) bool {
	return postgresError(err) == pgerrcode.SerializationFailure
}

// postgresError returns the SQLSTATE of a PostgreSQL error, or "" for any
// other error.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
