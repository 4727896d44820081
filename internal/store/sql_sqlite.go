// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"strings"

	"github.com/MKhiriev/obesitrack/migrations"
	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
)

const sqliteParams = "_foreign_keys=on&_busy_timeout=5000"

// sqliteDialect serves sqlite://, file: and :memory: DSNs through go-sqlite3.
type sqliteDialect struct{}

func (sqliteDialect) DriverName() string                { return "sqlite3" }
func (sqliteDialect) MigrationDialect() string          { return migrations.DialectSQLite }
func (sqliteDialect) Placeholder() sq.PlaceholderFormat { return sq.Question }

// MaxOpenConns is always 1: SQLite serialises writers, and an in-memory
// database exists only inside its single connection.
func (sqliteDialect) MaxOpenConns(int) int { return 1 }

// ConnString maps sqlite://path and :memory: onto go-sqlite3 file URIs.
// file: DSNs are passed through unchanged.
func (sqliteDialect) ConnString(dsn string) string {
	switch {
	case dsn == ":memory:":
		return "file::memory:?" + sqliteParams
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return "file:" + path + sep + sqliteParams
	}
	return dsn
}

// IsSerializationFailure is always false: the pool holds one connection,
// so SQLite transactions never interleave.
func (sqliteDialect) IsSerializationFailure(error) bool { return false }

// IsUniqueViolation matches SQLITE_CONSTRAINT_UNIQUE and
// SQLITE_CONSTRAINT_PRIMARYKEY.
func (sqliteDialect) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
