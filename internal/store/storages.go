// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/obesitrack/internal/config"
	"github.com/MKhiriev/obesitrack/internal/logger"
)

// serializableAttempts bounds WithinSerializableTx retries.
const serializableAttempts = 3

// Storages is the persistence layer: repositories bound to the pool plus a
// unit of work for multi-statement operations.
type Storages struct {
	Repositories
	db *DB
}

// NewStorages connects to the database selected by cfg.DSN, applies the
// embedded migrations, and builds the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error migrating database")
		_ = db.Close()
		return nil, err
	}
	log.Info().Str("func", "NewStorages").Msg("database migrations applied")

	return newStorages(db, log), nil
}

func newStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Repositories: Repositories{
			UserRepository:       NewUserRepository(db, log),
			PredictionRepository: NewPredictionRepository(db, log),
		},
		db: db,
	}
}

// WithinTx implements [Transactor].
func (s *Storages) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return s.db.withTx(ctx, nil, s.bind(fn))
}

// WithinSerializableTx implements [Transactor]. A serialization failure is
// retried up to serializableAttempts times in total.
func (s *Storages) WithinSerializableTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 1; attempt <= serializableAttempts; attempt++ {
		err = s.db.withTx(ctx, opts, s.bind(fn))
		if err == nil || !s.db.dialect.IsSerializationFailure(err) {
			return err
		}
		logger.FromContext(ctx).Warn().
			Str("func", "*Storages.WithinSerializableTx").
			Int("attempt", attempt).
			Msg("serialization failure, retrying transaction")
	}
	return err
}

func (s *Storages) bind(fn func(ctx context.Context, repos Repositories) error) func(ctx context.Context, tx *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, Repositories{
			UserRepository:       &userRepository{db: s.db, q: tx, logger: s.db.logger},
			PredictionRepository: &predictionRepository{db: s.db, q: tx, logger: s.db.logger},
		})
	}
}

// Ping implements [HealthChecker].
func (s *Storages) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("error pinging database: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
