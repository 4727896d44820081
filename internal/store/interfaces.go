// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/obesitrack/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists [models.User] rows.
type UserRepository interface {
	// Create inserts user. A taken email yields [ErrEmailAlreadyExists].
	Create(ctx context.Context, user models.User) (models.User, error)
	// FindByEmail yields [ErrUserNotFound] when no user has the exact email.
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// FindByID yields [ErrUserNotFound] when the id is unknown.
	FindByID(ctx context.Context, id string) (models.User, error)
	Count(ctx context.Context) (int64, error)
	// CountCreatedSince counts users with created_at >= since.
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	// ListWithPredictionCounts returns users ordered by id, each with the
	// number of predictions it owns (zero included).
	ListWithPredictionCounts(ctx context.Context, limit, offset int) ([]models.UserWithCount, error)
	// Update applies a partial update and returns the stored row.
	Update(ctx context.Context, patch models.UserPatch) (models.User, error)
	// Delete removes the user row. Owned predictions must be deleted first.
	Delete(ctx context.Context, id string) error
}

// PredictionRepository persists [models.Prediction] rows.
type PredictionRepository interface {
	Create(ctx context.Context, prediction models.Prediction) (models.Prediction, error)
	// FindByIDForUser yields [ErrPredictionNotFound] unless userID owns the row.
	FindByIDForUser(ctx context.Context, id, userID string) (models.Prediction, error)
	// ListByUser returns the newest predictions of one user first.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Prediction, error)
	// ListRecent returns the newest predictions of all users, joined with
	// the owner's email.
	ListRecent(ctx context.Context, limit int) ([]models.RecentPrediction, error)
	Count(ctx context.Context) (int64, error)
	CountByClass(ctx context.Context) (map[string]int64, error)
	Delete(ctx context.Context, id string) error
	// DeleteForUser yields [ErrPredictionNotFound] unless userID owns the row.
	DeleteForUser(ctx context.Context, id, userID string) error
	// DeleteByUser removes all predictions of a user and reports how many.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// Repositories groups the repositories bound to one connection or transaction.
type Repositories struct {
	UserRepository       UserRepository
	PredictionRepository PredictionRepository
}

// Transactor runs fn as one unit of work. fn receives repositories bound to
// the transaction; it is committed when fn returns nil and rolled back when
// fn returns an error or panics.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	// WithinSerializableTx is WithinTx at SERIALIZABLE isolation for
	// read-then-write units whose outcome depends on what they read. fn may
	// run more than once when the engine reports a serialization failure.
	WithinSerializableTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// HealthChecker reports database reachability.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
