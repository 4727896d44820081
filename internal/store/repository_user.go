// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/models"
	sq "github.com/Masterminds/squirrel"
)

// userRepository is the SQL implementation of [UserRepository].
// It works on either the pool or a transaction through [querier].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db     *DB
	q      querier
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the pool of db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		q:      db.DB,
		logger: logger,
	}
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, extra ...any) (models.User, error) {
	var (
		user     models.User
		fullName sql.NullString
		role     string
	)

	dest := append([]any{&user.ID, &user.Email, &user.HashedPassword, &fullName, &role, &user.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.User{}, err
	}

	if fullName.Valid {
		user.FullName = &fullName.String
	}
	user.Role = models.Role(role)
	user.CreatedAt = user.CreatedAt.UTC()

	return user, nil
}

// Create inserts a new user row.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver-level error → [ErrExecutingStatement].
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.builder(), user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		if r.db.dialect.IsUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.Create").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// FindByEmail retrieves the user whose email equals email exactly.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

// FindByID retrieves the user with the given id.
func (r *userRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *userRepository) findOne(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.db.builder(), where)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.findOne").Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := buildCountQuery(r.db.builder(), usersTable, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return countRow(ctx, r.q, query, args)
}

func (r *userRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	query, args, err := buildCountUsersCreatedSinceQuery(r.db.builder(), since.UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return countRow(ctx, r.q, query, args)
}

// ListWithPredictionCounts returns one page of users ordered by id.
func (r *userRepository) ListWithPredictionCounts(ctx context.Context, limit, offset int) ([]models.UserWithCount, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersWithCountsQuery(r.db.builder(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListWithPredictionCounts").Msg("error querying users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.UserWithCount, 0)
	for rows.Next() {
		var count int64
		user, err := scanUser(rows, &count)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, models.UserWithCount{User: user, PredictionsCount: count})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// Update applies the non-nil fields of patch and returns the updated row.
//
// Error handling:
//   - no such id → [ErrUserNotFound].
//   - unique violation on email → [ErrEmailAlreadyExists].
func (r *userRepository) Update(ctx context.Context, patch models.UserPatch) (models.User, error) {
	log := logger.FromContext(ctx)

	if patch.Empty() {
		return r.FindByID(ctx, patch.ID)
	}

	query, args, err := buildUpdateUserQuery(r.db.builder(), patch)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.dialect.IsUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.Update").Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = expectAffected(result, ErrUserNotFound); err != nil {
		return models.User{}, err
	}

	return r.FindByID(ctx, patch.ID)
}

// Delete removes the user row; [ErrUserNotFound] when nothing was deleted.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(r.db.builder(), usersTable, sq.Eq{"id": id})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Delete").Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrUserNotFound)
}

// countRow runs a single-value COUNT query.
func countRow(ctx context.Context, q querier, query string, args []any) (int64, error) {
	var count int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "countRow").Msg("error counting rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// expectAffected returns notFound when result reports zero affected rows.
func expectAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
