// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/models"
	sq "github.com/Masterminds/squirrel"
)

// predictionRepository is the SQL implementation of [PredictionRepository].
// The request payload and the probabilities are stored as JSON text.
type predictionRepository struct {
	db     *DB
	q      querier
	logger *logger.Logger
}

// NewPredictionRepository constructs a [PredictionRepository] backed by the pool of db.
func NewPredictionRepository(db *DB, logger *logger.Logger) PredictionRepository {
	logger.Debug().Msg("creating prediction repository")
	return &predictionRepository{
		db:     db,
		q:      db.DB,
		logger: logger,
	}
}

func scanPrediction(row rowScanner) (models.Prediction, error) {
	var (
		prediction models.Prediction
		payload    []byte
		proba      []byte
	)

	if err := row.Scan(&prediction.ID, &prediction.UserID, &payload, &prediction.PredictedClass, &proba, &prediction.CreatedAt); err != nil {
		return models.Prediction{}, err
	}

	if err := json.Unmarshal(payload, &prediction.Input); err != nil {
		return models.Prediction{}, fmt.Errorf("%w: payload_json: %w", ErrEncodingJSON, err)
	}
	if len(proba) > 0 {
		if err := json.Unmarshal(proba, &prediction.Proba); err != nil {
			return models.Prediction{}, fmt.Errorf("%w: proba: %w", ErrEncodingJSON, err)
		}
	}
	prediction.CreatedAt = prediction.CreatedAt.UTC()

	return prediction, nil
}

// Create inserts a prediction row. Proba is stored as NULL when nil.
func (r *predictionRepository) Create(ctx context.Context, prediction models.Prediction) (models.Prediction, error) {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(prediction.Input)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}

	var proba []byte
	if prediction.Proba != nil {
		if proba, err = json.Marshal(prediction.Proba); err != nil {
			return models.Prediction{}, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
		}
	}

	query, args, err := buildInsertPredictionQuery(r.db.builder(), prediction, payload, proba)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*predictionRepository.Create").Msg("error inserting prediction")
		return models.Prediction{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return prediction, nil
}

func (r *predictionRepository) FindByIDForUser(ctx context.Context, id, userID string) (models.Prediction, error) {
	return r.findOne(ctx, sq.Eq{"id": id, "user_id": userID})
}

func (r *predictionRepository) findOne(ctx context.Context, where sq.Eq) (models.Prediction, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectPredictionQuery(r.db.builder(), where)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	prediction, err := scanPrediction(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Prediction{}, ErrPredictionNotFound
		}
		log.Err(err).Str("func", "*predictionRepository.findOne").Msg("error scanning prediction")
		return models.Prediction{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return prediction, nil
}

// ListByUser returns at most limit predictions of userID, newest first.
func (r *predictionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Prediction, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPredictionsByUserQuery(r.db.builder(), userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*predictionRepository.ListByUser").Msg("error querying predictions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	predictions := make([]models.Prediction, 0)
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		predictions = append(predictions, prediction)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return predictions, nil
}

// ListRecent returns at most limit predictions across all users, newest first.
func (r *predictionRepository) ListRecent(ctx context.Context, limit int) ([]models.RecentPrediction, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecentPredictionsQuery(r.db.builder(), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*predictionRepository.ListRecent").Msg("error querying recent predictions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	recent := make([]models.RecentPrediction, 0)
	for rows.Next() {
		var p models.RecentPrediction
		if err = rows.Scan(&p.ID, &p.UserEmail, &p.PredictedClass, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		recent = append(recent, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return recent, nil
}

func (r *predictionRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := buildCountQuery(r.db.builder(), predictionsTable, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return countRow(ctx, r.q, query, args)
}

// CountByClass groups all predictions by predicted class.
func (r *predictionRepository) CountByClass(ctx context.Context) (map[string]int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountByClassQuery(r.db.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*predictionRepository.CountByClass").Msg("error grouping predictions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			class string
			count int64
		)
		if err = rows.Scan(&class, &count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		counts[class] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counts, nil
}

func (r *predictionRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *predictionRepository) DeleteForUser(ctx context.Context, id, userID string) error {
	return r.delete(ctx, sq.Eq{"id": id, "user_id": userID})
}

func (r *predictionRepository) delete(ctx context.Context, where sq.Eq) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(r.db.builder(), predictionsTable, where)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*predictionRepository.delete").Msg("error deleting prediction")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrPredictionNotFound)
}

// DeleteByUser removes every prediction owned by userID.
func (r *predictionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(r.db.builder(), predictionsTable, sq.Eq{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*predictionRepository.DeleteByUser").Msg("error deleting predictions of user")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}
