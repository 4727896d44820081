// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/metrics"
	"github.com/MKhiriev/obesitrack/internal/store"
	"github.com/MKhiriev/obesitrack/models"
)

type predictionService struct {
	predictionRepository store.PredictionRepository
	predictor            Predictor
	ids                  IDGenerator
	now                  func() time.Time
	logger               *logger.Logger
}

func NewPredictionService(predictionRepository store.PredictionRepository, predictor Predictor, ids IDGenerator, logger *logger.Logger) PredictionService {
	return &predictionService{
		predictionRepository: predictionRepository,
		predictor:            predictor,
		ids:                  ids,
		now:                  time.Now,
		logger:               logger,
	}
}

// CreatePrediction runs the classifier on a validated input and stores the
// result under user. Any failure is reported as ErrInternal.
func (p *predictionService) CreatePrediction(ctx context.Context, user models.User, input models.PredictionInput) (models.Prediction, error) {
	log := logger.FromContext(ctx)

	started := time.Now()
	result, err := p.predictor.Predict(ctx, input)
	metrics.InferenceDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		log.Err(err).Str("func", "*predictionService.CreatePrediction").Msg("inference failed")
		return models.Prediction{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	prediction, err := p.predictionRepository.Create(ctx, models.Prediction{
		ID:             p.ids.Generate(),
		UserID:         user.ID,
		Input:          input,
		PredictedClass: result.Label,
		Proba:          result.Probabilities,
		CreatedAt:      p.now().UTC(),
	})
	if err != nil {
		log.Err(err).Str("func", "*predictionService.CreatePrediction").Msg("error saving prediction")
		return models.Prediction{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	metrics.PredictionsTotal.WithLabelValues(prediction.PredictedClass).Inc()
	log.Info().
		Str("func", "*predictionService.CreatePrediction").
		Str("id", prediction.ID).
		Str("class", prediction.PredictedClass).
		Msg("prediction created")

	return prediction, nil
}

// ListHistory returns the newest predictions of user. Non-positive limits
// fall back to DefaultHistoryLimit.
func (p *predictionService) ListHistory(ctx context.Context, user models.User, limit int) ([]models.Prediction, error) {
	predictions, err := p.predictionRepository.ListByUser(ctx, user.ID, limitOrDefault(limit, DefaultHistoryLimit))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*predictionService.ListHistory").Msg("error listing predictions")
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return predictions, nil
}

// GetPrediction returns ErrPredictionNotFound unless id belongs to user.
func (p *predictionService) GetPrediction(ctx context.Context, user models.User, id string) (models.Prediction, error) {
	prediction, err := p.predictionRepository.FindByIDForUser(ctx, id, user.ID)
	if err != nil {
		return models.Prediction{}, p.wrap(ctx, "*predictionService.GetPrediction", err)
	}
	return prediction, nil
}

// DeletePrediction returns ErrPredictionNotFound unless id belongs to user.
func (p *predictionService) DeletePrediction(ctx context.Context, user models.User, id string) error {
	if err := p.predictionRepository.DeleteForUser(ctx, id, user.ID); err != nil {
		return p.wrap(ctx, "*predictionService.DeletePrediction", err)
	}
	logger.FromContext(ctx).Info().Str("func", "*predictionService.DeletePrediction").Str("id", id).Msg("prediction deleted")
	return nil
}

func (p *predictionService) wrap(ctx context.Context, fn string, err error) error {
	if errors.Is(err, ErrPredictionNotFound) {
		return err
	}
	logger.FromContext(ctx).Err(err).Str("func", fn).Msg("prediction storage error")
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
