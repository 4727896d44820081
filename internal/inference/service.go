// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package inference wraps the pre-trained obesity classifier.
//
// The artifact is loaded once by [NewInferenceService]; the resulting
// service is read-only and safe for concurrent use.
package inference

import (
	"context"
	"fmt"

	"github.com/MKhiriev/obesitrack/internal/config"
	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/models"
)

// InferenceService predicts the weight category of a [models.PredictionInput].
type InferenceService struct {
	classifier classifier
	features   []featureFunc
	classes    []int
	info       models.ArtifactInfo
}

// NewInferenceService reads and validates the artifact at cfg.Path.
// Every failure wraps [ErrModelLoad].
func NewInferenceService(ctx context.Context, cfg config.Model, log *logger.Logger) (*InferenceService, error) {
	raw, err := readArtifact(ctx, cfg)
	if err != nil {
		log.Err(err).Str("func", "NewInferenceService").Str("path", cfg.Path).Msg("error reading model artifact")
		return nil, err
	}

	svc, err := newFromBytes(raw, cfg.Path)
	if err != nil {
		log.Err(err).Str("func", "NewInferenceService").Str("path", cfg.Path).Msg("error decoding model artifact")
		return nil, err
	}

	log.Info().
		Str("func", "NewInferenceService").
		Str("algorithm", svc.info.Algorithm).
		Str("kind", svc.info.Kind).
		Strs("features", svc.info.Features).
		Msg("model loaded")

	return svc, nil
}

func newFromBytes(raw []byte, source string) (*InferenceService, error) {
	a, err := decodeArtifact(raw)
	if err != nil {
		return nil, err
	}

	features, err := resolveFeatures(a.Features)
	if err != nil {
		return nil, err
	}

	clf, err := newClassifier(a)
	if err != nil {
		return nil, err
	}

	return &InferenceService{
		classifier: clf,
		features:   features,
		classes:    a.Classes,
		info: models.ArtifactInfo{
			Algorithm: a.Algorithm,
			Kind:      a.Kind,
			Features:  a.Features,
			Classes:   a.Classes,
			Source:    source,
		},
	}, nil
}

// Predict returns the predicted label and, when the classifier supports
// it, the probability of every class.
func (s *InferenceService) Predict(ctx context.Context, input models.PredictionInput) (models.InferenceResult, error) {
	x, err := vector(s.features, input)
	if err != nil {
		return models.InferenceResult{}, err
	}

	index, proba := s.classifier.classify(x)
	if index < 0 || index >= len(s.classes) {
		return models.InferenceResult{}, fmt.Errorf("classifier returned position %d for %d classes", index, len(s.classes))
	}

	result := models.InferenceResult{Label: LabelFor(s.classes[index])}
	if proba != nil {
		result.Probabilities = make(map[string]float64, len(proba))
		for i, p := range proba {
			result.Probabilities[probabilityKey(s.classes, i)] = p
		}
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*InferenceService.Predict").
		Floats64("features", x).
		Str("label", result.Label).
		Msg("inference done")

	return result, nil
}

// Info returns the metadata of the loaded artifact.
func (s *InferenceService) Info() models.ArtifactInfo {
	return s.info
}
