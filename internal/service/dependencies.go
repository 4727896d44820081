// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=dependencies.go -destination=../mock/service_dependencies_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/obesitrack/models"
)

// Predictor runs the classifier on one input.
type Predictor interface {
	Predict(ctx context.Context, input models.PredictionInput) (models.InferenceResult, error)
	// Info describes the artifact behind Predict.
	Info() models.ArtifactInfo
}

// IDGenerator produces identifiers for new rows.
type IDGenerator interface {
	Generate() string
}
