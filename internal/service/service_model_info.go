// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/MKhiriev/obesitrack/internal/config"
	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/models"
)

// modelInfoService reads the training metrics sidecar on every call.
type modelInfoService struct {
	modelPath   string
	metricsPath string
	version     string
	artifact    *models.ArtifactInfo
	logger      *logger.Logger
}

// NewModelInfoService reports on the artifact at cfg.Path. A nil artifact
// means the serving process holds no classifier.
func NewModelInfoService(cfg config.Model, version string, artifact *models.ArtifactInfo, logger *logger.Logger) ModelInfoService {
	return &modelInfoService{
		modelPath:   cfg.Path,
		metricsPath: cfg.MetricsPath,
		version:     version,
		artifact:    artifact,
		logger:      logger,
	}
}

func (s *modelInfoService) ModelInfo(ctx context.Context) models.ModelInfo {
	log := logger.FromContext(ctx)

	raw, err := os.ReadFile(s.metricsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.ModelInfo{
				Status:  "metrics_not_found",
				Message: "model metrics file not found, train the model first",
			}
		}
		log.Err(err).Str("func", "*modelInfoService.ModelInfo").Str("path", s.metricsPath).Msg("error reading metrics")
		return models.ModelInfo{Status: "error", Message: "error reading model metrics: " + err.Error()}
	}

	var metrics models.TrainingMetrics
	if err = json.Unmarshal(raw, &metrics); err != nil {
		log.Err(err).Str("func", "*modelInfoService.ModelInfo").Str("path", s.metricsPath).Msg("error decoding metrics")
		return models.ModelInfo{Status: "error", Message: "error reading model metrics: " + err.Error()}
	}

	return models.ModelInfo{
		ModelDetails: &models.ModelDetails{
			Algorithm:    metrics.Algorithm,
			Accuracy:     metrics.Accuracy,
			TrainingDate: metrics.Date,
			TrainSize:    metrics.TrainSize,
			TestSize:     metrics.TestSize,
			ClassesCount: metrics.Classes,
		},
		ModelStatus: &models.ModelStatus{
			ModelFileExists:   s.modelFileExists(),
			ModelPath:         s.modelPath,
			MetricsFileExists: true,
			ModelLoaded:       s.artifact != nil,
			LoadedModel:       s.loadedModel(),
		},
		APIInfo: &models.APIInfo{
			Version: s.version,
			Status:  "running",
		},
	}
}

func (s *modelInfoService) loadedModel() *models.LoadedModel {
	if s.artifact == nil {
		return nil
	}
	return &models.LoadedModel{
		Algorithm:    s.artifact.Algorithm,
		Kind:         s.artifact.Kind,
		Features:     s.artifact.Features,
		ClassesCount: len(s.artifact.Classes),
		Source:       s.artifact.Source,
	}
}

// modelFileExists stats local paths; remote artifacts count as present once loaded.
func (s *modelInfoService) modelFileExists() bool {
	if strings.HasPrefix(s.modelPath, "s3://") {
		return s.artifact != nil
	}
	_, err := os.Stat(s.modelPath)
	return err == nil
}
