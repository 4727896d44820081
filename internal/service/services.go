// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/obesitrack/internal/config"
	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/store"
	"github.com/MKhiriev/obesitrack/internal/utils"
	"github.com/MKhiriev/obesitrack/models"
)

// Default page sizes.
const (
	DefaultHistoryLimit = 50
	DefaultUsersLimit   = 100
)

type Services struct {
	AuthService       AuthService
	PredictionService PredictionService
	AdminService      AdminService
	ModelInfoService  ModelInfoService
	HealthService     HealthService
}

func NewServices(storages *store.Storages, predictor Predictor, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	ids := utils.NewUUIDGenerator()

	healthService, err := NewHealthService(storages, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, storages, ids, cfg.App, logger),
		PredictionService: NewPredictionService(storages.PredictionRepository, predictor, ids, logger),
		AdminService:      NewAdminService(storages.Repositories, storages, ids, logger),
		ModelInfoService:  NewModelInfoService(cfg.Model, cfg.App.Version, artifactOf(predictor), logger),
		HealthService:     healthService,
	}, nil
}

// artifactOf returns nil when no classifier is loaded.
func artifactOf(predictor Predictor) *models.ArtifactInfo {
	if predictor == nil {
		return nil
	}
	info := predictor.Info()
	return &info
}

// limitOrDefault replaces non-positive limits with def.
func limitOrDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
