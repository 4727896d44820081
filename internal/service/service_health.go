// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/obesitrack/internal/config"
	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/store"
	"github.com/MKhiriev/obesitrack/models"
)

type healthService struct {
	appVersion string
	db         store.HealthChecker

	logger *logger.Logger
}

func NewHealthService(db store.HealthChecker, cfg config.App, logger *logger.Logger) (HealthService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &healthService{
		appVersion: cfg.Version,
		db:         db,
		logger:     logger,
	}, nil
}

func (s *healthService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// Health reports "ok" even when the database is down; the database field
// carries the ping result.
func (s *healthService) Health(ctx context.Context) models.HealthStatus {
	status := models.HealthStatus{Status: "ok", Database: "ok", Version: s.appVersion}

	if err := s.db.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*healthService.Health").Msg("database ping failed")
		status.Database = "error"
	}

	return status
}
