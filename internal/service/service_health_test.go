package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/obesitrack/internal/config"
	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/mock"
	"github.com/MKhiriev/obesitrack/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// NewHealthService
// ─────────────────────────────────────────────

func TestNewHealthService_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := config.App{Version: "1.0.0"}

	svc, err := NewHealthService(mock.NewMockHealthChecker(ctrl), cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewHealthService_EmptyVersion_ReturnsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := config.App{Version: ""}

	svc, err := NewHealthService(mock.NewMockHealthChecker(ctrl), cfg, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

// ─────────────────────────────────────────────
// GetAppVersion
// ─────────────────────────────────────────────

func TestGetAppVersion_ReturnsConfiguredVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, err := NewHealthService(mock.NewMockHealthChecker(ctrl), config.App{Version: "3.1.4"}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", svc.GetAppVersion(context.Background()))
}

// ─────────────────────────────────────────────
// Health
// ─────────────────────────────────────────────

func TestHealth_DatabaseReachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mock.NewMockHealthChecker(ctrl)
	db.EXPECT().Ping(gomock.Any()).Return(nil)

	svc, err := NewHealthService(db, config.App{Version: "1.0.0"}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatus{Status: "ok", Database: "ok", Version: "1.0.0"}, svc.Health(context.Background()))
}

func TestHealth_DatabaseDown_StillOK(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mock.NewMockHealthChecker(ctrl)
	db.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	svc, err := NewHealthService(db, config.App{Version: "1.0.0"}, logger.Nop())
	require.NoError(t, err)

	got := svc.Health(context.Background())
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "error", got.Database)
}
