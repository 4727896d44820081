// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/obesitrack/internal/config"
	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/service"
	"github.com/MKhiriev/obesitrack/models"
	"github.com/stretchr/testify/require"
)

const testToken = "stub-token"

var (
	testUser = models.User{
		ID:        "u1",
		Email:     "sara@example.com",
		Role:      models.RoleUser,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	testAdmin = models.User{ID: "a1", Email: "admin@example.com", Role: models.RoleAdmin}
)

// tokenFor returns an AuthService mock resolving testToken to user and
// rejecting every other token.
func tokenFor(user models.User) *mockAuthService {
	return &mockAuthService{
		currentUserFn: func(_ context.Context, token string) (models.User, error) {
			if token != testToken {
				return models.User{}, service.ErrInvalidToken
			}
			return user, nil
		},
	}
}

// newTestServices fills every service with a harmless default so the full
// router can be built.
func newTestServices() *service.Services {
	return &service.Services{
		AuthService:       tokenFor(testUser),
		PredictionService: &mockPredictionService{},
		AdminService:      &mockAdminService{},
		ModelInfoService:  &mockModelInfoService{},
		HealthService:     &mockHealthService{status: models.HealthStatus{Status: "ok", Database: "ok", Version: "test"}, version: "test"},
	}
}

func newTestRouter(t *testing.T, svcs *service.Services) http.Handler {
	t.Helper()
	return NewHandler(svcs, config.Server{}, logger.Nop()).Init()
}

// do sends a request through handler and returns the recorded response.
// A non-empty token is sent as a bearer credential.
func do(t *testing.T, handler http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func ptr[T any](v T) *T { return &v }
