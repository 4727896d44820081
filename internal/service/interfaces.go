// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/obesitrack/models"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, email, password string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	CurrentUser(ctx context.Context, tokenString string) (models.User, error)
}

type PredictionService interface {
	CreatePrediction(ctx context.Context, user models.User, input models.PredictionInput) (models.Prediction, error)
	ListHistory(ctx context.Context, user models.User, limit int) ([]models.Prediction, error)
	GetPrediction(ctx context.Context, user models.User, id string) (models.Prediction, error)
	DeletePrediction(ctx context.Context, user models.User, id string) error
}

// AdminService operations are allowed to admins only. The caller is passed
// explicitly and every method fails with ErrForbidden for other roles.
type AdminService interface {
	ListUsers(ctx context.Context, caller models.User, limit, offset int) ([]models.UserWithCount, error)
	Stats(ctx context.Context, caller models.User) (models.AdminStats, error)
	UserPredictions(ctx context.Context, caller models.User, userID string, limit int) (models.UserPredictions, error)
	DeleteUser(ctx context.Context, caller models.User, userID string) (models.User, error)
	DeletePrediction(ctx context.Context, caller models.User, id string) error
	CreateUser(ctx context.Context, caller models.User, req models.CreateUserRequest) (models.UserWithCount, error)
	UpdateUser(ctx context.Context, caller models.User, userID string, req models.UpdateUserRequest) (models.User, error)
	RecentPredictions(ctx context.Context, caller models.User, limit int) ([]models.RecentPrediction, error)
}

type ModelInfoService interface {
	ModelInfo(ctx context.Context) models.ModelInfo
}

type HealthService interface {
	Health(ctx context.Context) models.HealthStatus
	GetAppVersion(ctx context.Context) string
}
