// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the obesitrack HTTP API on behalf of the
// command-line client.
//
// Non-2xx responses are mapped to the sentinel errors in errors.go so that
// callers can branch with [errors.Is] (e.g. [ErrConflict] for 409,
// [ErrUnauthorized] for 401). The server's "detail" text is kept in the
// wrapped message.
package adapter

import (
	"context"

	"github.com/MKhiriev/obesitrack/models"
)

// ServerAdapter is the client side of the obesitrack API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" when none is set.
	Token() string

	// Register creates an account. It does not log in.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserSummary, error)

	// Login exchanges credentials for an access token using the
	// form-encoded password flow and stores the token on success.
	Login(ctx context.Context, req models.LoginRequest) (models.AccessTokenResponse, error)

	// Me returns the profile of the token owner.
	Me(ctx context.Context) (models.UserSummary, error)

	// Predict submits one questionnaire and returns the classification.
	Predict(ctx context.Context, req models.PredictionRequest) (models.PredictionResponse, error)

	// History lists the caller's predictions, newest first.
	History(ctx context.Context, limit, offset int) ([]models.PredictionResponse, error)

	// Health queries the liveness endpoint. It needs no token.
	Health(ctx context.Context) (models.HealthStatus, error)
}
