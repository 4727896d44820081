// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// legacyEnv holds the environment variable names of earlier deployments.
type legacyEnv struct {
	SecretKey                string `env:"SECRET_KEY"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	DatabaseURL              string `env:"DATABASE_URL"`
}

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// parseLegacyEnv maps SECRET_KEY, ACCESS_TOKEN_EXPIRE_MINUTES and
// DATABASE_URL onto a [StructuredConfig].
func parseLegacyEnv() (*StructuredConfig, error) {
	var legacy legacyEnv
	if err := parseEnv(&legacy); err != nil {
		return nil, fmt.Errorf("error getting legacy env configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  legacy.SecretKey,
			TokenDuration: time.Duration(legacy.AccessTokenExpireMinutes) * time.Minute,
		},
		Storage: Storage{DB: DB{DSN: legacy.DatabaseURL}},
	}, nil
}
