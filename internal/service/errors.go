// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/obesitrack/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrExpiredToken       = errors.New("token has expired")
	ErrForbidden          = errors.New("admin privileges required")
	ErrInternal           = errors.New("internal server error")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Persistence errors surfaced unchanged to callers.
var (
	ErrUserNotFound       = store.ErrUserNotFound
	ErrPredictionNotFound = store.ErrPredictionNotFound
	ErrEmailAlreadyExists = store.ErrEmailAlreadyExists
)
