// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport itself. Callers can match against
// them with [errors.Is].
var (
	// ErrMissingAuthorization is returned by the auth middleware when the
	// request carries no "Authorization" header.
	ErrMissingAuthorization = errors.New("not authenticated")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrMalformedBody is returned when a request body cannot be decoded.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrBodyTooLarge is returned when a request body, once inflated,
	// exceeds the size limit.
	ErrBodyTooLarge = errors.New("request body too large")

	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
)
