// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package inference

import "errors"

var (
	// ErrModelLoad is returned when the artifact is missing, unreadable or malformed.
	ErrModelLoad = errors.New("model load error")

	// ErrInvalidFeatures is returned when the derived feature vector is not finite.
	ErrInvalidFeatures = errors.New("invalid features")
)
