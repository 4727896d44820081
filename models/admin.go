// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AdminStats aggregates usage counters for the admin dashboard.
type AdminStats struct {
	TotalUsers         int64            `json:"total_users"`
	TotalPredictions   int64            `json:"total_predictions"`
	PredictionsByClass map[string]int64 `json:"predictions_by_class"`
	// RecentUsers counts users created in the trailing 7 days.
	RecentUsers int64 `json:"recent_users"`
}

// UserPredictions is one user's summary together with their predictions.
type UserPredictions struct {
	User        UserSummary  `json:"user"`
	Predictions []Prediction `json:"predictions"`
}

// UserSummary is the public projection of a [User].
type UserSummary struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name"`
	Role      Role    `json:"role,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}
