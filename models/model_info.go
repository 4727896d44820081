// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TrainingMetrics mirrors the JSON sidecar written by the offline training
// script next to the model artifact.
type TrainingMetrics struct {
	Algorithm string  `json:"algo"`
	Accuracy  float64 `json:"accuracy"`
	Date      string  `json:"date"`
	TrainSize int     `json:"train_size"`
	TestSize  int     `json:"test_size"`
	Classes   int     `json:"classes"`
}

// ModelInfo is the response of the model metadata endpoint.
type ModelInfo struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`

	ModelDetails *ModelDetails `json:"model_info,omitempty"`
	ModelStatus  *ModelStatus  `json:"model_status,omitempty"`
	APIInfo      *APIInfo      `json:"api_info,omitempty"`
}

type ModelDetails struct {
	Algorithm    string  `json:"algorithm"`
	Accuracy     float64 `json:"accuracy"`
	TrainingDate string  `json:"training_date"`
	TrainSize    int     `json:"train_size"`
	TestSize     int     `json:"test_size"`
	ClassesCount int     `json:"classes_count"`
}

type ModelStatus struct {
	ModelFileExists   bool   `json:"model_file_exists"`
	ModelPath         string `json:"model_path"`
	MetricsFileExists bool   `json:"metrics_file_exists"`
	// ModelLoaded is true when the serving process holds a loaded artifact.
	ModelLoaded bool `json:"model_loaded"`
	// LoadedModel describes the artifact actually serving predictions,
	// which may differ from what the sidecar reports.
	LoadedModel *LoadedModel `json:"loaded_model,omitempty"`
}

// ArtifactInfo describes a loaded classifier artifact.
type ArtifactInfo struct {
	Algorithm string
	Kind      string
	Features  []string
	Classes   []int
	Source    string
}

type LoadedModel struct {
	Algorithm    string   `json:"algorithm"`
	Kind         string   `json:"kind"`
	Features     []string `json:"features"`
	ClassesCount int      `json:"classes_count"`
	Source       string   `json:"source"`
}

type APIInfo struct {
	Version string `json:"version"`
	Status  string `json:"status"`
}

// HealthStatus is the response of the liveness check.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
}
