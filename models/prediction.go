// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Class labels produced by the classifier.
const (
	InsufficientWeight = "Insufficient_Weight"
	NormalWeight       = "Normal_Weight"
	OverweightLevelI   = "Overweight_Level_I"
	OverweightLevelII  = "Overweight_Level_II"
	ObesityTypeI       = "Obesity_Type_I"
	ObesityTypeII      = "Obesity_Type_II"
	ObesityTypeIII     = "Obesity_Type_III"
)

// PredictionInput is the 16-field measurement payload submitted by a user.
// Only Height, Weight and FCVC are consumed by the current model version;
// every field is stored verbatim with the prediction.
type PredictionInput struct {
	Gender                      string  `json:"Gender"`
	Age                         float64 `json:"Age"`
	Height                      float64 `json:"Height"`
	Weight                      float64 `json:"Weight"`
	FamilyHistoryWithOverweight string  `json:"family_history_with_overweight"`
	FAVC                        string  `json:"FAVC"`
	FCVC                        float64 `json:"FCVC"`
	NCP                         float64 `json:"NCP"`
	CAEC                        string  `json:"CAEC"`
	SMOKE                       string  `json:"SMOKE"`
	CH2O                        float64 `json:"CH2O"`
	SCC                         string  `json:"SCC"`
	FAF                         float64 `json:"FAF"`
	TUE                         float64 `json:"TUE"`
	CALC                        string  `json:"CALC"`
	MTRANS                      string  `json:"MTRANS"`
}

// InferenceResult is the output of the classifier for one input.
type InferenceResult struct {
	// Label is one of the class labels, or Unknown_<n> for an index
	// outside the label table.
	Label string

	// Probabilities maps each class label to its probability. It is nil when
	// the underlying classifier cannot estimate probabilities.
	Probabilities map[string]float64
}

// Prediction is a persisted inference result owned by a user.
type Prediction struct {
	ID             string             `json:"id"`
	UserID         string             `json:"user_id"`
	Input          PredictionInput    `json:"input_data"`
	PredictedClass string             `json:"predicted_class"`
	Proba          map[string]float64 `json:"proba,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Prediction model.
func (p Prediction) TableName() string {
	return "predictions"
}

// RecentPrediction is a prediction joined with its owner's email.
type RecentPrediction struct {
	ID             string    `json:"id"`
	UserEmail      string    `json:"user_email"`
	PredictedClass string    `json:"predicted_class"`
	CreatedAt      time.Time `json:"created_at"`
}
