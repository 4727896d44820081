// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
}

// LoginRequest carries OAuth2 password-flow credentials. Username holds the email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest is the body of POST /admin/users.
// An empty Role defaults to [RoleUser].
type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
	Role     Role    `json:"role" validate:"omitempty,oneof=user admin"`
}

// UpdateUserRequest is the body of PATCH /admin/users/{id}.
// Absent fields are left unchanged.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
	Role     *Role   `json:"role" validate:"omitempty,oneof=user admin"`
}

// PredictionRequest is the body of POST /predict/. Every field is required;
// pointers let the validator tell a missing number from a zero.
type PredictionRequest struct {
	Gender                      *string  `json:"Gender" validate:"required"`
	Age                         *float64 `json:"Age" validate:"required,gte=0"`
	Height                      *float64 `json:"Height" validate:"required,gt=0"`
	Weight                      *float64 `json:"Weight" validate:"required,gt=0"`
	FamilyHistoryWithOverweight *string  `json:"family_history_with_overweight" validate:"required"`
	FAVC                        *string  `json:"FAVC" validate:"required"`
	FCVC                        *float64 `json:"FCVC" validate:"required"`
	NCP                         *float64 `json:"NCP" validate:"required"`
	CAEC                        *string  `json:"CAEC" validate:"required"`
	SMOKE                       *string  `json:"SMOKE" validate:"required"`
	CH2O                        *float64 `json:"CH2O" validate:"required"`
	SCC                         *string  `json:"SCC" validate:"required"`
	FAF                         *float64 `json:"FAF" validate:"required"`
	TUE                         *float64 `json:"TUE" validate:"required"`
	CALC                        *string  `json:"CALC" validate:"required"`
	MTRANS                      *string  `json:"MTRANS" validate:"required"`
}

// Input converts a validated request into a [PredictionInput].
// It must only be called after validation succeeded.
func (r PredictionRequest) Input() PredictionInput {
	return PredictionInput{
		Gender:                      *r.Gender,
		Age:                         *r.Age,
		Height:                      *r.Height,
		Weight:                      *r.Weight,
		FamilyHistoryWithOverweight: *r.FamilyHistoryWithOverweight,
		FAVC:                        *r.FAVC,
		FCVC:                        *r.FCVC,
		NCP:                         *r.NCP,
		CAEC:                        *r.CAEC,
		SMOKE:                       *r.SMOKE,
		CH2O:                        *r.CH2O,
		SCC:                         *r.SCC,
		FAF:                         *r.FAF,
		TUE:                         *r.TUE,
		CALC:                        *r.CALC,
		MTRANS:                      *r.MTRANS,
	}
}

// PredictionResponse is the public shape of a prediction returned to its owner.
type PredictionResponse struct {
	ID             string             `json:"id"`
	PredictedClass string             `json:"predicted_class"`
	Proba          map[string]float64 `json:"proba,omitempty"`
}

// ErrorResponse is the standard error envelope returned on 4xx/5xx responses.
type ErrorResponse struct {
	Detail string       `json:"detail"`
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MessageResponse acknowledges an operation that returns no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// Banner is the body of GET /.
type Banner struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
