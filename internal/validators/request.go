// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/MKhiriev/obesitrack/models"
	"github.com/go-playground/validator/v10"
)

// RequestValidator checks the `validate` tags of request structs.
// Field names in errors are the JSON names.
type RequestValidator struct {
	v *validator.Validate
}

func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	v.RegisterStructValidation(validatePredictionBMI, models.PredictionRequest{})
	return &RequestValidator{v: v}
}

// Validate checks obj, or only the named struct fields when fields is not empty.
func (rv *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = rv.v.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = rv.v.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, invalid.Type)
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &ValidationError{Fields: make([]models.FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, models.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// validatePredictionBMI rejects a Height and Weight pair whose BMI is not a
// finite number, such as a height so small that height² underflows to zero.
func validatePredictionBMI(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.PredictionRequest)
	if req.Height == nil || req.Weight == nil || *req.Height <= 0 || *req.Weight <= 0 {
		return
	}
	bmi := *req.Weight / (*req.Height * *req.Height)
	if math.IsNaN(bmi) || math.IsInf(bmi, 0) {
		sl.ReportError(req.Height, "Height", "Height", "bmi", "")
	}
}

// message converts a single FieldError into a human-readable message.
func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "bmi":
		return field + " is too small for a finite BMI"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
