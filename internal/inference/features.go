// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package inference

import (
	"fmt"
	"math"

	"github.com/MKhiriev/obesitrack/models"
)

type featureFunc func(in models.PredictionInput) float64

// knownFeatures are the columns an artifact may declare.
var knownFeatures = map[string]featureFunc{
	"IMC":    bmi,
	"BMI":    bmi,
	"Height": func(in models.PredictionInput) float64 { return in.Height },
	"Weight": func(in models.PredictionInput) float64 { return in.Weight },
	"FCVC":   func(in models.PredictionInput) float64 { return in.FCVC },
}

// bmi is weight / height².
func bmi(in models.PredictionInput) float64 {
	return in.Weight / (in.Height * in.Height)
}

func resolveFeatures(names []string) ([]featureFunc, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: artifact declares no features", ErrModelLoad)
	}

	funcs := make([]featureFunc, 0, len(names))
	for _, name := range names {
		f, ok := knownFeatures[name]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported feature %q", ErrModelLoad, name)
		}
		funcs = append(funcs, f)
	}
	return funcs, nil
}

// vector derives the feature vector in artifact order.
func vector(funcs []featureFunc, in models.PredictionInput) ([]float64, error) {
	x := make([]float64, len(funcs))
	for i, f := range funcs {
		v := f(in)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: feature %d is not finite", ErrInvalidFeatures, i)
		}
		x[i] = v
	}
	return x, nil
}
