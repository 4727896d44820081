// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package inference

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"testing"

	"github.com/MKhiriev/obesitrack/models"
	"github.com/stretchr/testify/require"
)

var testFeatures = []string{"IMC", "Height", "Weight", "FCVC"}

// stump splits on BMI at 25.
func stump(left, right []float64) tree {
	return tree{
		ChildrenLeft:  []int{1, leaf, leaf},
		ChildrenRight: []int{2, leaf, leaf},
		Feature:       []int{0, -2, -2},
		Threshold:     []float64{25, -2, -2},
		Value:         [][]float64{make([]float64, len(left)), left, right},
	}
}

// boostingArtifact favours Normal_Weight below BMI 25 and Obesity_Type_I above.
func boostingArtifact() artifact {
	stage := make([]tree, 7)
	for k := range stage {
		left, right := 0.0, 0.0
		if k == 1 {
			left = 2
		}
		if k == 4 {
			right = 2
		}
		stage[k] = stump([]float64{left}, []float64{right})
	}

	return artifact{
		Algorithm:    "GradientBoostingClassifier",
		Kind:         KindGradientBoosting,
		Features:     testFeatures,
		Classes:      []int{0, 1, 2, 3, 4, 5, 6},
		LearningRate: 1,
		Init:         make([]float64, 7),
		Estimators:   [][]tree{stage},
	}
}

func encode(t *testing.T, a artifact) []byte {
	t.Helper()
	raw, err := json.Marshal(a)
	require.NoError(t, err)
	return raw
}

func gzipped(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func input(height, weight float64) models.PredictionInput {
	return models.PredictionInput{
		Gender: "Male", Age: 30, Height: height, Weight: weight,
		FamilyHistoryWithOverweight: "yes", FAVC: "yes", FCVC: 2, NCP: 3,
		CAEC: "Sometimes", SMOKE: "no", CH2O: 2, SCC: "no",
		FAF: 1, TUE: 1, CALC: "no", MTRANS: "Walking",
	}
}
