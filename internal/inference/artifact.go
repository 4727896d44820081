// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package inference

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
)

// Artifact kinds.
const (
	KindGradientBoosting = "gradient_boosting"
	KindDecisionTree     = "decision_tree"
	KindLinearSVC        = "linear_svc"
)

// artifact is the JSON export of a trained classifier.
//
// Gradient boosting uses Init, LearningRate and Estimators (one tree per
// class per stage, a single tree per stage for binary models). A decision
// tree uses Tree. A linear SVC uses Coef and Intercept.
type artifact struct {
	Algorithm    string      `json:"algorithm"`
	Kind         string      `json:"kind"`
	Features     []string    `json:"features"`
	Classes      []int       `json:"classes"`
	LearningRate float64     `json:"learning_rate"`
	Init         []float64   `json:"init"`
	Estimators   [][]tree    `json:"estimators"`
	Tree         *tree       `json:"tree"`
	Coef         [][]float64 `json:"coef"`
	Intercept    []float64   `json:"intercept"`
}

// tree is a flattened binary decision tree. Node 0 is the root and a node
// is a leaf when its left child is -1.
type tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

const leaf = -1

var gzipMagic = []byte{0x1f, 0x8b}

// decodeArtifact parses raw, gunzipping it first when it starts with the
// gzip magic bytes.
func decodeArtifact(raw []byte) (*artifact, error) {
	if bytes.HasPrefix(raw, gzipMagic) {
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
		}
		defer zr.Close()

		if raw, err = io.ReadAll(zr); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
		}
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}
	if len(a.Classes) == 0 {
		return nil, fmt.Errorf("%w: artifact declares no classes", ErrModelLoad)
	}

	return &a, nil
}

// validate checks the node arrays so that traversal always terminates on a
// leaf carrying width values.
func (t *tree) validate(features, width int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("%w: empty tree", ErrModelLoad)
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("%w: tree arrays differ in length", ErrModelLoad)
	}

	for i := 0; i < n; i++ {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == leaf {
			if right != leaf {
				return fmt.Errorf("%w: node %d has a single child", ErrModelLoad, i)
			}
			if len(t.Value[i]) != width {
				return fmt.Errorf("%w: leaf %d has %d values, want %d", ErrModelLoad, i, len(t.Value[i]), width)
			}
			continue
		}
		// children always follow their parent
		if left <= i || left >= n || right <= i || right >= n {
			return fmt.Errorf("%w: node %d has out of range children", ErrModelLoad, i)
		}
		if f := t.Feature[i]; f < 0 || f >= features {
			return fmt.Errorf("%w: node %d splits on unknown feature %d", ErrModelLoad, i, f)
		}
	}

	return nil
}

// leafValue walks the tree for x. Feature values are compared as float32,
// the precision the tree was trained with.
func (t *tree) leafValue(x []float64) []float64 {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if float64(float32(x[t.Feature[node]])) <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}
