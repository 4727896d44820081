// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package inference

import (
	"fmt"
	"math"
)

// classifier maps a feature vector to a class position. Probabilities are
// nil when the model cannot estimate them.
type classifier interface {
	classify(x []float64) (index int, probabilities []float64)
}

func newClassifier(a *artifact) (classifier, error) {
	switch a.Kind {
	case KindGradientBoosting:
		return newGradientBoosting(a)
	case KindDecisionTree:
		return newDecisionTree(a)
	case KindLinearSVC:
		return newLinearSVC(a)
	}
	return nil, fmt.Errorf("%w: unsupported kind %q", ErrModelLoad, a.Kind)
}

type gradientBoosting struct {
	init         []float64
	learningRate float64
	stages       [][]tree
	classes      int
}

func newGradientBoosting(a *artifact) (*gradientBoosting, error) {
	classes := len(a.Classes)
	if classes < 2 {
		return nil, fmt.Errorf("%w: gradient boosting needs at least 2 classes", ErrModelLoad)
	}

	// binary models keep a single score
	width := classes
	if classes == 2 {
		width = 1
	}
	if len(a.Init) != width {
		return nil, fmt.Errorf("%w: init has %d scores, want %d", ErrModelLoad, len(a.Init), width)
	}
	if len(a.Estimators) == 0 {
		return nil, fmt.Errorf("%w: no estimators", ErrModelLoad)
	}
	for s, stage := range a.Estimators {
		if len(stage) != width {
			return nil, fmt.Errorf("%w: stage %d has %d trees, want %d", ErrModelLoad, s, len(stage), width)
		}
		for k := range stage {
			if err := stage[k].validate(len(a.Features), 1); err != nil {
				return nil, fmt.Errorf("stage %d tree %d: %w", s, k, err)
			}
		}
	}

	return &gradientBoosting{
		init:         a.Init,
		learningRate: a.LearningRate,
		stages:       a.Estimators,
		classes:      classes,
	}, nil
}

func (g *gradientBoosting) classify(x []float64) (int, []float64) {
	raw := make([]float64, len(g.init))
	copy(raw, g.init)
	for _, stage := range g.stages {
		for k := range stage {
			raw[k] += g.learningRate * stage[k].leafValue(x)[0]
		}
	}

	var proba []float64
	if g.classes == 2 {
		p := 1 / (1 + math.Exp(-raw[0]))
		proba = []float64{1 - p, p}
	} else {
		proba = softmax(raw)
	}

	return argmax(proba), proba
}

type decisionTree struct {
	tree *tree
}

func newDecisionTree(a *artifact) (*decisionTree, error) {
	if a.Tree == nil {
		return nil, fmt.Errorf("%w: decision tree artifact has no tree", ErrModelLoad)
	}
	if err := a.Tree.validate(len(a.Features), len(a.Classes)); err != nil {
		return nil, err
	}
	return &decisionTree{tree: a.Tree}, nil
}

func (d *decisionTree) classify(x []float64) (int, []float64) {
	counts := d.tree.leafValue(x)

	var total float64
	for _, c := range counts {
		total += c
	}

	proba := make([]float64, len(counts))
	for i, c := range counts {
		if total > 0 {
			proba[i] = c / total
		} else {
			proba[i] = 1 / float64(len(counts))
		}
	}

	return argmax(proba), proba
}

type linearSVC struct {
	coef      [][]float64
	intercept []float64
}

func newLinearSVC(a *artifact) (*linearSVC, error) {
	rows := len(a.Classes)
	if rows == 2 {
		rows = 1
	}
	if len(a.Coef) != rows || len(a.Intercept) != rows {
		return nil, fmt.Errorf("%w: linear svc needs %d coefficient rows and intercepts", ErrModelLoad, rows)
	}
	for i, row := range a.Coef {
		if len(row) != len(a.Features) {
			return nil, fmt.Errorf("%w: coefficient row %d has %d values, want %d", ErrModelLoad, i, len(row), len(a.Features))
		}
	}
	return &linearSVC{coef: a.Coef, intercept: a.Intercept}, nil
}

func (l *linearSVC) classify(x []float64) (int, []float64) {
	scores := make([]float64, len(l.coef))
	for i, row := range l.coef {
		scores[i] = l.intercept[i]
		for j, w := range row {
			scores[i] += w * x[j]
		}
	}

	if len(scores) == 1 {
		if scores[0] > 0 {
			return 1, nil
		}
		return 0, nil
	}
	return argmax(scores), nil
}

func softmax(raw []float64) []float64 {
	peak := raw[argmax(raw)]

	var sum float64
	out := make([]float64, len(raw))
	for i, r := range raw {
		out[i] = math.Exp(r - peak)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// argmax returns the first index of the largest value.
func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
