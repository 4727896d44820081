// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package inference

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/obesitrack/internal/config"
	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumOf(m map[string]float64) float64 {
	var s float64
	for _, v := range m {
		s += v
	}
	return s
}

func TestPredict_GradientBoosting(t *testing.T) {
	svc, err := newFromBytes(encode(t, boostingArtifact()), "memory")
	require.NoError(t, err)

	tests := []struct {
		name   string
		height float64
		weight float64
		want   string
	}{
		{"normal", 1.75, 65, models.NormalWeight},
		{"obese", 1.70, 100, models.ObesityTypeI},
		{"exactly on threshold goes left", 2, 100, models.NormalWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Predict(context.Background(), input(tt.height, tt.weight))
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Label)

			require.Len(t, result.Probabilities, 7)
			for _, label := range classLabels {
				assert.Contains(t, result.Probabilities, label)
			}
			assert.InDelta(t, 1.0, sumOf(result.Probabilities), 1e-9)
			assert.Greater(t, result.Probabilities[tt.want], 0.5)
		})
	}
}

func TestPredict_BinaryBoostingUsesSigmoid(t *testing.T) {
	a := artifact{
		Kind:         KindGradientBoosting,
		Features:     testFeatures,
		Classes:      []int{0, 1},
		LearningRate: 1,
		Init:         []float64{0},
		Estimators:   [][]tree{{stump([]float64{-3}, []float64{3})}},
	}
	svc, err := newFromBytes(encode(t, a), "memory")
	require.NoError(t, err)

	result, err := svc.Predict(context.Background(), input(1.6, 90))
	require.NoError(t, err)
	assert.Equal(t, models.NormalWeight, result.Label)
	assert.InDelta(t, 1/(1+0.049787068367863944), result.Probabilities[models.NormalWeight], 1e-9)
	assert.InDelta(t, 1.0, sumOf(result.Probabilities), 1e-9)
}

func TestPredict_DecisionTreeNormalisesCounts(t *testing.T) {
	left := []float64{0, 30, 10, 0, 0, 0, 0}
	right := []float64{0, 0, 0, 5, 15, 0, 0}
	tr := stump(left, right)
	a := artifact{
		Algorithm: "DecisionTreeClassifier",
		Kind:      KindDecisionTree,
		Features:  testFeatures,
		Classes:   []int{0, 1, 2, 3, 4, 5, 6},
		Tree:      &tr,
	}
	svc, err := newFromBytes(encode(t, a), "memory")
	require.NoError(t, err)

	result, err := svc.Predict(context.Background(), input(1.7, 95))
	require.NoError(t, err)
	assert.Equal(t, models.ObesityTypeI, result.Label)
	assert.InDelta(t, 0.75, result.Probabilities[models.ObesityTypeI], 1e-9)
	assert.InDelta(t, 0.25, result.Probabilities[models.OverweightLevelII], 1e-9)
	assert.Zero(t, result.Probabilities[models.NormalWeight])
}

func TestPredict_LinearSVCHasNoProbabilities(t *testing.T) {
	a := artifact{
		Kind:      KindLinearSVC,
		Features:  testFeatures,
		Classes:   []int{4, 5, 6},
		Coef:      [][]float64{{1, 0, 0, 0}, {2, 0, 0, 0}, {0, 0, 0, 0}},
		Intercept: []float64{0, -30, 40},
	}
	svc, err := newFromBytes(encode(t, a), "memory")
	require.NoError(t, err)

	// BMI 40: scores 40, 50, 40
	result, err := svc.Predict(context.Background(), input(1.5, 90))
	require.NoError(t, err)
	assert.Equal(t, models.ObesityTypeII, result.Label)
	assert.Nil(t, result.Probabilities)
}

func TestPredict_UnknownClassLabel(t *testing.T) {
	tr := stump([]float64{1, 0}, []float64{0, 1})
	a := artifact{
		Kind:     KindDecisionTree,
		Features: testFeatures,
		Classes:  []int{0, 9},
		Tree:     &tr,
	}
	svc, err := newFromBytes(encode(t, a), "memory")
	require.NoError(t, err)

	result, err := svc.Predict(context.Background(), input(1.6, 90))
	require.NoError(t, err)
	assert.Equal(t, "Unknown_9", result.Label)
	assert.Contains(t, result.Probabilities, "Class_1")
	assert.Contains(t, result.Probabilities, models.InsufficientWeight)
}

func TestPredict_NonFiniteFeatures(t *testing.T) {
	svc, err := newFromBytes(encode(t, boostingArtifact()), "memory")
	require.NoError(t, err)

	_, err = svc.Predict(context.Background(), input(0, 70))
	assert.ErrorIs(t, err, ErrInvalidFeatures)
}

func TestNewFromBytes_Gzip(t *testing.T) {
	svc, err := newFromBytes(gzipped(t, encode(t, boostingArtifact())), "memory")
	require.NoError(t, err)
	assert.Equal(t, "GradientBoostingClassifier", svc.Info().Algorithm)
	assert.Equal(t, testFeatures, svc.Info().Features)
}

func TestNewFromBytes_Invalid(t *testing.T) {
	badChild := boostingArtifact()
	badChild.Estimators[0][3].ChildrenLeft = []int{5, leaf, leaf}

	unknownFeature := boostingArtifact()
	unknownFeature.Features = []string{"IMC", "Age"}

	wrongInit := boostingArtifact()
	wrongInit.Init = []float64{0}

	missingTree := artifact{Kind: KindDecisionTree, Features: testFeatures, Classes: []int{0, 1}}

	wrongKind := boostingArtifact()
	wrongKind.Kind = "random_forest"

	tests := map[string][]byte{
		"not json":         []byte("{"),
		"broken gzip":      {0x1f, 0x8b, 0x00},
		"no classes":       []byte(`{"kind":"gradient_boosting","features":["IMC"]}`),
		"bad child":        encode(t, badChild),
		"unknown feature":  encode(t, unknownFeature),
		"wrong init width": encode(t, wrongInit),
		"missing tree":     encode(t, missingTree),
		"unsupported kind": encode(t, wrongKind),
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := newFromBytes(raw, "memory")
			assert.ErrorIs(t, err, ErrModelLoad)
		})
	}
}

func TestNewInferenceService_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json.gz")
	require.NoError(t, os.WriteFile(path, gzipped(t, encode(t, boostingArtifact())), 0o600))

	svc, err := NewInferenceService(context.Background(), config.Model{Path: path}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, path, svc.Info().Source)
}

func TestNewInferenceService_MissingFile(t *testing.T) {
	_, err := NewInferenceService(context.Background(), config.Model{Path: filepath.Join(t.TempDir(), "absent.json")}, logger.Nop())
	assert.ErrorIs(t, err, ErrModelLoad)
}

type fakeObjectGetter struct {
	raw    []byte
	err    error
	bucket string
	key    string
}

func (f *fakeObjectGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket, f.key = aws.ToString(in.Bucket), aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.raw))}, nil
}

func withObjectGetter(t *testing.T, getter *fakeObjectGetter) *s3.Options {
	t.Helper()
	original := newObjectGetter
	t.Cleanup(func() { newObjectGetter = original })

	opts := &s3.Options{}
	newObjectGetter = func(_ aws.Config, optFns ...func(*s3.Options)) objectGetter {
		for _, fn := range optFns {
			fn(opts)
		}
		return getter
	}
	return opts
}

func TestNewInferenceService_S3(t *testing.T) {
	getter := &fakeObjectGetter{raw: encode(t, boostingArtifact())}
	opts := withObjectGetter(t, getter)

	cfg := config.Model{
		Path: "s3://models/obesity/model.json",
		S3: config.S3{
			Endpoint:        "http://127.0.0.1:9000",
			Region:          "us-east-1",
			AccessKeyID:     "minio",
			SecretAccessKey: "minio123",
			UsePathStyle:    true,
		},
	}
	svc, err := NewInferenceService(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "models", getter.bucket)
	assert.Equal(t, "obesity/model.json", getter.key)
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, cfg.Path, svc.Info().Source)
}

func TestNewInferenceService_S3Error(t *testing.T) {
	withObjectGetter(t, &fakeObjectGetter{err: errors.New("NoSuchKey")})

	_, err := NewInferenceService(context.Background(), config.Model{
		Path: "s3://models/missing.json",
		S3:   config.S3{Region: "us-east-1", AccessKeyID: "k", SecretAccessKey: "s"},
	}, logger.Nop())
	assert.ErrorIs(t, err, ErrModelLoad)
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := parseS3URI("s3://bucket/a/b.json")
	require.NoError(t, err)
	assert.Equal(t, "bucket", bucket)
	assert.Equal(t, "a/b.json", key)

	for _, uri := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key"} {
		_, _, err = parseS3URI(uri)
		assert.ErrorIs(t, err, ErrModelLoad, uri)
	}
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, models.InsufficientWeight, LabelFor(0))
	assert.Equal(t, models.ObesityTypeIII, LabelFor(6))
	assert.Equal(t, "Unknown_7", LabelFor(7))
	assert.Equal(t, "Unknown_-1", LabelFor(-1))
}
