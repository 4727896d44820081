// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/mock"
	"github.com/MKhiriev/obesitrack/internal/store"
	"github.com/MKhiriev/obesitrack/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testOwner = models.User{ID: "u1", Email: "sara@example.com", Role: models.RoleUser}

func newTestPredictionSvc(t *testing.T, ctrl *gomock.Controller) (PredictionService, *mock.MockPredictionRepository, *mock.MockPredictor) {
	t.Helper()
	repo := mock.NewMockPredictionRepository(ctrl)
	predictor := mock.NewMockPredictor(ctrl)
	ids := mock.NewMockIDGenerator(ctrl)
	ids.EXPECT().Generate().Return("p1").AnyTimes()

	return NewPredictionService(repo, predictor, ids, logger.Nop()), repo, predictor
}

func TestPredictionService_CreatePrediction(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, predictor := newTestPredictionSvc(t, ctrl)
	input := models.PredictionInput{Gender: "Female", Height: 1.62, Weight: 64, FCVC: 2}
	proba := map[string]float64{models.NormalWeight: 0.8, models.OverweightLevelI: 0.2}

	predictor.EXPECT().Predict(gomock.Any(), input).
		Return(models.InferenceResult{Label: models.NormalWeight, Probabilities: proba}, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.Prediction) (models.Prediction, error) {
			assert.Equal(t, "p1", p.ID)
			assert.Equal(t, "u1", p.UserID)
			assert.Equal(t, input, p.Input)
			assert.Equal(t, proba, p.Proba)
			assert.False(t, p.CreatedAt.IsZero())
			return p, nil
		},
	)

	prediction, err := svc.CreatePrediction(context.Background(), testOwner, input)
	require.NoError(t, err)
	assert.Equal(t, models.NormalWeight, prediction.PredictedClass)
}

func TestPredictionService_CreatePrediction_InferenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, predictor := newTestPredictionSvc(t, ctrl)

	predictor.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(models.InferenceResult{}, errors.New("invalid features"))

	_, err := svc.CreatePrediction(context.Background(), testOwner, models.PredictionInput{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestPredictionService_CreatePrediction_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, predictor := newTestPredictionSvc(t, ctrl)

	predictor.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(models.InferenceResult{Label: models.ObesityTypeI}, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.Prediction{}, store.ErrExecutingStatement)

	_, err := svc.CreatePrediction(context.Background(), testOwner, models.PredictionInput{})
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, store.ErrExecutingStatement)
}

func TestPredictionService_ListHistory_DefaultLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestPredictionSvc(t, ctrl)

	repo.EXPECT().ListByUser(gomock.Any(), "u1", DefaultHistoryLimit).Return([]models.Prediction{{ID: "p2"}, {ID: "p1"}}, nil)
	repo.EXPECT().ListByUser(gomock.Any(), "u1", 5).Return([]models.Prediction{}, nil)

	history, err := svc.ListHistory(context.Background(), testOwner, 0)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	history, err = svc.ListHistory(context.Background(), testOwner, 5)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPredictionService_GetPrediction_NotOwned(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestPredictionSvc(t, ctrl)

	repo.EXPECT().FindByIDForUser(gomock.Any(), "p9", "u1").Return(models.Prediction{}, store.ErrPredictionNotFound)

	_, err := svc.GetPrediction(context.Background(), testOwner, "p9")
	assert.ErrorIs(t, err, ErrPredictionNotFound)
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestPredictionService_DeletePrediction(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestPredictionSvc(t, ctrl)

	repo.EXPECT().DeleteForUser(gomock.Any(), "p1", "u1").Return(nil)
	repo.EXPECT().DeleteForUser(gomock.Any(), "p1", "u1").Return(store.ErrPredictionNotFound)
	repo.EXPECT().DeleteForUser(gomock.Any(), "p2", "u1").Return(errors.New("disk full"))

	require.NoError(t, svc.DeletePrediction(context.Background(), testOwner, "p1"))
	assert.ErrorIs(t, svc.DeletePrediction(context.Background(), testOwner, "p1"), ErrPredictionNotFound)
	assert.ErrorIs(t, svc.DeletePrediction(context.Background(), testOwner, "p2"), ErrInternal)
}
