// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/obesitrack/internal/app"
	"github.com/MKhiriev/obesitrack/internal/utils"
	"github.com/MKhiriev/obesitrack/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) predict(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())

	var req models.PredictionRequest
	if err := h.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	prediction, err := h.services.PredictionService.CreatePrediction(r.Context(), user, req.Input())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, predictionResponse(prediction), http.StatusOK)
}

// history lists the caller's predictions, newest first.
func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	predictions, err := h.services.PredictionService.ListHistory(r.Context(), user, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]models.PredictionResponse, 0, len(predictions))
	for _, p := range predictions {
		resp = append(resp, predictionResponse(p))
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) getPrediction(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())

	prediction, err := h.services.PredictionService.GetPrediction(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, predictionResponse(prediction), http.StatusOK)
}

func (h *Handler) deletePrediction(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())

	if err := h.services.PredictionService.DeletePrediction(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgPredictionDeleted}, http.StatusOK)
}

func predictionResponse(p models.Prediction) models.PredictionResponse {
	return models.PredictionResponse{ID: p.ID, PredictedClass: p.PredictedClass, Proba: p.Proba}
}
