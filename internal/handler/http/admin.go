// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/obesitrack/internal/app"
	"github.com/MKhiriev/obesitrack/internal/utils"
	"github.com/MKhiriev/obesitrack/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetUserFromContext(r.Context())

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, err := h.services.AdminService.ListUsers(r.Context(), caller, limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if users == nil {
		users = []models.UserWithCount{}
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetUserFromContext(r.Context())

	stats, err := h.services.AdminService.Stats(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if stats.PredictionsByClass == nil {
		stats.PredictionsByClass = map[string]int64{}
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) adminUserPredictions(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetUserFromContext(r.Context())

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.AdminService.UserPredictions(r.Context(), caller, chi.URLParam(r, "id"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if result.Predictions == nil {
		result.Predictions = []models.Prediction{}
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) adminCreateUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetUserFromContext(r.Context())

	var req models.CreateUserRequest
	if err := h.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AdminService.CreateUser(r.Context(), caller, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) adminUpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetUserFromContext(r.Context())

	var req models.UpdateUserRequest
	if err := h.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AdminService.UpdateUser(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetUserFromContext(r.Context())

	deleted, err := h.services.AdminService.DeleteUser(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: fmt.Sprintf(app.MsgUserDeletedFormat, deleted.Email)}, http.StatusOK)
}

func (h *Handler) adminDeletePrediction(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetUserFromContext(r.Context())

	if err := h.services.AdminService.DeletePrediction(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgPredictionDeleted}, http.StatusOK)
}

func (h *Handler) adminRecentPredictions(w http.ResponseWriter, r *http.Request) {
	caller, _ := utils.GetUserFromContext(r.Context())

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	recent, err := h.services.AdminService.RecentPredictions(r.Context(), caller, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if recent == nil {
		recent = []models.RecentPrediction{}
	}

	utils.WriteJSON(w, recent, http.StatusOK)
}
