package http

import (
	"net/http"

	"github.com/MKhiriev/obesitrack/internal/app"
	"github.com/MKhiriev/obesitrack/internal/utils"
	"github.com/MKhiriev/obesitrack/models"
)

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.Banner{
		Message: app.MsgBanner,
		Version: h.services.HealthService.GetAppVersion(r.Context()),
		Status:  app.StatusOperational,
	}, http.StatusOK)
}

// health always answers 200; the database field carries the ping result.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.HealthService.Health(r.Context()), http.StatusOK)
}

func (h *Handler) modelInfo(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.ModelInfoService.ModelInfo(r.Context()), http.StatusOK)
}
