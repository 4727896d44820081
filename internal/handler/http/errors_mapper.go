package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/service"
	"github.com/MKhiriev/obesitrack/internal/utils"
	"github.com/MKhiriev/obesitrack/internal/validators"
	"github.com/MKhiriev/obesitrack/models"
)

var errorStatusMap = map[error]int{
	validators.ErrValidation:      http.StatusUnprocessableEntity,
	validators.ErrUnsupportedType: http.StatusInternalServerError,

	ErrMalformedBody:              http.StatusBadRequest,
	ErrBodyTooLarge:               http.StatusRequestEntityTooLarge,
	ErrMissingAuthorization:       http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrNotFound:                   http.StatusNotFound,
	ErrMethodNotAllowed:           http.StatusMethodNotAllowed,

	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrInvalidToken:       http.StatusUnauthorized,
	service.ErrExpiredToken:       http.StatusUnauthorized,
	service.ErrForbidden:          http.StatusForbidden,
	service.ErrUserNotFound:       http.StatusNotFound,
	service.ErrPredictionNotFound: http.StatusNotFound,
	service.ErrEmailAlreadyExists: http.StatusConflict,
	service.ErrInternal:           http.StatusInternalServerError,
}

// statusFromError returns the HTTP status for err together with the sentinel
// it matched. Unknown errors map to 500 and [service.ErrInternal].
func statusFromError(err error) (int, error) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			if status == http.StatusInternalServerError {
				return status, service.ErrInternal
			}
			return status, target
		}
	}
	return http.StatusInternalServerError, service.ErrInternal
}

// writeError renders err as an [models.ErrorResponse]. The detail is the text
// of the matched sentinel, so wrapped causes never leak to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, sentinel := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	resp := models.ErrorResponse{Detail: sentinel.Error()}
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		resp.Errors = validationErr.Fields
	}

	utils.WriteJSON(w, resp, status)
}
