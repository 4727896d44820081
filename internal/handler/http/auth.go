package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/utils"
	"github.com/MKhiriev/obesitrack/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := h.bind(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("id", user.ID).Msg("user registered")

	utils.WriteJSON(w, models.UserSummary{ID: user.ID, Email: user.Email, FullName: user.FullName}, http.StatusCreated)
}

// login accepts OAuth2 password-flow credentials as a form, or the same
// fields as JSON. The username is the account email.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, r, bodyError(err))
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	}

	if err := h.validator.Validate(r.Context(), &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AccessTokenResponse{AccessToken: token.SignedString, TokenType: "bearer"}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingAuthorization)
		return
	}

	utils.WriteJSON(w, userSummary(user), http.StatusOK)
}

func userSummary(user models.User) models.UserSummary {
	return models.UserSummary{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
}
