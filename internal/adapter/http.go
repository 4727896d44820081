package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/obesitrack/internal/config"
	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/utils"
	"github.com/MKhiriev/obesitrack/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter builds a resty-backed [ServerAdapter].
// cfg.ServerURL may omit the scheme, in which case http:// is assumed.
// A non-empty cfg.Token is installed right away.
func NewHTTPServerAdapter(cfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server url: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	a.SetToken(cfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter] via POST /auth/register.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.UserSummary, error) {
	var created models.UserSummary

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&created).
		Post("/auth/register")
	if err != nil {
		return models.UserSummary{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserSummary{}, err
	}

	h.logger.Debug().Str("user_id", created.ID).Msg("account registered")
	return created, nil
}

// Login implements [ServerAdapter] via a form-encoded POST /auth/login.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AccessTokenResponse, error) {
	var token models.AccessTokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": req.Username,
			"password": req.Password,
		}).
		SetResult(&token).
		Post("/auth/login")
	if err != nil {
		return models.AccessTokenResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccessTokenResponse{}, err
	}
	if token.AccessToken == "" {
		return models.AccessTokenResponse{}, fmt.Errorf("login: empty access token in response")
	}

	h.SetToken(token.AccessToken)
	return token, nil
}

// Me implements [ServerAdapter] via GET /auth/me.
func (h *httpServerAdapter) Me(ctx context.Context) (models.UserSummary, error) {
	var me models.UserSummary

	resp, err := h.authedRequest(ctx).
		SetResult(&me).
		Get("/auth/me")
	if err != nil {
		return models.UserSummary{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserSummary{}, err
	}

	return me, nil
}

// Predict implements [ServerAdapter] via POST /predict/.
func (h *httpServerAdapter) Predict(ctx context.Context, req models.PredictionRequest) (models.PredictionResponse, error) {
	var prediction models.PredictionResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&prediction).
		Post("/predict/")
	if err != nil {
		return models.PredictionResponse{}, fmt.Errorf("predict request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PredictionResponse{}, err
	}

	return prediction, nil
}

// History implements [ServerAdapter] via GET /predict/history.
// Non-positive limit and negative offset are left to the server defaults.
func (h *httpServerAdapter) History(ctx context.Context, limit, offset int) ([]models.PredictionResponse, error) {
	var items []models.PredictionResponse

	req := h.authedRequest(ctx).SetResult(&items)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		req.SetQueryParam("offset", strconv.Itoa(offset))
	}

	resp, err := req.Get("/predict/history")
	if err != nil {
		return nil, fmt.Errorf("history request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if items == nil {
		items = []models.PredictionResponse{}
	}
	return items, nil
}

// Health implements [ServerAdapter] via GET /health.
func (h *httpServerAdapter) Health(ctx context.Context) (models.HealthStatus, error) {
	var status models.HealthStatus

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&status).
		Get("/health")
	if err != nil {
		return models.HealthStatus{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthStatus{}, err
	}

	return status, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
