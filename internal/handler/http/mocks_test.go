package http

import (
	"context"

	"github.com/MKhiriev/obesitrack/models"
)

// ─────────────────────────────────────────────
// Function-field service mocks. Each test overrides only the methods it
// exercises; calling an unset method panics.
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerFn    func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn       func(ctx context.Context, email, password string) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
	currentUserFn func(ctx context.Context, tokenString string) (models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.Token, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) CurrentUser(ctx context.Context, tokenString string) (models.User, error) {
	return m.currentUserFn(ctx, tokenString)
}

type mockPredictionService struct {
	createFn func(ctx context.Context, user models.User, input models.PredictionInput) (models.Prediction, error)
	listFn   func(ctx context.Context, user models.User, limit int) ([]models.Prediction, error)
	getFn    func(ctx context.Context, user models.User, id string) (models.Prediction, error)
	deleteFn func(ctx context.Context, user models.User, id string) error
}

func (m *mockPredictionService) CreatePrediction(ctx context.Context, user models.User, input models.PredictionInput) (models.Prediction, error) {
	return m.createFn(ctx, user, input)
}

func (m *mockPredictionService) ListHistory(ctx context.Context, user models.User, limit int) ([]models.Prediction, error) {
	return m.listFn(ctx, user, limit)
}

func (m *mockPredictionService) GetPrediction(ctx context.Context, user models.User, id string) (models.Prediction, error) {
	return m.getFn(ctx, user, id)
}

func (m *mockPredictionService) DeletePrediction(ctx context.Context, user models.User, id string) error {
	return m.deleteFn(ctx, user, id)
}

type mockAdminService struct {
	listUsersFn         func(ctx context.Context, caller models.User, limit, offset int) ([]models.UserWithCount, error)
	statsFn             func(ctx context.Context, caller models.User) (models.AdminStats, error)
	userPredictionsFn   func(ctx context.Context, caller models.User, userID string, limit int) (models.UserPredictions, error)
	deleteUserFn        func(ctx context.Context, caller models.User, userID string) (models.User, error)
	deletePredictionFn  func(ctx context.Context, caller models.User, id string) error
	createUserFn        func(ctx context.Context, caller models.User, req models.CreateUserRequest) (models.UserWithCount, error)
	updateUserFn        func(ctx context.Context, caller models.User, userID string, req models.UpdateUserRequest) (models.User, error)
	recentPredictionsFn func(ctx context.Context, caller models.User, limit int) ([]models.RecentPrediction, error)
}

func (m *mockAdminService) ListUsers(ctx context.Context, caller models.User, limit, offset int) ([]models.UserWithCount, error) {
	return m.listUsersFn(ctx, caller, limit, offset)
}

func (m *mockAdminService) Stats(ctx context.Context, caller models.User) (models.AdminStats, error) {
	return m.statsFn(ctx, caller)
}

func (m *mockAdminService) UserPredictions(ctx context.Context, caller models.User, userID string, limit int) (models.UserPredictions, error) {
	return m.userPredictionsFn(ctx, caller, userID, limit)
}

func (m *mockAdminService) DeleteUser(ctx context.Context, caller models.User, userID string) (models.User, error) {
	return m.deleteUserFn(ctx, caller, userID)
}

func (m *mockAdminService) DeletePrediction(ctx context.Context, caller models.User, id string) error {
	return m.deletePredictionFn(ctx, caller, id)
}

func (m *mockAdminService) CreateUser(ctx context.Context, caller models.User, req models.CreateUserRequest) (models.UserWithCount, error) {
	return m.createUserFn(ctx, caller, req)
}

func (m *mockAdminService) UpdateUser(ctx context.Context, caller models.User, userID string, req models.UpdateUserRequest) (models.User, error) {
	return m.updateUserFn(ctx, caller, userID, req)
}

func (m *mockAdminService) RecentPredictions(ctx context.Context, caller models.User, limit int) ([]models.RecentPrediction, error) {
	return m.recentPredictionsFn(ctx, caller, limit)
}

type mockModelInfoService struct {
	info models.ModelInfo
}

func (m *mockModelInfoService) ModelInfo(_ context.Context) models.ModelInfo {
	return m.info
}

type mockHealthService struct {
	status  models.HealthStatus
	version string
}

func (m *mockHealthService) Health(_ context.Context) models.HealthStatus {
	return m.status
}

func (m *mockHealthService) GetAppVersion(_ context.Context) string {
	return m.version
}
