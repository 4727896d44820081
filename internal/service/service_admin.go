// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/store"
	"github.com/MKhiriev/obesitrack/internal/utils"
	"github.com/MKhiriev/obesitrack/internal/validators"
	"github.com/MKhiriev/obesitrack/models"
)

// recentUsersWindow is the look-back of AdminStats.RecentUsers.
const recentUsersWindow = 7 * 24 * time.Hour

// adminService implements AdminService on top of both repositories.
// Multi-statement operations go through transactor.
type adminService struct {
	repos      store.Repositories
	transactor store.Transactor
	ids        IDGenerator
	now        func() time.Time
	logger     *logger.Logger
}

func NewAdminService(repos store.Repositories, transactor store.Transactor, ids IDGenerator, logger *logger.Logger) AdminService {
	return &adminService{
		repos:      repos,
		transactor: transactor,
		ids:        ids,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *adminService) authorize(ctx context.Context, caller models.User, fn string) error {
	if !caller.IsAdmin() {
		logger.FromContext(ctx).Warn().Str("func", fn).Str("caller", caller.ID).Msg("admin operation refused")
		return ErrForbidden
	}
	return nil
}

// internal logs err and wraps it with ErrInternal unless it is one of the
// domain errors callers act upon.
func (s *adminService) internal(ctx context.Context, fn string, err error) error {
	if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrPredictionNotFound) || errors.Is(err, ErrEmailAlreadyExists) {
		return err
	}
	logger.FromContext(ctx).Err(err).Str("func", fn).Msg("admin operation failed")
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// ListUsers returns one page of users with their prediction counts, ordered by id.
func (s *adminService) ListUsers(ctx context.Context, caller models.User, limit, offset int) ([]models.UserWithCount, error) {
	const fn = "*adminService.ListUsers"
	if err := s.authorize(ctx, caller, fn); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.repos.UserRepository.ListWithPredictionCounts(ctx, limitOrDefault(limit, DefaultUsersLimit), offset)
	if err != nil {
		return nil, s.internal(ctx, fn, err)
	}
	return users, nil
}

func (s *adminService) Stats(ctx context.Context, caller models.User) (models.AdminStats, error) {
	const fn = "*adminService.Stats"
	if err := s.authorize(ctx, caller, fn); err != nil {
		return models.AdminStats{}, err
	}

	var (
		stats models.AdminStats
		err   error
	)
	if stats.TotalUsers, err = s.repos.UserRepository.Count(ctx); err != nil {
		return models.AdminStats{}, s.internal(ctx, fn, err)
	}
	if stats.TotalPredictions, err = s.repos.PredictionRepository.Count(ctx); err != nil {
		return models.AdminStats{}, s.internal(ctx, fn, err)
	}
	if stats.PredictionsByClass, err = s.repos.PredictionRepository.CountByClass(ctx); err != nil {
		return models.AdminStats{}, s.internal(ctx, fn, err)
	}
	if stats.RecentUsers, err = s.repos.UserRepository.CountCreatedSince(ctx, s.now().UTC().Add(-recentUsersWindow)); err != nil {
		return models.AdminStats{}, s.internal(ctx, fn, err)
	}

	return stats, nil
}

// UserPredictions returns the summary of userID and its newest predictions.
func (s *adminService) UserPredictions(ctx context.Context, caller models.User, userID string, limit int) (models.UserPredictions, error) {
	const fn = "*adminService.UserPredictions"
	if err := s.authorize(ctx, caller, fn); err != nil {
		return models.UserPredictions{}, err
	}

	user, err := s.repos.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return models.UserPredictions{}, s.internal(ctx, fn, err)
	}

	predictions, err := s.repos.PredictionRepository.ListByUser(ctx, userID, limitOrDefault(limit, DefaultHistoryLimit))
	if err != nil {
		return models.UserPredictions{}, s.internal(ctx, fn, err)
	}

	return models.UserPredictions{
		User:        models.UserSummary{ID: user.ID, Email: user.Email, FullName: user.FullName},
		Predictions: predictions,
	}, nil
}

// DeleteUser removes userID and all of its predictions in one transaction
// and returns the deleted user.
func (s *adminService) DeleteUser(ctx context.Context, caller models.User, userID string) (models.User, error) {
	const fn = "*adminService.DeleteUser"
	if err := s.authorize(ctx, caller, fn); err != nil {
		return models.User{}, err
	}

	var (
		deleted     models.User
		predictions int64
	)
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		if deleted, err = repos.UserRepository.FindByID(ctx, userID); err != nil {
			return err
		}
		if predictions, err = repos.PredictionRepository.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return repos.UserRepository.Delete(ctx, userID)
	})
	if err != nil {
		return models.User{}, s.internal(ctx, fn, err)
	}

	logger.FromContext(ctx).Info().
		Str("func", fn).
		Str("id", userID).
		Int64("predictions", predictions).
		Msg("user deleted")

	return deleted, nil
}

func (s *adminService) DeletePrediction(ctx context.Context, caller models.User, id string) error {
	const fn = "*adminService.DeletePrediction"
	if err := s.authorize(ctx, caller, fn); err != nil {
		return err
	}

	if err := s.repos.PredictionRepository.Delete(ctx, id); err != nil {
		return s.internal(ctx, fn, err)
	}
	return nil
}

// CreateUser creates an account with an explicit role, defaulting to user.
func (s *adminService) CreateUser(ctx context.Context, caller models.User, req models.CreateUserRequest) (models.UserWithCount, error) {
	const fn = "*adminService.CreateUser"
	if err := s.authorize(ctx, caller, fn); err != nil {
		return models.UserWithCount{}, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return models.UserWithCount{}, validators.NewFieldError("role", "role must be one of: user admin")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.UserWithCount{}, s.internal(ctx, fn, err)
	}

	user, err := s.repos.UserRepository.Create(ctx, models.User{
		ID:             s.ids.Generate(),
		Email:          req.Email,
		HashedPassword: hash,
		FullName:       req.FullName,
		Role:           role,
		CreatedAt:      s.now().UTC(),
	})
	if err != nil {
		return models.UserWithCount{}, s.internal(ctx, fn, err)
	}

	logger.FromContext(ctx).Info().Str("func", fn).Str("id", user.ID).Str("role", string(role)).Msg("user created by admin")

	return models.UserWithCount{User: user}, nil
}

// UpdateUser applies the present fields of req to userID. A new password is
// hashed before it is stored.
func (s *adminService) UpdateUser(ctx context.Context, caller models.User, userID string, req models.UpdateUserRequest) (models.User, error) {
	const fn = "*adminService.UpdateUser"
	if err := s.authorize(ctx, caller, fn); err != nil {
		return models.User{}, err
	}
	if req.Role != nil && !req.Role.Valid() {
		return models.User{}, validators.NewFieldError("role", "role must be one of: user admin")
	}

	patch := models.UserPatch{
		ID:       userID,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return models.User{}, s.internal(ctx, fn, err)
		}
		patch.HashedPassword = &hash
	}

	user, err := s.repos.UserRepository.Update(ctx, patch)
	if err != nil {
		return models.User{}, s.internal(ctx, fn, err)
	}
	return user, nil
}

func (s *adminService) RecentPredictions(ctx context.Context, caller models.User, limit int) ([]models.RecentPrediction, error) {
	const fn = "*adminService.RecentPredictions"
	if err := s.authorize(ctx, caller, fn); err != nil {
		return nil, err
	}

	recent, err := s.repos.PredictionRepository.ListRecent(ctx, limitOrDefault(limit, DefaultHistoryLimit))
	if err != nil {
		return nil, s.internal(ctx, fn, err)
	}
	return recent, nil
}
