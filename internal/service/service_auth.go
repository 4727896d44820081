// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/obesitrack/internal/config"
	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/store"
	"github.com/MKhiriev/obesitrack/internal/utils"
	"github.com/MKhiriev/obesitrack/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to look up users.
	userRepository store.UserRepository

	// transactor runs the count-then-insert of a registration atomically.
	transactor store.Transactor

	ids IDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, transactor store.Transactor, ids IDGenerator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		transactor:     transactor,
		ids:            ids,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            time.Now,
		logger:         logger,
	}
}

// Register creates a new user account from an already validated request.
//
// The very first account receives the admin role; counting and inserting
// happen in one transaction.
//
// Returns the persisted user or:
//   - ErrEmailAlreadyExists if the email is taken.
//   - ErrInternal wrapping any other failure.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return models.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	user := models.User{
		ID:             a.ids.Generate(),
		Email:          req.Email,
		HashedPassword: hash,
		FullName:       req.FullName,
		Role:           models.RoleUser,
		CreatedAt:      a.now().UTC(),
	}

	var created models.User
	// First user becomes admin. Serializable isolation keeps two concurrent
	// first registrations from both reading a zero count.
	err = a.transactor.WithinSerializableTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		count, err := repos.UserRepository.Count(ctx)
		if err != nil {
			return err
		}
		if count == 0 {
			user.Role = models.RoleAdmin
		}

		created, err = repos.UserRepository.Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			log.Info().Str("func", "*authService.Register").Str("email", user.Email).Msg("email already registered")
			return models.User{}, err
		}
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	log.Info().Str("func", "*authService.Register").Str("id", created.ID).Str("role", string(created.Role)).Msg("user registered")

	return created, nil
}

// Login authenticates an existing user and issues an access token.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, email, password string) (models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if !utils.CheckPassword(password, user.HashedPassword) {
		log.Info().Str("func", "*authService.Login").Str("id", user.ID).Msg("wrong password")
		return models.Token{}, ErrInvalidCredentials
	}

	return a.createToken(user)
}

// createToken issues a signed JWT for the given user.
func (a *authService) createToken(user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w: %w", ErrInternal, ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Expired tokens yield ErrExpiredToken; every other validation failure
// (signature, issuer, algorithm, missing subject) yields ErrInvalidToken.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		if errors.Is(err, utils.ErrExpiredToken) {
			return models.Token{}, ErrExpiredToken
		}
		return models.Token{}, ErrInvalidToken
	}

	return token, nil
}

// CurrentUser resolves the subject of a valid token to the stored user.
// A token whose user no longer exists is reported as ErrInvalidToken.
func (a *authService) CurrentUser(ctx context.Context, tokenString string) (models.User, error) {
	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindByEmail(ctx, token.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.User{}, ErrInvalidToken
		}
		logger.FromContext(ctx).Err(err).Str("func", "*authService.CurrentUser").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return user, nil
}
