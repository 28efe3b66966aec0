// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kispace/kispace-server/internal/config"
	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/internal/store"
	"github.com/kispace/kispace-server/internal/utils"
	"github.com/kispace/kispace-server/models"
)

// Default administrator account created on startup when missing.
const (
	adminEmail    = "admin@example.com"
	adminUsername = "admin"
	adminPassword = "AdminPass123"
)

// bypassUserID is the account id the development bypass token resolves to.
const bypassUserID int64 = 1

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, profile and
// password updates, and the JWT token lifecycle using a UserRepository for
// persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// accessTokenTTL controls how long a newly issued access token remains
	// valid; refreshTokenTTL does the same for refresh tokens.
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		tokenSignKey:    cfg.JWTSecret,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		logger:          logger,
	}
}

// Register creates a new active user account with the role "user".
//
// Field-level validation (username length, email shape, password length)
// happens at the transport layer; uniqueness is enforced by the database,
// so a taken username or email surfaces as the matching store sentinel.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}

	registered, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registered, nil
}

// Authenticate verifies a username/password pair.
//
// A missing account and a wrong password both collapse into
// ErrInvalidCredentials: the caller must not be able to probe which
// usernames exist.
func (a *authService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	found, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("username", username).Msg("user search by username failed")
			return models.User{}, fmt.Errorf("user search by username failed: %w", err)
		}
		return models.User{}, ErrInvalidCredentials
	}

	if !utils.VerifyPassword(password, found.PasswordHash) {
		log.Warn().Str("username", username).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return found, nil
}

// IssueTokenPair signs a fresh access/refresh pair for the user. Both tokens
// carry the username as the subject claim and differ only in lifetime.
func (a *authService) IssueTokenPair(ctx context.Context, user models.User) (models.TokenPair, error) {
	access, err := utils.GenerateJWTToken(user.Username, a.accessTokenTTL, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh, err := utils.GenerateJWTToken(user.Username, a.refreshTokenTTL, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{
		AccessToken:  access.SignedString,
		RefreshToken: refresh.SignedString,
		TokenType:    models.TokenTypeBearer,
	}, nil
}

// ResolveToken validates a raw JWT string and loads the account named in its
// subject claim.
//
// Any validation failure (expired, malformed, bad signature) and any lookup
// miss is normalised to ErrTokenIsExpiredOrInvalid so that callers do not
// need to inspect low-level JWT errors.
func (a *authService) ResolveToken(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey)
	if err != nil {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	found, err := a.userRepository.FindUserByUsername(ctx, token.Username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("username", token.Username).Msg("token subject lookup failed")
			return models.User{}, fmt.Errorf("token subject lookup failed: %w", err)
		}
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	return found, nil
}

// BypassUser returns the account the development bypass token impersonates.
func (a *authService) BypassUser(ctx context.Context) (models.User, error) {
	found, err := a.userRepository.FindUserByID(ctx, bypassUserID)
	if err != nil {
		return models.User{}, fmt.Errorf("bypass user lookup failed: %w", err)
	}

	return found, nil
}

// UpdateProfile applies a partial profile update and returns the post-update
// account record. A taken email surfaces as store.ErrEmailAlreadyExists.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, update models.UpdateProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.Empty() {
		found, err := a.userRepository.FindUserByID(ctx, userID)
		if err != nil {
			return models.User{}, fmt.Errorf("user search by id failed: %w", err)
		}
		return found, nil
	}

	updated, err := a.userRepository.UpdateUser(ctx, userID, update)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile update ended with error")
		return models.User{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	return updated, nil
}

// ChangePassword verifies the old password of the account and stores the
// bcrypt hash of the new one.
//
// Returns ErrWrongOldPassword when the old password does not match the
// stored hash.
func (a *authService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	found, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if !utils.VerifyPassword(oldPassword, found.PasswordHash) {
		log.Warn().Int64("id", userID).Msg("wrong old password")
		return ErrWrongOldPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, hash); err != nil {
		log.Err(err).Int64("id", userID).Msg("password update ended with error")
		return fmt.Errorf("password update ended with error: %w", err)
	}

	return nil
}

// BootstrapAdmin ensures the default administrator account exists. The
// probe goes by username: when an "admin" account is already present the
// call is a no-op, which makes it safe to run on every startup.
func (a *authService) BootstrapAdmin(ctx context.Context) error {
	log := logger.FromContext(ctx)

	_, err := a.userRepository.FindUserByUsername(ctx, adminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("admin lookup failed: %w", err)
	}

	hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	admin := models.User{
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Status:       models.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := a.userRepository.CreateUser(ctx, admin)
	if err != nil {
		// A concurrent bootstrap may have won the race; duplicates mean
		// the account already exists and nothing is wrong.
		if errors.Is(err, store.ErrUsernameAlreadyExists) || errors.Is(err, store.ErrEmailAlreadyExists) {
			return nil
		}
		return fmt.Errorf("admin creation ended with error: %w", err)
	}

	log.Info().Int64("id", created.ID).Str("username", created.Username).Msg("default admin account created")
	return nil
}
