// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kispace/kispace-server/internal/config"
	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/internal/service"
	"github.com/kispace/kispace-server/internal/store"
	"github.com/kispace/kispace-server/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn       func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	authenticateFn   func(ctx context.Context, username, password string) (models.User, error)
	issueTokenPairFn func(ctx context.Context, user models.User) (models.TokenPair, error)
	resolveTokenFn   func(ctx context.Context, tokenString string) (models.User, error)
	bypassUserFn     func(ctx context.Context) (models.User, error)
	updateProfileFn  func(ctx context.Context, userID int64, update models.UpdateProfileRequest) (models.User, error)
	changePasswordFn func(ctx context.Context, userID int64, oldPassword, newPassword string) error
	bootstrapAdminFn func(ctx context.Context) error
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	return m.authenticateFn(ctx, username, password)
}

func (m *mockAuthService) IssueTokenPair(ctx context.Context, user models.User) (models.TokenPair, error) {
	return m.issueTokenPairFn(ctx, user)
}

func (m *mockAuthService) ResolveToken(ctx context.Context, tokenString string) (models.User, error) {
	return m.resolveTokenFn(ctx, tokenString)
}

func (m *mockAuthService) BypassUser(ctx context.Context) (models.User, error) {
	return m.bypassUserFn(ctx)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID int64, update models.UpdateProfileRequest) (models.User, error) {
	return m.updateProfileFn(ctx, userID, update)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	return m.changePasswordFn(ctx, userID, oldPassword, newPassword)
}

func (m *mockAuthService) BootstrapAdmin(ctx context.Context) error {
	return m.bootstrapAdminFn(ctx)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler wired to the given service mocks with a
// test-environment configuration.
func newTestHandler(t *testing.T, auth service.AuthService, item service.ItemService) *Handler {
	t.Helper()

	cfg := config.StructuredConfig{}
	cfg.App.Environment = config.EnvTest
	cfg.Auth.BypassToken = config.DefaultBypassToken
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}

	return NewHandler(&service.Services{AuthService: auth, ItemService: item}, cfg, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// validUser is a convenience fixture used across multiple tests.
var validUser = models.User{
	ID:       7,
	Username: "alice",
	Email:    "alice@example.com",
	Role:     models.RoleUser,
	Status:   models.StatusActive,
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestHandler_Register(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, req models.RegisterRequest) (models.User, error) {
			return models.User{ID: 7, Username: req.Username, Email: req.Email, Role: models.RoleUser, Status: models.StatusActive}, nil
		},
	}
	router := newTestHandler(t, auth, nil).Init()

	body := jsonBody(t, models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "Password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var profile models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, int64(7), profile.ID)
	assert.Equal(t, "alice", profile.Username)
	assert.NotContains(t, rec.Body.String(), "password", "profile must not leak credential fields")
}

func TestHandler_Register_ValidationFailures(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ models.RegisterRequest) (models.User, error) {
			t.Fatal("service must not be called for invalid payloads")
			return models.User{}, nil
		},
	}
	router := newTestHandler(t, auth, nil).Init()

	tests := []struct {
		name string
		body string
	}{
		{name: "username too short", body: jsonBody(t, models.RegisterRequest{Username: "al", Email: "a@example.com", Password: "Password123"})},
		{name: "invalid email", body: jsonBody(t, models.RegisterRequest{Username: "alice", Email: "not-an-email", Password: "Password123"})},
		{name: "password too short", body: jsonBody(t, models.RegisterRequest{Username: "alice", Email: "a@example.com", Password: "short"})},
		{name: "broken JSON", body: "{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_Register_DuplicateUsername(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ models.RegisterRequest) (models.User, error) {
			return models.User{}, store.ErrUsernameAlreadyExists
		},
	}
	router := newTestHandler(t, auth, nil).Init()

	body := jsonBody(t, models.RegisterRequest{Username: "alice", Email: "a@example.com", Password: "Password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already registered")
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestHandler_Login(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, username, password string) (models.User, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "Password123", password)
			return validUser, nil
		},
		issueTokenPairFn: func(_ context.Context, user models.User) (models.TokenPair, error) {
			return models.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: models.TokenTypeBearer}, nil
		},
	}
	router := newTestHandler(t, auth, nil).Init()

	body := jsonBody(t, models.LoginRequest{Username: "alice", Password: "Password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var pair models.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	assert.Equal(t, "access", pair.AccessToken)
	assert.Equal(t, "refresh", pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)
}

func TestHandler_Login_ConstantRejectionShape(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, service.ErrInvalidCredentials
		},
	}
	router := newTestHandler(t, auth, nil).Init()

	// Wrong credentials and missing credentials must produce byte-identical
	// rejections.
	bodies := []string{
		jsonBody(t, models.LoginRequest{Username: "alice", Password: "WrongPassword"}),
		jsonBody(t, models.LoginRequest{Username: "ghost", Password: "Password123"}),
		jsonBody(t, models.LoginRequest{Username: "alice"}),
	}

	var responses []string
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		responses = append(responses, rec.Body.String())
	}

	for _, response := range responses[1:] {
		assert.Equal(t, responses[0], response)
	}
}

func TestHandler_Login_ServiceFailure(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, errors.New("connection reset")
		},
	}
	router := newTestHandler(t, auth, nil).Init()

	body := jsonBody(t, models.LoginRequest{Username: "alice", Password: "Password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// Refresh / Profile / Password (authenticated)
// ─────────────────────────────────────────────

// authedRequest builds a request carrying a bearer token the mock resolver
// accepts as validUser.
func authedRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer valid-token")
	return req
}

func resolveValidUser(_ context.Context, tokenString string) (models.User, error) {
	if tokenString == "valid-token" {
		return validUser, nil
	}
	return models.User{}, service.ErrTokenIsExpiredOrInvalid
}

func TestHandler_Refresh(t *testing.T) {
	auth := &mockAuthService{
		resolveTokenFn: resolveValidUser,
		issueTokenPairFn: func(_ context.Context, user models.User) (models.TokenPair, error) {
			assert.Equal(t, validUser.ID, user.ID)
			return models.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh", TokenType: models.TokenTypeBearer}, nil
		},
	}
	router := newTestHandler(t, auth, nil).Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/api/auth/refresh", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new-access")
}

func TestHandler_GetProfile(t *testing.T) {
	auth := &mockAuthService{resolveTokenFn: resolveValidUser}
	router := newTestHandler(t, auth, nil).Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/auth/profile", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var profile models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, validUser.Username, profile.Username)
	assert.Equal(t, validUser.Role, profile.Role)
}

func TestHandler_UpdateProfile(t *testing.T) {
	email := "new@example.com"

	auth := &mockAuthService{
		resolveTokenFn: resolveValidUser,
		updateProfileFn: func(_ context.Context, userID int64, update models.UpdateProfileRequest) (models.User, error) {
			assert.Equal(t, validUser.ID, userID)
			require.NotNil(t, update.Email)
			assert.Equal(t, email, *update.Email)
			updated := validUser
			updated.Email = email
			return updated, nil
		},
	}
	router := newTestHandler(t, auth, nil).Init()

	body := jsonBody(t, models.UpdateProfileRequest{Email: &email})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/api/auth/profile", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), email)
}

func TestHandler_UpdateProfile_DuplicateEmail(t *testing.T) {
	email := "taken@example.com"

	auth := &mockAuthService{
		resolveTokenFn: resolveValidUser,
		updateProfileFn: func(_ context.Context, _ int64, _ models.UpdateProfileRequest) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	router := newTestHandler(t, auth, nil).Init()

	body := jsonBody(t, models.UpdateProfileRequest{Email: &email})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/api/auth/profile", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")
}

func TestHandler_ChangePassword(t *testing.T) {
	auth := &mockAuthService{
		resolveTokenFn: resolveValidUser,
		changePasswordFn: func(_ context.Context, userID int64, oldPassword, newPassword string) error {
			assert.Equal(t, validUser.ID, userID)
			assert.Equal(t, "OldPassword1", oldPassword)
			assert.Equal(t, "NewPassword1", newPassword)
			return nil
		},
	}
	router := newTestHandler(t, auth, nil).Init()

	body := jsonBody(t, models.ChangePasswordRequest{OldPassword: "OldPassword1", NewPassword: "NewPassword1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/api/auth/password", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "password updated successfully")
}

func TestHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	auth := &mockAuthService{
		resolveTokenFn: resolveValidUser,
		changePasswordFn: func(_ context.Context, _ int64, _, _ string) error {
			return service.ErrWrongOldPassword
		},
	}
	router := newTestHandler(t, auth, nil).Init()

	body := jsonBody(t, models.ChangePasswordRequest{OldPassword: "Wrong", NewPassword: "NewPassword1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/api/auth/password", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "wrong old password")
}

func TestHandler_ChangePassword_TooShortNewPassword(t *testing.T) {
	auth := &mockAuthService{
		resolveTokenFn: resolveValidUser,
		changePasswordFn: func(_ context.Context, _ int64, _, _ string) error {
			t.Fatal("service must not be called for invalid payloads")
			return nil
		},
	}
	router := newTestHandler(t, auth, nil).Init()

	body := jsonBody(t, models.ChangePasswordRequest{OldPassword: "OldPassword1", NewPassword: "short"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/api/auth/password", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
