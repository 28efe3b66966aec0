// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/internal/service"
	"github.com/kispace/kispace-server/internal/store"
	"github.com/kispace/kispace-server/internal/utils"
	"github.com/kispace/kispace-server/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Msg("invalid registration payload")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	registered, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			log.Warn().Str("username", req.Username).Msg("username already registered")
			utils.WriteError(w, "username already registered", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Warn().Str("email", req.Email).Msg("email already registered")
			utils.WriteError(w, "email already registered", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, registered.ToProfile(), http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// Missing credentials fail authentication the same way wrong ones do;
	// the login endpoint never reveals why a pair was rejected.
	if err := req.Validate(); err != nil {
		writeInvalidCredentials(w)
		return
	}

	user, err := h.services.AuthService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn().Str("username", req.Username).Msg("login rejected")
			writeInvalidCredentials(w)
			return
		}
		log.Err(err).Msg("unexpected error occurred during user login")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	pair, err := h.services.AuthService.IssueTokenPair(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token pair failed")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

// refresh issues a fresh token pair for the already-authenticated caller.
// The auth middleware accepts both access and refresh tokens, so presenting
// either form works here.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	pair, err := h.services.AuthService.IssueTokenPair(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token pair failed")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	utils.WriteJSON(w, user.ToProfile(), http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Msg("invalid profile payload")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.services.AuthService.UpdateProfile(ctx, user.ID, req)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Warn().Int64("id", user.ID).Msg("email already registered")
			utils.WriteError(w, "email already registered", http.StatusBadRequest)
			return
		}
		log.Err(err).Msg("unexpected error occurred during profile update")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, updated.ToProfile(), http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Msg("invalid password payload")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ChangePassword(ctx, user.ID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongOldPassword) {
			log.Warn().Int64("id", user.ID).Msg("wrong old password")
			utils.WriteError(w, "wrong old password", http.StatusBadRequest)
			return
		}
		log.Err(err).Msg("unexpected error occurred during password change")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password updated successfully"}, http.StatusOK)
}

// writeInvalidCredentials sends the constant-shape 401 used by login.
func writeInvalidCredentials(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	_, _ = utils.WriteError(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
}
