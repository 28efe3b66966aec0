package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/internal/store"
	"github.com/kispace/kispace-server/internal/utils"
	"github.com/kispace/kispace-server/models"
)

// Example resource handlers. They exist to demonstrate the request flow end
// to end and have no access control.

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{Status: "ok"}, http.StatusOK)
}

func (h *Handler) ping(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: "pong"}, http.StatusOK)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Msg("invalid item payload")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.services.ItemService.CreateItem(ctx, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrItemNameAlreadyExists) {
			log.Warn().Str("name", req.Name).Msg("item name already exists")
			utils.WriteError(w, "item name already exists", http.StatusBadRequest)
			return
		}
		log.Err(err).Msg("unexpected error occurred during item creation")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, "invalid item id", http.StatusBadRequest)
		return
	}

	found, err := h.services.ItemService.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			utils.WriteError(w, "item not found", http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during item lookup")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, found, http.StatusOK)
}
