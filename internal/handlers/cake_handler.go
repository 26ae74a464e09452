package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pasteleria/admin-backend/internal/models"
	"github.com/pasteleria/admin-backend/internal/repository"
	"github.com/pasteleria/admin-backend/internal/service"
)

// CakeHandler handles cake and recipe HTTP requests
type CakeHandler struct {
	service *service.CakeService
	log     *slog.Logger
}

// NewCakeHandler creates a new cake handler
func NewCakeHandler(service *service.CakeService, log *slog.Logger) *CakeHandler {
	return &CakeHandler{
		service: service,
		log:     log,
	}
}

// ListCakes handles GET /api/cake
func (h *CakeHandler) ListCakes(w http.ResponseWriter, r *http.Request) {
	cakes, err := h.service.ListCakes(r.Context())
	if err != nil {
		h.log.Error("failed to list cakes", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, cakes, h.log)
}

// GetCake handles GET /api/cake/{cakeId}
func (h *CakeHandler) GetCake(w http.ResponseWriter, r *http.Request) {
	cakeID := chi.URLParam(r, "cakeId")

	cake, err := h.service.GetCake(r.Context(), cakeID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, cake, h.log)
}

// GetCakeCost handles GET /api/cake/{cakeId}/cost
// A cake without a recipe (or without a declared yield) answers with
// "perPortion": null, which the UI renders as unavailable; that is not
// an error and not the same as a zero cost.
func (h *CakeHandler) GetCakeCost(w http.ResponseWriter, r *http.Request) {
	cakeID := chi.URLParam(r, "cakeId")

	summary, err := h.service.CostSummary(r.Context(), cakeID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, summary, h.log)
}

// CreateCake handles POST /api/cake
func (h *CakeHandler) CreateCake(w http.ResponseWriter, r *http.Request) {
	var req models.Cake
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	cake, err := h.service.CreateCake(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.log.Info("cake created", "cakeId", cake.ID, "name", cake.Name)
	WriteJSON(w, http.StatusCreated, cake, h.log)
}

// UpdateCake handles PUT /api/cake/{cakeId}
func (h *CakeHandler) UpdateCake(w http.ResponseWriter, r *http.Request) {
	cakeID := chi.URLParam(r, "cakeId")

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	cake, err := h.service.UpdateCake(r.Context(), cakeID, req.Name)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.log.Info("cake updated", "cakeId", cake.ID)
	WriteJSON(w, http.StatusOK, cake, h.log)
}

// SetRecipe handles PUT /api/cake/{cakeId}/recipe
func (h *CakeHandler) SetRecipe(w http.ResponseWriter, r *http.Request) {
	cakeID := chi.URLParam(r, "cakeId")

	var req models.Recipe
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	cake, err := h.service.SetRecipe(r.Context(), cakeID, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.log.Info("recipe updated", "cakeId", cake.ID, "yieldPortions", req.YieldPortions)
	WriteJSON(w, http.StatusOK, cake, h.log)
}

// DeleteCake handles DELETE /api/cake/{cakeId}
func (h *CakeHandler) DeleteCake(w http.ResponseWriter, r *http.Request) {
	cakeID := chi.URLParam(r, "cakeId")

	if err := h.service.DeleteCake(r.Context(), cakeID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.log.Info("cake deleted", "cakeId", cakeID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CakeHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrCakeNotFound):
		WriteError(w, http.StatusNotFound, "Cake not found", h.log)
	case errors.Is(err, service.ErrCakeNameRequired),
		errors.Is(err, service.ErrInvalidYield),
		errors.Is(err, service.ErrIngredientMaterial):
		WriteError(w, http.StatusBadRequest, err.Error(), h.log)
	default:
		h.log.Error("cake operation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}
