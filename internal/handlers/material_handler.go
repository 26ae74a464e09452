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

// MaterialHandler handles raw-material HTTP requests
type MaterialHandler struct {
	service *service.MaterialService
	log     *slog.Logger
}

// NewMaterialHandler creates a new material handler
func NewMaterialHandler(service *service.MaterialService, log *slog.Logger) *MaterialHandler {
	return &MaterialHandler{
		service: service,
		log:     log,
	}
}

// ListMaterials handles GET /api/material
func (h *MaterialHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.service.ListMaterials(r.Context())
	if err != nil {
		h.log.Error("failed to list materials", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, materials, h.log)
}

// GetMaterial handles GET /api/material/{materialId}
func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	materialID := chi.URLParam(r, "materialId")

	material, err := h.service.GetMaterial(r.Context(), materialID)
	if err != nil {
		if errors.Is(err, repository.ErrMaterialNotFound) {
			WriteError(w, http.StatusNotFound, "Material not found", h.log)
			return
		}
		h.log.Error("failed to get material", "materialId", materialID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, material, h.log)
}

// CreateMaterial handles POST /api/material
func (h *MaterialHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req models.RawMaterial
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	material, err := h.service.CreateMaterial(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.log.Info("material created", "materialId", material.ID, "name", material.Name)
	WriteJSON(w, http.StatusCreated, material, h.log)
}

// UpdateMaterial handles PUT /api/material/{materialId}
func (h *MaterialHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	materialID := chi.URLParam(r, "materialId")

	var req models.RawMaterial
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	req.ID = materialID

	material, err := h.service.UpdateMaterial(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.log.Info("material updated", "materialId", material.ID)
	WriteJSON(w, http.StatusOK, material, h.log)
}

// DeleteMaterial handles DELETE /api/material/{materialId}
func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	materialID := chi.URLParam(r, "materialId")

	if err := h.service.DeleteMaterial(r.Context(), materialID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.log.Info("material deleted", "materialId", materialID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *MaterialHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrMaterialNotFound):
		WriteError(w, http.StatusNotFound, "Material not found", h.log)
	case errors.Is(err, service.ErrMaterialNameRequired),
		errors.Is(err, service.ErrInvalidBulkQuantity),
		errors.Is(err, service.ErrInvalidBulkPrice):
		WriteError(w, http.StatusBadRequest, err.Error(), h.log)
	default:
		h.log.Error("material operation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}
