package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pasteleria/admin-backend/internal/repository"
	"github.com/pasteleria/admin-backend/internal/service"
	"github.com/pasteleria/admin-backend/internal/tray"
)

// TrayHandler handles confirmed-tray CRUD and the tray-builder session flow
type TrayHandler struct {
	service *service.TrayService
	log     *slog.Logger
}

// NewTrayHandler creates a new tray handler
func NewTrayHandler(service *service.TrayService, log *slog.Logger) *TrayHandler {
	return &TrayHandler{
		service: service,
		log:     log,
	}
}

// ListTrays handles GET /api/tray
func (h *TrayHandler) ListTrays(w http.ResponseWriter, r *http.Request) {
	trays, err := h.service.ListTrays(r.Context())
	if err != nil {
		h.log.Error("failed to list trays", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, trays, h.log)
}

// GetTray handles GET /api/tray/{trayId}
func (h *TrayHandler) GetTray(w http.ResponseWriter, r *http.Request) {
	trayID := chi.URLParam(r, "trayId")

	t, err := h.service.GetTray(r.Context(), trayID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, t, h.log)
}

// DeleteTray handles DELETE /api/tray/{trayId}
func (h *TrayHandler) DeleteTray(w http.ResponseWriter, r *http.Request) {
	trayID := chi.URLParam(r, "trayId")

	if err := h.service.DeleteTray(r.Context(), trayID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.log.Info("tray deleted", "trayId", trayID)
	w.WriteHeader(http.StatusNoContent)
}

// StartSession handles POST /api/tray/session
// Without a body (or with an empty trayId) it opens a blank session;
// with a trayId it opens an edit session pre-loaded from that tray.
func (h *TrayHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrayID string `json:"trayId,omitempty"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
			return
		}
	}

	if req.TrayID == "" {
		state := h.service.StartSession(r.Context())
		h.log.Info("tray session started", "sessionId", state.SessionID)
		WriteJSON(w, http.StatusCreated, state, h.log)
		return
	}

	state, err := h.service.StartEditSession(r.Context(), req.TrayID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.log.Info("tray edit session started", "sessionId", state.SessionID, "trayId", req.TrayID)
	WriteJSON(w, http.StatusCreated, state, h.log)
}

// GetSession handles GET /api/tray/session/{sessionId}
func (h *TrayHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	state, err := h.service.Session(sessionID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, state, h.log)
}

// UpsertLine handles PUT /api/tray/session/{sessionId}/line
func (h *TrayHandler) UpsertLine(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var req struct {
		CakeID   string `json:"cakeId"`
		Portions int    `json:"portions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	state, err := h.service.AddOrUpdateLine(r.Context(), sessionID, req.CakeID, req.Portions)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, state, h.log)
}

// BeginEditLine handles POST /api/tray/session/{sessionId}/line/{cakeId}/edit
// Responds with the line's current portions so the UI can pre-fill the
// input. A cake without a line answers 404 and leaves the cursor alone.
func (h *TrayHandler) BeginEditLine(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	cakeID := chi.URLParam(r, "cakeId")

	portions, found, err := h.service.BeginEdit(sessionID, cakeID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !found {
		WriteError(w, http.StatusNotFound, "Cake has no line in this tray", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"cakeId":   cakeID,
		"portions": portions,
	}, h.log)
}

// RemoveLine handles DELETE /api/tray/session/{sessionId}/line/{cakeId}
func (h *TrayHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	cakeID := chi.URLParam(r, "cakeId")

	state, err := h.service.RemoveLine(sessionID, cakeID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, state, h.log)
}

// ResetSession handles POST /api/tray/session/{sessionId}/reset
func (h *TrayHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	state, err := h.service.Reset(sessionID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, state, h.log)
}

// ConfirmSession handles POST /api/tray/session/{sessionId}/confirm
func (h *TrayHandler) ConfirmSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var req struct {
		Name      string           `json:"name"`
		SizeLabel string           `json:"sizeLabel"`
		Price     *decimal.Decimal `json:"price,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	confirmed, err := h.service.Confirm(r.Context(), sessionID, req.Name, req.SizeLabel, req.Price)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.log.Info("tray confirmed", "trayId", confirmed.ID, "name", confirmed.Name, "lines", len(confirmed.Lines))
	WriteJSON(w, http.StatusCreated, confirmed, h.log)
}

// AbandonSession handles DELETE /api/tray/session/{sessionId}
func (h *TrayHandler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	if err := h.service.Abandon(sessionID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.log.Info("tray session abandoned", "sessionId", sessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *TrayHandler) writeServiceError(w http.ResponseWriter, err error) {
	var capErr *tray.CapacityError

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		WriteError(w, http.StatusNotFound, "Tray session not found", h.log)
	case errors.Is(err, repository.ErrTrayNotFound):
		WriteError(w, http.StatusNotFound, "Tray not found", h.log)
	case errors.Is(err, tray.ErrDuplicateCake):
		WriteError(w, http.StatusConflict, err.Error(), h.log)
	case errors.As(err, &capErr):
		WriteError(w, http.StatusBadRequest, capErr.Error(), h.log)
	case errors.Is(err, tray.ErrInvalidPortions),
		errors.Is(err, tray.ErrEmptyName),
		errors.Is(err, tray.ErrEmptySize),
		errors.Is(err, tray.ErrNoLines),
		errors.Is(err, tray.ErrInvalidSizeLabel):
		WriteError(w, http.StatusBadRequest, err.Error(), h.log)
	default:
		h.log.Error("tray operation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}
