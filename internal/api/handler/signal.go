// internal/api/handler/signal.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sparkfund/internal/api/types"
	"sparkfund/internal/service"
	"sparkfund/internal/util"
)

// SignalHandler handles HTTP requests related to support signals.
type SignalHandler struct {
	service service.SignalService
	logger  *slog.Logger
}

// NewSignalHandler creates a new SignalHandler.
func NewSignalHandler(svc service.SignalService, logger *slog.Logger) *SignalHandler {
	return &SignalHandler{
		service: svc,
		logger:  logger,
	}
}

// SignalRequest represents the request body for opening a signal.
type SignalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Open handles the open-signal request.
// POST /signals
func (h *SignalHandler) Open(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	var req SignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	signal, err := h.service.Open(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, signal)
}

// Get handles the get-signal request.
// GET /signals/{signalID}
func (h *SignalHandler) Get(w http.ResponseWriter, r *http.Request) {
	signalID, err := uuid.Parse(chi.URLParam(r, "signalID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	signal, err := h.service.Get(r.Context(), signalID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, signal)
}

// ListOpen handles the admin listing of open signals.
// GET /signals/open
func (h *SignalHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	signals, err := h.service.ListOpen(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.NewListResponse(signals))
}

// ListMine handles the listing of the acting user's signals.
// GET /me/signals
func (h *SignalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	signals, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.NewListResponse(signals))
}

// ResolveRequest represents the request body for resolving a signal.
type ResolveRequest struct {
	AdminResponse string `json:"admin_response"`
}

// Resolve handles the admin resolve-signal request.
// POST /signals/{signalID}/resolve
func (h *SignalHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	signalID, err := uuid.Parse(chi.URLParam(r, "signalID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if err := h.service.Resolve(r.Context(), signalID, req.AdminResponse); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Signal resolved"})
}
