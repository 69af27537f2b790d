// internal/api/handler/donation.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sparkfund/internal/service"
	"sparkfund/internal/util"
)

// DonationHandler handles HTTP requests related to donations.
type DonationHandler struct {
	service service.DonationService
	logger  *slog.Logger
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(svc service.DonationService, logger *slog.Logger) *DonationHandler {
	return &DonationHandler{
		service: svc,
		logger:  logger,
	}
}

// DonationRequest represents the request body for a donation.
type DonationRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Message *string         `json:"message,omitempty"`
}

// Donate handles the donation request.
// POST /sparks/{sparkID}/donations
func (h *DonationHandler) Donate(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	sparkID, err := uuid.Parse(chi.URLParam(r, "sparkID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var req DonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	donation, err := h.service.Record(r.Context(), userID, sparkID, req.Amount, req.Message)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, donation)
}

// Stats handles the platform-wide donation statistics request.
// GET /stats/donations
func (h *DonationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.TotalDonationsInfo(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, info)
}
