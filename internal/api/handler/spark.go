// internal/api/handler/spark.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sparkfund/internal/api/types"
	"sparkfund/internal/domain"
	"sparkfund/internal/service"
	"sparkfund/internal/util"
)

// SparkHandler handles HTTP requests related to spark operations.
type SparkHandler struct {
	service service.SparkService
	logger  *slog.Logger
}

// NewSparkHandler creates a new SparkHandler.
func NewSparkHandler(svc service.SparkService, logger *slog.Logger) *SparkHandler {
	return &SparkHandler{
		service: svc,
		logger:  logger,
	}
}

// ManageSparkRequest represents the request body for creating or updating a spark.
type ManageSparkRequest struct {
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	GoalAmount       decimal.Decimal  `json:"goal_amount"`
	InitialAmount    *decimal.Decimal `json:"initial_amount,omitempty"`
	Category         string           `json:"category"`
	FirstPictureURL  string           `json:"first_picture_url"`
	SecondPictureURL *string          `json:"second_picture_url,omitempty"`
	ThirdPictureURL  *string          `json:"third_picture_url,omitempty"`
}

func (req ManageSparkRequest) toInput() (service.ManageSparkInput, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return service.ManageSparkInput{}, err
	}
	return service.ManageSparkInput{
		Title:            req.Title,
		Description:      req.Description,
		GoalAmount:       req.GoalAmount,
		InitialAmount:    req.InitialAmount,
		Category:         category,
		FirstPictureURL:  req.FirstPictureURL,
		SecondPictureURL: req.SecondPictureURL,
		ThirdPictureURL:  req.ThirdPictureURL,
	}, nil
}

func parseCategory(raw string) (domain.SparkCategory, error) {
	switch domain.SparkCategory(raw) {
	case domain.SparkCategoryEducation, domain.SparkCategoryMedical, domain.SparkCategoryCharity,
		domain.SparkCategorySport, domain.SparkCategoryAnimals, domain.SparkCategoryOther:
		return domain.SparkCategory(raw), nil
	}
	return "", util.ErrInvalidInput
}

func parseStatus(raw string) (domain.SparkStatus, error) {
	switch domain.SparkStatus(raw) {
	case domain.SparkStatusActive, domain.SparkStatusCompleted, domain.SparkStatusCancelled:
		return domain.SparkStatus(raw), nil
	}
	return "", util.ErrInvalidInput
}

func parseOwnership(raw string) (domain.SparkOwnership, error) {
	switch domain.SparkOwnership(raw) {
	case domain.SparkOwnershipMine, domain.SparkOwnershipDonatedTo:
		return domain.SparkOwnership(raw), nil
	}
	return domain.SparkOwnershipAny, util.ErrInvalidInput
}

// Create handles the create-spark request.
// POST /sparks
func (h *SparkHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	var req ManageSparkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	spark, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, spark)
}

// Update handles the update-spark request.
// PUT /sparks/{sparkID}
func (h *SparkHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req ManageSparkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	spark, err := h.service.Update(r.Context(), sparkID, userID, input)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, spark)
}

// Get handles the get-spark request.
// GET /sparks/{sparkID}
func (h *SparkHandler) Get(w http.ResponseWriter, r *http.Request) {
	sparkID, err := uuid.Parse(chi.URLParam(r, "sparkID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	spark, err := h.service.Get(r.Context(), sparkID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, spark)
}

// List handles the spark listing request. Query parameters status, category
// and ownership are each optional; an empty query lists all active sparks.
// GET /sparks?status=&category=&ownership=
func (h *SparkHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.SparkFilter
	var viewerID uuid.UUID

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := parseStatus(raw)
		if err != nil {
			respondWithError(w, h.logger, err)
			return
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		category, err := parseCategory(raw)
		if err != nil {
			respondWithError(w, h.logger, err)
			return
		}
		filter.Category = &category
	}
	if raw := r.URL.Query().Get("ownership"); raw != "" {
		ownership, err := parseOwnership(raw)
		if err != nil {
			respondWithError(w, h.logger, err)
			return
		}
		filter.Ownership = ownership

		viewerID, err = actingUserID(r)
		if err != nil {
			respondWithError(w, h.logger, err)
			return
		}
	}

	sparks, err := h.service.List(r.Context(), viewerID, filter)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.NewListResponse(sparks))
}

// Cancel handles the cancel-spark request. Every donation is refunded to its
// origin wallet and the spark becomes CANCELLED.
// POST /sparks/{sparkID}/cancel
func (h *SparkHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sparkID, err := uuid.Parse(chi.URLParam(r, "sparkID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if err := h.service.CancelAndRefund(r.Context(), sparkID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Spark cancelled and donations refunded"})
}
