package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/ammarmusa/travel-app-backend/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	activities *usecase.ActivityUseCase
	logger     *logger.Logger
}

func NewActivityHandler(activities *usecase.ActivityUseCase, log *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		activities: activities,
		logger:     log.Named("ActivityHandler"),
	}
}

type addActivityRequest struct {
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	IsCompleted bool    `json:"is_completed"`
}

func (h *ActivityHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "User ID not found in token", http.StatusUnauthorized)
		return
	}
	wishlistID := chi.URLParam(r, "wishlistID")

	var req addActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body for Add activity", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	wishlist, err := h.activities.Add(r.Context(), wishlistID, userID, usecase.AddActivityInput{
		Name:        req.Name,
		Cost:        req.Cost,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wishlist)
	h.logger.Info("Activity added", zap.String("wishlist_id", wishlistID), zap.String("user_id", userID))
}

type updateActivityRequest struct {
	Name        *string  `json:"name"`
	Cost        *float64 `json:"cost"`
	IsCompleted *bool    `json:"is_completed"`
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "User ID not found in token", http.StatusUnauthorized)
		return
	}
	wishlistID := chi.URLParam(r, "wishlistID")
	activityID := chi.URLParam(r, "activityID")

	var req updateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body for Update activity", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	wishlist, err := h.activities.Update(r.Context(), wishlistID, userID, activityID, usecase.UpdateActivityInput{
		Name:        req.Name,
		Cost:        req.Cost,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wishlist)
}

func (h *ActivityHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "User ID not found in token", http.StatusUnauthorized)
		return
	}
	wishlistID := chi.URLParam(r, "wishlistID")
	activityID := chi.URLParam(r, "activityID")

	wishlist, err := h.activities.Remove(r.Context(), wishlistID, userID, activityID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wishlist)
	h.logger.Info("Activity removed", zap.String("wishlist_id", wishlistID), zap.String("activity_id", activityID))
}
