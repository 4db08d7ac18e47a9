package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ammarmusa/travel-app-backend/internal/entity"
	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/ammarmusa/travel-app-backend/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WishlistHandler struct {
	wishlists *usecase.WishlistUseCase
	logger    *logger.Logger
}

func NewWishlistHandler(wishlists *usecase.WishlistUseCase, log *logger.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlists: wishlists,
		logger:    log.Named("WishlistHandler"),
	}
}

type createWishlistRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Status        string   `json:"status"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	GoogleMapsURL string   `json:"google_maps_url"`
}

func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "User ID not found in token", http.StatusUnauthorized)
		return
	}

	var req createWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body for Create", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	wishlist, err := h.wishlists.Create(r.Context(), userID, usecase.CreateWishlistInput{
		Name:          req.Name,
		Description:   req.Description,
		Status:        entity.WishlistStatus(req.Status),
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		GoogleMapsURL: req.GoogleMapsURL,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, wishlist)
	h.logger.Info("Wishlist created", zap.String("wishlist_id", wishlist.ID), zap.String("user_id", userID))
}

// ListAll returns wishlists from all users; the collection is a shared
// "explore" list.
func (h *WishlistHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	wishlists, err := h.wishlists.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wishlists)
}

func (h *WishlistHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "User ID not found in token", http.StatusUnauthorized)
		return
	}

	wishlists, err := h.wishlists.ListMine(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wishlists)
}

func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	wishlistID := chi.URLParam(r, "wishlistID")

	wishlist, err := h.wishlists.Get(r.Context(), wishlistID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wishlist)
}

type updateWishlistRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Status        *string  `json:"status"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	GoogleMapsURL *string  `json:"google_maps_url"`
}

func (h *WishlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "User ID not found in token", http.StatusUnauthorized)
		return
	}
	wishlistID := chi.URLParam(r, "wishlistID")

	var req updateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body for Update", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	input := usecase.UpdateWishlistInput{
		Name:          req.Name,
		Description:   req.Description,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		GoogleMapsURL: req.GoogleMapsURL,
	}
	if req.Status != nil {
		status := entity.WishlistStatus(*req.Status)
		input.Status = &status
	}

	wishlist, err := h.wishlists.Update(r.Context(), wishlistID, userID, input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wishlist)
	h.logger.Info("Wishlist updated", zap.String("wishlist_id", wishlistID), zap.String("user_id", userID))
}

func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "User ID not found in token", http.StatusUnauthorized)
		return
	}
	wishlistID := chi.URLParam(r, "wishlistID")

	if err := h.wishlists.Delete(r.Context(), wishlistID, userID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.logger.Info("Wishlist deleted", zap.String("wishlist_id", wishlistID), zap.String("user_id", userID))
}
