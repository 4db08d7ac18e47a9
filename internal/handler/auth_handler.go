package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/ammarmusa/travel-app-backend/internal/usecase"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth   *usecase.AuthUseCase
	logger *logger.Logger
}

func NewAuthHandler(auth *usecase.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: log.Named("AuthHandler"),
	}
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body for Register", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.auth.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Failed to register user", zap.String("email", req.Email), zap.Error(err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
	h.logger.Info("User registered", zap.String("user_id", user.ID))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body for Login", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "User ID not found in token", http.StatusUnauthorized)
		return
	}

	user, err := h.auth.Profile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
