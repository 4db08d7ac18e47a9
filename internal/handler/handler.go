package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ammarmusa/travel-app-backend/internal/middleware"
	"github.com/ammarmusa/travel-app-backend/internal/port/repository"
	"github.com/ammarmusa/travel-app-backend/internal/usecase"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps the service error taxonomy onto HTTP statuses. Not-found
// deliberately covers ownership mismatches so other users' data cannot be
// probed for.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrDuplicateEmail):
		http.Error(w, "Email already registered", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		http.Error(w, "Incorrect email or password", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrRegistrationClosed):
		http.Error(w, "Maximum user limit reached. Registration is closed.", http.StatusForbidden)
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// userIDFromRequest reads the user id the JWT middleware stored in the context.
func userIDFromRequest(r *http.Request) (string, bool) {
	return middleware.UserIDFromContext(r.Context())
}
