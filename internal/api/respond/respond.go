// Package respond centralizes JSON response writing and the mapping from
// domain errors to HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/bee-edu/askbee/internal/core"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// DomainError maps a service-layer error onto the HTTP surface. Anything
// outside the taxonomy is logged and reported as a generic server error.
func DomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrConflict):
		Error(w, http.StatusBadRequest, "email already registered")
	case errors.Is(err, core.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, core.ErrInvalidCredentials.Error())
	case errors.Is(err, core.ErrInvalidToken):
		Error(w, http.StatusUnauthorized, core.ErrInvalidToken.Error())
	case errors.Is(err, core.ErrUnavailable):
		Error(w, http.StatusServiceUnavailable, "database error")
	case errors.Is(err, core.ErrDelegate):
		Error(w, http.StatusInternalServerError, err.Error())
	default:
		log.Printf("unexpected error: %v", err)
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
