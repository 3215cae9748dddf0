// Package httpx holds the JSON response helpers shared by every handler
// and the mapping from the apperr taxonomy to HTTP status codes.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/freshline/supply-backend/internal/apperr"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a JSON error body with the given status code.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// WriteError maps err to an HTTP status code and writes a JSON error
// response. Wrapped sentinels are matched with errors.Is.
func WriteError(w http.ResponseWriter, err error) {
	JSONError(w, statusOf(err), err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, apperr.ErrInsufficientStock):
		return http.StatusConflict // 409
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, apperr.ErrStateConflict):
		return http.StatusConflict // 409
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden // 403
	case errors.Is(err, apperr.ErrUnavailable):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
