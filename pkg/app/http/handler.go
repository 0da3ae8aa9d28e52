// Package http provides HTTP utilities including chi-compatible error handling
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/playchain/arcade-backend/pkg/app/errors"
)

// HandlerFunc defines a function that returns an error for clean error handling
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// HandleError wraps an error-returning HandlerFunc into a standard http.HandlerFunc
// This allows using clean error-returning handlers with any router (chi, http.ServeMux, etc.)
//
// Usage with chi:
//
//	r.Post("/verify-wallet", http.HandleError(handler.verifyWallet))
func HandleError(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			DefaultErrorHandler(w, err)
		}
	}
}

// ErrorResponse is the uniform error envelope for every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	ErrCode string `json:"error"`
	Message string `json:"message"`
}

// DefaultErrorHandler handles errors returned from HTTP handlers
func DefaultErrorHandler(w http.ResponseWriter, err error) {
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		WriteJSON(w, svcErr.StatusCode(), &ErrorResponse{
			Success: false,
			ErrCode: string(svcErr.Code),
			Message: svcErr.Message,
		})
		return
	}

	// Unknown errors never leak their internals past the boundary.
	WriteJSON(w, http.StatusInternalServerError, &ErrorResponse{
		Success: false,
		ErrCode: string(apperrors.CodeInternalError),
		Message: "Unexpected Service Error",
	})
}

// WriteJSON writes data as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
