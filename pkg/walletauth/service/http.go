package service

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/playchain/arcade-backend/pkg/app/errors"
	apphttp "github.com/playchain/arcade-backend/pkg/app/http"
	"github.com/playchain/arcade-backend/pkg/auth"
	"github.com/playchain/arcade-backend/pkg/walletauth"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers HTTP endpoints for the wallet auth service on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Post("/verify-wallet", apphttp.HandleError(h.verifyWallet))
	r.Post("/confirm-install", apphttp.HandleError(h.confirmInstall))
}

func (h *HTTP) verifyWallet(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.Validation(err, apperrors.CodeInvalidInput, "failed to read request")
	}

	var req walletauth.VerifyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.Validation(err, apperrors.CodeInvalidInput, "invalid JSON")
	}

	resp, err := h.service.VerifyWallet(r.Context(), &req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) confirmInstall(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.Validation(err, apperrors.CodeInvalidInput, "failed to read request")
	}

	var req walletauth.ConfirmInstallRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.Validation(err, apperrors.CodeInvalidInput, "invalid JSON")
	}

	resp, err := h.service.ConfirmInstall(r.Context(), &req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

// RequireAuth is chi middleware that verifies the bearer token and puts
// the session claims on the request context.
func RequireAuth(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				apphttp.DefaultErrorHandler(w,
					apperrors.Unauthorized(nil, "missing bearer token"))
				return
			}

			claims, err := service.VerifyToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				apphttp.DefaultErrorHandler(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
