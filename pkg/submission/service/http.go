package service

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/playchain/arcade-backend/pkg/app/errors"
	apphttp "github.com/playchain/arcade-backend/pkg/app/http"
	"github.com/playchain/arcade-backend/pkg/auth"
	"github.com/playchain/arcade-backend/pkg/submission"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers HTTP endpoints for the submission service on
// the given chi router. Routes require an authenticated session.
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Post("/submit", apphttp.HandleError(h.submit))
}

func (h *HTTP) submit(w http.ResponseWriter, r *http.Request) error {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		return apperrors.Unauthorized(nil, "authentication required")
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.Validation(err, apperrors.CodeInvalidInput, "failed to read request")
	}

	var req submission.SubmitRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.Validation(err, apperrors.CodeInvalidInput, "invalid JSON")
	}

	resp, err := h.service.SubmitGame(r.Context(), claims.WalletAddress, &req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}
