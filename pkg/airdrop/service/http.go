package service

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/playchain/arcade-backend/pkg/airdrop"
	apperrors "github.com/playchain/arcade-backend/pkg/app/errors"
	apphttp "github.com/playchain/arcade-backend/pkg/app/http"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers HTTP endpoints for the airdrop service on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Post("/queue", apphttp.HandleError(h.queue))
	r.Get("/queue", apphttp.HandleError(h.listQueue))
	r.Post("/execute", apphttp.HandleError(h.execute))
	r.Get("/stats", apphttp.HandleError(h.stats))
}

func (h *HTTP) queue(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.Validation(err, apperrors.CodeInvalidInput, "failed to read request")
	}

	var req airdrop.QueueRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.Validation(err, apperrors.CodeInvalidInput, "invalid JSON")
	}

	resp, err := h.service.AddToQueue(r.Context(), &req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) execute(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.Validation(err, apperrors.CodeInvalidInput, "failed to read request")
	}

	var req airdrop.ExecuteRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return apperrors.Validation(err, apperrors.CodeInvalidInput, "invalid JSON")
		}
	}

	resp, err := h.service.ExecuteAirdrop(r.Context(), &req)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) listQueue(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	var status *airdrop.Status
	if raw := q.Get("status"); raw != "" {
		st := airdrop.Status(raw)
		if st != airdrop.StatusPending && st != airdrop.StatusSuccess && st != airdrop.StatusFailed {
			return apperrors.Validation(nil, apperrors.CodeInvalidInput, "unknown status")
		}
		status = &st
	}

	resp, err := h.service.GetQueue(r.Context(), status, queryInt(q.Get("limit")), queryInt(q.Get("offset")))
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) stats(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.GetStats(r.Context())
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func queryInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
