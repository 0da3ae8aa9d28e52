package service

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/playchain/arcade-backend/pkg/app/errors"
	apphttp "github.com/playchain/arcade-backend/pkg/app/http"
	"github.com/playchain/arcade-backend/pkg/ranking"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers HTTP endpoints for the leaderboard service on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/", apphttp.HandleError(h.getRanking))
	r.Get("/top", apphttp.HandleError(h.getTop))
	r.Get("/user/{walletAddress}", apphttp.HandleError(h.getUser))
	r.Post("/invalidate", apphttp.HandleError(h.invalidate))
}

func (h *HTTP) getRanking(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	p := Params{
		GameType:     q.Get("gameType"),
		Language:     q.Get("language"),
		VerifiedOnly: queryVerifiedOnly(q.Get("verifiedOnly")),
		Limit:        queryInt(q.Get("limit")),
		Offset:       queryInt(q.Get("offset")),
	}

	resp, err := h.service.GetRanking(r.Context(), p)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) getTop(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	p := TopParams{
		Count:        queryInt(q.Get("count")),
		Language:     q.Get("language"),
		VerifiedOnly: queryVerifiedOnly(q.Get("verifiedOnly")),
	}

	resp, err := h.service.GetTopRanking(r.Context(), p)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) getUser(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.GetUserRanking(r.Context(), chi.URLParam(r, "walletAddress"))
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) invalidate(w http.ResponseWriter, r *http.Request) error {
	var req ranking.InvalidateRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.Validation(err, apperrors.CodeInvalidInput, "failed to read request")
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return apperrors.Validation(err, apperrors.CodeInvalidInput, "invalid JSON")
		}
	}

	removed := h.service.InvalidateCache(req.Patterns...)
	apphttp.WriteJSON(w, http.StatusOK, &ranking.InvalidateResponse{
		Success: true,
		Removed: removed,
	})
	return nil
}

// queryInt parses a query parameter, treating absent or malformed
// values as zero so the service applies its defaults.
func queryInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// queryVerifiedOnly parses the verifiedOnly parameter. The board ranks
// verified users unless the client opts out explicitly, so anything but
// "false" (including an absent parameter) means true.
func queryVerifiedOnly(s string) bool {
	return s != "false"
}
