// Package api wires the HTTP API server from configuration.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	airdropsvc "github.com/playchain/arcade-backend/pkg/airdrop/service"
	"github.com/playchain/arcade-backend/pkg/airdropstore"
	apphttp "github.com/playchain/arcade-backend/pkg/app/http"
	"github.com/playchain/arcade-backend/pkg/auth"
	"github.com/playchain/arcade-backend/pkg/config"
	"github.com/playchain/arcade-backend/pkg/gamestore"
	"github.com/playchain/arcade-backend/pkg/pgutil"
	rankingsvc "github.com/playchain/arcade-backend/pkg/ranking/service"
	"github.com/playchain/arcade-backend/pkg/rankstore"
	submissionsvc "github.com/playchain/arcade-backend/pkg/submission/service"
	"github.com/playchain/arcade-backend/pkg/token"
	"github.com/playchain/arcade-backend/pkg/userstore"
	walletauthsvc "github.com/playchain/arcade-backend/pkg/walletauth/service"
)

// Server is the API server runner.
type Server struct {
	cfg *config.Config
}

// NewServer creates an API server runner from loaded configuration.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run starts the API server and blocks until shutdown.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(s.cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting arcade API server",
		zap.String("host", s.cfg.Server.Host),
		zap.Int("port", s.cfg.Server.Port))

	db, err := pgutil.ConnectDB(&s.cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("Connected to database",
		zap.String("host", s.cfg.Database.Host),
		zap.String("database", s.cfg.Database.Database))

	users := userstore.NewStore(db)
	games := gamestore.NewStore(db)
	ranks := rankstore.NewStore(db)
	queue := airdropstore.NewStore(db)

	tokens := auth.NewTokenManager(
		s.cfg.Auth.JWTSecret,
		s.cfg.Auth.JWTIssuer,
		s.cfg.Auth.JWTAudience,
		s.cfg.Auth.TokenTTL,
	)

	sender, err := token.NewERC20Sender(&s.cfg.Airdrop)
	if err != nil {
		return fmt.Errorf("failed to setup token sender: %w", err)
	}
	if s.cfg.Airdrop.RPCURL == "" {
		logger.Warn("airdrop RPC endpoint not configured; execution is disabled")
	}

	authService := walletauthsvc.NewLog(
		walletauthsvc.NewService(users, tokens, &s.cfg.Auth, logger),
		logger,
	)
	rankingService := rankingsvc.NewService(ranks, &s.cfg.Ranking, logger)
	submitService := submissionsvc.NewService(users, games, rankingService, &s.cfg.Game, logger)
	airdropService := airdropsvc.NewService(queue, users, sender, &s.cfg.Airdrop, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		apphttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			walletauthsvc.RegisterRoutes(r, authService, logger)
		})
		r.Route("/games", func(r chi.Router) {
			r.Use(walletauthsvc.RequireAuth(authService))
			submissionsvc.RegisterRoutes(r, submitService, logger)
		})
		r.Route("/ranking", func(r chi.Router) {
			rankingsvc.RegisterRoutes(r, rankingService, logger)
		})
		r.Route("/airdrop", func(r chi.Router) {
			airdropsvc.RegisterRoutes(r, airdropService, logger)
		})
	})

	return apphttp.ServeAndWait(ctx, r, logger, &s.cfg.Server)
}
