package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/playchain/arcade-backend/pkg/auth"
	"github.com/playchain/arcade-backend/pkg/walletauth"
)

const serviceName = "WalletAuthService"

const (
	logMessageMaxLen     = 50
	signatureDisplaySize = 16
)

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the wallet auth Service.
// It logs method entry/exit, duration, errors, and sanitized request/response data.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// VerifyWallet wraps the service method with logging
func (ls *logService) VerifyWallet(
	ctx context.Context,
	req *walletauth.VerifyRequest,
) (resp *walletauth.VerifyResponse, err error) {
	start := time.Now()

	ls.logger.Info("VerifyWallet started",
		zap.String("service", serviceName),
		zap.String("method", "VerifyWallet"),
		zap.String("wallet_address", req.WalletAddress),
		zap.String("message", truncateString(req.Message, logMessageMaxLen)),
		zap.String("signature", redactSignature(req.Signature)),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("VerifyWallet failed",
				zap.String("service", serviceName),
				zap.String("method", "VerifyWallet"),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("VerifyWallet completed",
				zap.String("service", serviceName),
				zap.String("method", "VerifyWallet"),
				zap.String("wallet_address", resp.User.WalletAddress),
				zap.Bool("is_new_user", resp.IsNewUser),
				zap.Int64("score", resp.User.Score),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.VerifyWallet(ctx, req)
}

// ConfirmInstall wraps the service method with logging
func (ls *logService) ConfirmInstall(
	ctx context.Context,
	req *walletauth.ConfirmInstallRequest,
) (resp *walletauth.ConfirmInstallResponse, err error) {
	start := time.Now()

	ls.logger.Info("ConfirmInstall started",
		zap.String("service", serviceName),
		zap.String("method", "ConfirmInstall"),
		zap.String("wallet_address", req.WalletAddress),
		zap.Bool("has_telegram_id", req.TelegramID != ""),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("ConfirmInstall failed",
				zap.String("service", serviceName),
				zap.String("method", "ConfirmInstall"),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("ConfirmInstall completed",
				zap.String("service", serviceName),
				zap.String("method", "ConfirmInstall"),
				zap.String("wallet_address", resp.User.WalletAddress),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.ConfirmInstall(ctx, req)
}

// VerifyToken wraps the service method with logging. Token contents are
// never logged.
func (ls *logService) VerifyToken(tokenString string) (*auth.SessionClaims, error) {
	claims, err := ls.svc.VerifyToken(tokenString)
	if err != nil {
		ls.logger.Warn("VerifyToken failed",
			zap.String("service", serviceName),
			zap.String("method", "VerifyToken"),
			zap.Error(err),
		)
	}
	return claims, err
}

// truncateString shortens long strings for log output
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// redactSignature keeps only the signature prefix in logs
func redactSignature(sig string) string {
	if len(sig) <= signatureDisplaySize {
		return sig
	}
	return sig[:signatureDisplaySize] + "..."
}
