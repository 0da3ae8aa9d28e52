// Package service implements wallet-signature login and session issuance.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/playchain/arcade-backend/pkg/app/errors"
	"github.com/playchain/arcade-backend/pkg/auth"
	"github.com/playchain/arcade-backend/pkg/config"
	"github.com/playchain/arcade-backend/pkg/user"
	"github.com/playchain/arcade-backend/pkg/userstore"
	"github.com/playchain/arcade-backend/pkg/validate"
	"github.com/playchain/arcade-backend/pkg/walletauth"
)

// Store is the narrow data-access interface for the wallet auth service.
// Defined here to keep the service decoupled from userstore implementation details.
type Store interface {
	GetUserByWallet(ctx context.Context, walletAddress string) (*user.User, error)
	CreateUser(ctx context.Context, user *user.User) error
	TouchLogin(ctx context.Context, walletAddress string, at time.Time) error
	SetInstalled(ctx context.Context, walletAddress, telegramID string) error
}

// Service defines the interface for the wallet auth business logic
type Service interface {
	VerifyWallet(ctx context.Context, req *walletauth.VerifyRequest) (*walletauth.VerifyResponse, error)
	ConfirmInstall(ctx context.Context, req *walletauth.ConfirmInstallRequest) (*walletauth.ConfirmInstallResponse, error)
	VerifyToken(tokenString string) (*auth.SessionClaims, error)
}

type authService struct {
	store       Store
	tokens      *auth.TokenManager
	logger      *zap.Logger
	timestampRe *regexp.Regexp
	maxAge      time.Duration
	defaultLang string
	now         func() time.Time
}

// NewService creates a new wallet auth service
func NewService(store Store, tokens *auth.TokenManager, cfg *config.AuthConfig, logger *zap.Logger) Service {
	return &authService{
		store:       store,
		tokens:      tokens,
		logger:      logger,
		timestampRe: regexp.MustCompile(cfg.TimestampPattern),
		maxAge:      cfg.MessageMaxAge,
		defaultLang: cfg.DefaultLanguage,
		now:         time.Now,
	}
}

// VerifyWallet validates the signed login message and issues a session
// token. Checks run in a fixed order so clients get the most specific
// failure: fields, address shape, message freshness, signature, signer
// identity, then account lookup.
func (s *authService) VerifyWallet(ctx context.Context, req *walletauth.VerifyRequest) (*walletauth.VerifyResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err, apperrors.CodeMissingRequiredFields,
			"walletAddress, message and signature are required")
	}

	if !validate.WalletAddress(req.WalletAddress) {
		return nil, apperrors.Validation(nil, apperrors.CodeInvalidWalletAddress,
			"wallet address must be a 0x-prefixed 40-hex-char string")
	}

	issuedAt, err := auth.ExtractTimestamp(req.Message, s.timestampRe)
	if err != nil {
		return nil, apperrors.Conflict(err, apperrors.CodeMessageExpired,
			"message timestamp is missing or malformed")
	}
	age := s.now().Sub(issuedAt)
	if age < 0 || age > s.maxAge {
		return nil, apperrors.Conflict(
			fmt.Errorf("message issued at %s is outside the freshness window", issuedAt),
			apperrors.CodeMessageExpired, "signed message has expired")
	}

	signer, err := auth.RecoverSigner(req.Message, req.Signature)
	if err != nil {
		return nil, apperrors.Conflict(err, apperrors.CodeSignatureFailed,
			"signature verification failed")
	}

	if !strings.EqualFold(signer.Hex(), req.WalletAddress) {
		return nil, apperrors.Conflict(
			fmt.Errorf("recovered signer %s does not match claimed address", signer.Hex()),
			apperrors.CodeAddressMismatch, "signature does not match wallet address")
	}

	wallet := validate.NormalizeWallet(req.WalletAddress)
	now := s.now()

	usr, err := s.store.GetUserByWallet(ctx, wallet)
	isNew := false
	switch {
	case err == nil:
		if err := s.store.TouchLogin(ctx, wallet, now); err != nil {
			return nil, apperrors.Dependency(err, apperrors.CodeDatabaseError, "failed to update login state")
		}
		usr.IsVerified = true
		usr.LastLoginAt = &now
	case errors.Is(err, userstore.ErrUserNotFound):
		lang := req.Language
		if lang == "" {
			lang = s.defaultLang
		}
		usr = user.New(wallet, lang)
		usr.TelegramID = req.TelegramID
		if err := s.store.CreateUser(ctx, usr); err != nil {
			return nil, apperrors.Dependency(err, apperrors.CodeDatabaseError, "failed to create user")
		}
		isNew = true
	default:
		return nil, apperrors.Dependency(err, apperrors.CodeDatabaseError, "failed to look up user")
	}

	tokenString, err := s.tokens.Issue(usr)
	if err != nil {
		return nil, apperrors.General(err)
	}

	return &walletauth.VerifyResponse{
		Success:   true,
		Token:     tokenString,
		User:      walletauth.ToUserInfo(usr),
		IsNewUser: isNew,
	}, nil
}

// ConfirmInstall marks the user's account as having installed the mini-app.
func (s *authService) ConfirmInstall(ctx context.Context, req *walletauth.ConfirmInstallRequest) (*walletauth.ConfirmInstallResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err, apperrors.CodeMissingRequiredFields,
			"walletAddress is required")
	}
	if !validate.WalletAddress(req.WalletAddress) {
		return nil, apperrors.Validation(nil, apperrors.CodeInvalidWalletAddress,
			"wallet address must be a 0x-prefixed 40-hex-char string")
	}

	wallet := validate.NormalizeWallet(req.WalletAddress)
	if err := s.store.SetInstalled(ctx, wallet, req.TelegramID); err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			return nil, apperrors.NotFound(err, apperrors.CodeUserNotFound, "user not found")
		}
		return nil, apperrors.Dependency(err, apperrors.CodeDatabaseError, "failed to confirm install")
	}

	usr, err := s.store.GetUserByWallet(ctx, wallet)
	if err != nil {
		return nil, apperrors.Dependency(err, apperrors.CodeDatabaseError, "failed to reload user")
	}

	return &walletauth.ConfirmInstallResponse{
		Success: true,
		User:    walletauth.ToUserInfo(usr),
	}, nil
}

// VerifyToken validates a session token string and returns its claims.
func (s *authService) VerifyToken(tokenString string) (*auth.SessionClaims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, apperrors.Unauthorized(err, "invalid or expired session token")
	}
	return claims, nil
}
