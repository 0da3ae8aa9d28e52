// Package walletauth defines the wallet login request/response contracts.
package walletauth

import (
	"time"

	"github.com/playchain/arcade-backend/pkg/user"
)

// VerifyRequest is the wallet login payload. The message carries an
// embedded millisecond timestamp and is signed with personal_sign.
type VerifyRequest struct {
	WalletAddress string `json:"walletAddress" validate:"required"`
	Message       string `json:"message" validate:"required"`
	Signature     string `json:"signature" validate:"required"`
	TelegramID    string `json:"telegramId,omitempty"`
	Language      string `json:"language,omitempty"`
}

// UserInfo is the client-facing projection of a player account.
type UserInfo struct {
	ID            int64      `json:"id"`
	WalletAddress string     `json:"walletAddress"`
	TelegramID    string     `json:"telegramId,omitempty"`
	IsVerified    bool       `json:"isVerified"`
	IsInstalled   bool       `json:"isInstalled"`
	Score         int64      `json:"score"`
	Language      string     `json:"language"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
}

// VerifyResponse is returned on successful wallet verification.
type VerifyResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	User      *UserInfo `json:"user"`
	IsNewUser bool      `json:"isNewUser"`
}

// ConfirmInstallRequest records that the wallet's owner installed the mini-app.
type ConfirmInstallRequest struct {
	WalletAddress string `json:"walletAddress" validate:"required"`
	TelegramID    string `json:"telegramId,omitempty"`
}

// ConfirmInstallResponse acknowledges an install confirmation.
type ConfirmInstallResponse struct {
	Success bool      `json:"success"`
	User    *UserInfo `json:"user"`
}

// ToUserInfo projects a domain user into the client-facing shape.
func ToUserInfo(u *user.User) *UserInfo {
	return &UserInfo{
		ID:            u.ID,
		WalletAddress: u.WalletAddress,
		TelegramID:    u.TelegramID,
		IsVerified:    u.IsVerified,
		IsInstalled:   u.IsInstalled,
		Score:         u.Score,
		Language:      u.Language,
		CreatedAt:     u.CreatedAt,
		LastLoginAt:   u.LastLoginAt,
	}
}
