package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/playchain/arcade-backend/pkg/user"
)

// ErrUserNotFound is returned when a user lookup finds no matching record.
var ErrUserNotFound = errors.New("user not found")

// Store defines the interface for player account persistence.
// Wallet addresses passed to the store are expected to be lower-cased
// by the caller.
type Store interface {
	CreateUser(ctx context.Context, user *user.User) error
	GetUserByWallet(ctx context.Context, walletAddress string) (*user.User, error)
	UserExists(ctx context.Context, walletAddress string) (bool, error)
	// TouchLogin marks the user verified and stamps the login time.
	TouchLogin(ctx context.Context, walletAddress string, at time.Time) error
	// SetInstalled records the mini-app install confirmation.
	SetInstalled(ctx context.Context, walletAddress, telegramID string) error
}
