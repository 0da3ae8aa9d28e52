package user

import "time"

// User represents the domain model for a wallet-authenticated player.
// WalletAddress is always stored lower-case; Score never decreases.
type User struct {
	ID            int64
	WalletAddress string
	TelegramID    string
	IsVerified    bool
	IsInstalled   bool
	Score         int64
	Language      string
	VerifiedAt    *time.Time
	CreatedAt     time.Time
	LastLoginAt   *time.Time
	LastPlayedAt  *time.Time
}

// New creates a freshly verified user with zero score.
func New(walletAddress, language string) *User {
	now := time.Now()
	return &User{
		WalletAddress: walletAddress,
		IsVerified:    true,
		Language:      language,
		VerifiedAt:    &now,
		LastLoginAt:   &now,
	}
}
