package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/playchain/arcade-backend/pkg/user"
)

// SessionClaims are the claims embedded in an issued session token.
type SessionClaims struct {
	UserID        int64  `json:"uid"`
	WalletAddress string `json:"wallet"`
	TelegramID    string `json:"tg,omitempty"`
	Verified      bool   `json:"verified"`
	Score         int64  `json:"score"`
	Language      string `json:"lang"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 session tokens with a configured
// issuer, audience and lifetime.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenManager creates a token manager.
func NewTokenManager(secret, issuer, audience string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

// Issue signs a session token for the given user.
func (m *TokenManager) Issue(u *user.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:        u.ID,
		WalletAddress: u.WalletAddress,
		TelegramID:    u.TelegramID,
		Verified:      u.IsVerified,
		Score:         u.Score,
		Language:      u.Language,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			Subject:   u.WalletAddress,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature, issuer and audience and returns the decoded
// claims. It never panics past the boundary; any failure is an error.
func (m *TokenManager) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
