package auth

import "context"

type claimsKey struct{}

// WithClaims returns a context carrying verified session claims.
func WithClaims(ctx context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFrom extracts verified session claims from the context.
func ClaimsFrom(ctx context.Context) (*SessionClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*SessionClaims)
	return claims, ok
}
