package auth

import (
	"context"
	"time"
)

// TokenBlacklist lista de tokens revocados (por jti) hasta su expiración natural.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
