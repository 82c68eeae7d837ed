package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenBlacklist_RevocaHastaExpirar(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewMemoryTokenBlacklist()
	b.now = func() time.Time { return now }
	ctx := context.Background()

	revoked, err := b.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, "jti-1", 10*time.Minute))
	revoked, _ = b.IsRevoked(ctx, "jti-1")
	assert.True(t, revoked)

	now = now.Add(11 * time.Minute)
	revoked, _ = b.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked, "pasado el TTL deja de estar revocado")

	require.NoError(t, b.Revoke(ctx, "jti-2", time.Minute))
	assert.Len(t, b.entries, 1, "los vencidos se purgan al revocar")
}
