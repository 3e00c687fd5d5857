package guard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryGuardExpiresAndReleases(t *testing.T) {
	g := NewMemoryGuard()
	current := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return current }
	ctx := context.Background()

	ok, err := g.Acquire(ctx, "risk:1", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = g.Acquire(ctx, "risk:1", time.Hour)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = g.Acquire(ctx, "risk:2", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	current = current.Add(time.Hour)
	ok, err = g.Acquire(ctx, "risk:1", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, g.Release(ctx, "risk:1"))
	ok, err = g.Acquire(ctx, "risk:1", 0)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryGuardEvictsExpiredKeys(t *testing.T) {
	g := NewMemoryGuard()
	current := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return current }
	ctx := context.Background()

	for _, key := range []string{"hydration:hot-weather:1:2024-07-10", "hydration:hot-weather:2:2024-07-10"} {
		ok, err := g.Acquire(ctx, key, 36*time.Hour)
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := g.Acquire(ctx, "risk:check:1", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, g.held, 3)

	current = current.Add(2 * time.Hour)
	ok, err = g.Acquire(ctx, "risk:check:2", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, g.held, 3)
	require.NotContains(t, g.held, "risk:check:1")

	current = current.Add(48 * time.Hour)
	ok, err = g.Acquire(ctx, "risk:check:3", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, g.held, 1)
	require.Contains(t, g.held, "risk:check:3")
}

func TestTTLSeconds(t *testing.T) {
	require.Equal(t, int64(60), ttlSeconds(0))
	require.Equal(t, int64(1), ttlSeconds(200*time.Millisecond))
	require.Equal(t, int64(21600), ttlSeconds(6*time.Hour))
}
