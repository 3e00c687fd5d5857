package userrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/moodsip/internal/domain/auth"
)

func TestMemoryRepositoryLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, auth.User{Email: "a@example.com", Nickname: "Ann", Settings: auth.Settings{BaseGoal: 8, City: "London", Timezone: "UTC"}})
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ID)
	require.False(t, first.CreatedAt.IsZero())

	_, err = repo.Create(ctx, auth.User{Email: "a@example.com"})
	require.ErrorIs(t, err, auth.ErrEmailExists)

	second, err := repo.Create(ctx, auth.User{Email: "b@example.com", Nickname: "Bo"})
	require.NoError(t, err)

	found, ok, err := repo.GetByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, second.ID, found.ID)

	updated, err := repo.UpdateSettings(ctx, first.ID, auth.Settings{BaseGoal: 10, City: "Cairo", Timezone: "Africa/Cairo"})
	require.NoError(t, err)
	require.Equal(t, "Cairo", updated.Settings.City)

	_, err = repo.UpdateSettings(ctx, 99, auth.Settings{})
	require.ErrorIs(t, err, auth.ErrUserNotFound)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, ids)
}
