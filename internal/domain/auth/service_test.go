package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/moodsip/pkg/errors"
)

func TestService_RegisterLoginAndRefresh(t *testing.T) {
	svc := newServiceUnderTest(newMemoryRepo())

	view, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Sipper@Example.com",
		Password: "pass1234",
		Nickname: "Raajas",
		City:     "Chennai",
		Timezone: "Asia/Kolkata",
	})
	require.NoError(t, err)
	require.Equal(t, "sipper@example.com", view.Email)
	require.Equal(t, Settings{BaseGoal: 8, City: "Chennai", Timezone: "Asia/Kolkata"}, view.Settings)
	require.NotZero(t, view.ID)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "sipper@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, view.ID, claims.UserID)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)

	_, err = svc.ValidateToken(context.Background(), resp.RefreshToken)
	require.True(t, apperrors.IsCode(err, "invalid_token"))

	refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, resp.Token, refreshed.Token)
	require.Equal(t, "Raajas", refreshed.User.Nickname)
}

func TestService_RegisterUsesDefaults(t *testing.T) {
	svc := newServiceUnderTest(newMemoryRepo())

	view, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "user@example.com",
		Password: "pass1234",
		Nickname: "Sam",
	})
	require.NoError(t, err)
	require.Equal(t, "London", view.Settings.City)
	require.Equal(t, "UTC", view.Settings.Timezone)
}

func TestService_DuplicateEmail(t *testing.T) {
	svc := newServiceUnderTest(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "user@example.com", Password: "pass1234", Nickname: "One"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Email: "user@example.com", Password: "pass12345", Nickname: "Two"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "email_exists"))
}

func TestService_UpdateSettings(t *testing.T) {
	svc := newServiceUnderTest(newMemoryRepo())
	view, err := svc.Register(context.Background(), RegisterRequest{Email: "user@example.com", Password: "pass1234", Nickname: "Sam"})
	require.NoError(t, err)

	goal := 10
	tz := "Europe/Berlin"
	updated, err := svc.UpdateSettings(context.Background(), view.ID, UpdateSettingsRequest{BaseGoal: &goal, Timezone: &tz})
	require.NoError(t, err)
	require.Equal(t, Settings{BaseGoal: 10, City: "London", Timezone: "Europe/Berlin"}, updated.Settings)

	bad := "Mars/Olympus"
	_, err = svc.UpdateSettings(context.Background(), view.ID, UpdateSettingsRequest{Timezone: &bad})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	zero := 0
	_, err = svc.UpdateSettings(context.Background(), view.ID, UpdateSettingsRequest{BaseGoal: &zero})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	settings, err := svc.Settings(context.Background(), view.ID)
	require.NoError(t, err)
	require.Equal(t, 10, settings.BaseGoal)
}

func TestService_SettingsUnknownUser(t *testing.T) {
	svc := newServiceUnderTest(newMemoryRepo())
	_, err := svc.Settings(context.Background(), 42)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func newServiceUnderTest(repo Repository) Service {
	return NewService(Config{
		Secret:          "test-secret",
		TokenTTL:        time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Defaults:        Settings{BaseGoal: 8, City: "London", Timezone: "UTC"},
	}, repo, newTestLogger())
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type memoryRepo struct {
	users map[int64]User
	seq   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[int64]User)}
}

func (m *memoryRepo) Create(_ context.Context, user User) (User, error) {
	m.seq++
	user.ID = m.seq
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (User, bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return User{}, false, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (User, bool, error) {
	user, ok := m.users[id]
	return user, ok, nil
}

func (m *memoryRepo) UpdateSettings(_ context.Context, id int64, settings Settings) (User, error) {
	user, ok := m.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	user.Settings = settings
	m.users[id] = user
	return user, nil
}

func (m *memoryRepo) ListIDs(_ context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	return ids, nil
}
