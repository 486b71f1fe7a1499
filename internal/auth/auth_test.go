package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmonares/atelierdesk/internal/auth"
	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/store"
)

func newService(t *testing.T, st *store.Memory) *auth.Service {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	trail := audit.NewService(ctx, st, logger)
	svc, err := auth.NewService(ctx, st, trail, "admin", "secret123", logger)
	require.NoError(t, err)
	return svc
}

func TestAuthService_SeedsAccountOnce(t *testing.T) {
	st := store.NewMemory()
	svc := newService(t, st)
	require.Equal(t, "admin", svc.Username())

	// a second startup must keep the stored hash, not reseed
	snapshot := svc.Snapshot()
	again := newService(t, st)
	require.Equal(t, snapshot.PasswordHash, again.Snapshot().PasswordHash)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemory())

	require.ErrorIs(t, svc.Login(ctx, "admin", "wrong"), auth.ErrInvalidCredentials)
	require.ErrorIs(t, svc.Login(ctx, "nobody", "secret123"), auth.ErrInvalidCredentials)
	require.False(t, svc.LoggedIn())

	require.NoError(t, svc.Login(ctx, "admin", "secret123"))
	require.True(t, svc.LoggedIn())

	svc.Logout(ctx)
	require.False(t, svc.LoggedIn())
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, store.NewMemory())

	require.ErrorIs(t, svc.ChangePassword(ctx, "secret123", "short"), auth.ErrWeakPassword)
	require.ErrorIs(t, svc.ChangePassword(ctx, "wrong", "newsecret"), auth.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, "secret123", "newsecret"))
	require.ErrorIs(t, svc.Login(ctx, "admin", "secret123"), auth.ErrInvalidCredentials)
	require.NoError(t, svc.Login(ctx, "admin", "newsecret"))
}

func TestAuthService_PasswordIsHashed(t *testing.T) {
	svc := newService(t, store.NewMemory())
	require.NotEqual(t, "secret123", svc.Snapshot().PasswordHash)
	require.NotEmpty(t, svc.Snapshot().PasswordHash)
}
