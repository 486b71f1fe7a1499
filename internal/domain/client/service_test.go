package client_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/client"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/store"
)

func newClientService(t *testing.T) *client.Service {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemory()
	trail := audit.NewService(ctx, st, logger)
	notifications := notify.NewService(ctx, st, logger)
	return client.NewService(ctx, st, trail, notifications, logger)
}

func TestClientService_DeleteRestoredRecordWithoutName(t *testing.T) {
	ctx := context.Background()
	svc := newClientService(t)

	// Restored data can carry records that never went through validation.
	svc.ReplaceAll(ctx, []client.Client{
		{ID: "a"},
		{ID: "b", Name: "Maria Lopez"},
		{ID: "c", Name: "Jorge Ruiz"},
	})

	svc.Delete(ctx, "a")

	list := svc.List()
	require.Len(t, list, 2)
	require.Equal(t, "b", list[0].ID)
	require.Equal(t, "c", list[1].ID)
}

func TestClientService_DeleteMissingIDLeavesCollectionIntact(t *testing.T) {
	ctx := context.Background()
	svc := newClientService(t)

	c, err := svc.Create(ctx, client.Client{Name: "Maria Lopez"})
	require.NoError(t, err)

	svc.Delete(ctx, "ghost")

	list := svc.List()
	require.Len(t, list, 1)
	require.Equal(t, c.ID, list[0].ID)
}
