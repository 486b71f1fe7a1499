package files_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/files"
	"github.com/vmonares/atelierdesk/internal/store"
)

func newService(t *testing.T) (*files.Service, *store.Memory) {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemory()
	trail := audit.NewService(ctx, st, logger)
	svc := files.NewService(st, trail, logger)
	svc.SetNowFunc(func() time.Time {
		return time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	})
	return svc, st
}

func TestFilesService_AddPhotoNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	first := svc.AddPhoto(ctx, "p1", files.Photo{FileName: "a.jpg"})
	require.NotEmpty(t, first.ID)
	require.Equal(t, "p1", first.ProjectID)
	require.Equal(t, "a.jpg", first.OriginalName)
	require.Contains(t, first.FileName, "a.jpg")
	require.Equal(t, files.PhotoOther, first.Category)
	require.False(t, first.UploadedAt.IsZero())

	svc.AddPhoto(ctx, "p1", files.Photo{FileName: "b.jpg"})

	photos := svc.Photos(ctx, "p1")
	require.Len(t, photos, 2)
	require.Contains(t, photos[0].FileName, "b.jpg")
}

func TestFilesService_PhotosIsolatedPerProject(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	svc.AddPhoto(ctx, "p1", files.Photo{FileName: "a.jpg"})
	require.Empty(t, svc.Photos(ctx, "p2"))
}

func TestFilesService_DeletePhoto(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	p := svc.AddPhoto(ctx, "p1", files.Photo{FileName: "a.jpg"})
	svc.DeletePhoto(ctx, "p1", p.ID)
	require.Empty(t, svc.Photos(ctx, "p1"))
}

func TestFilesService_ReceiptsRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	r := svc.AddReceipt(ctx, "p1", files.Receipt{FileName: "lumber.pdf", Amount: 420.50})
	receipts := svc.Receipts(ctx, "p1")
	require.Len(t, receipts, 1)
	require.Equal(t, r.ID, receipts[0].ID)
	require.Equal(t, 420.50, receipts[0].Amount)
}

func TestFilesService_PurgeProject(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	svc.AddPhoto(ctx, "p1", files.Photo{FileName: "a.jpg"})
	svc.AddReceipt(ctx, "p1", files.Receipt{FileName: "r.pdf"})

	svc.PurgeProject(ctx, "p1")
	require.Empty(t, svc.Photos(ctx, "p1"))
	require.Empty(t, svc.Receipts(ctx, "p1"))

	keys, err := st.Keys(ctx, store.PrefixPhotos)
	require.NoError(t, err)
	require.Empty(t, keys)
}
