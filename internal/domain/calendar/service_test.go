package calendar_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/calendar"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/store"
)

func newService(t *testing.T) *calendar.Service {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemory()
	trail := audit.NewService(ctx, st, logger)
	notifications := notify.NewService(ctx, st, logger)
	return calendar.NewService(ctx, st, trail, notifications, logger)
}

func TestCalendarService_UpdateMissingIDIsSilent(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemory()
	trail := audit.NewService(ctx, st, logger)
	notifications := notify.NewService(ctx, st, logger)
	svc := calendar.NewService(ctx, st, trail, notifications, logger)

	svc.Update(ctx, calendar.Event{ID: "ghost", Title: "x"})
	require.Empty(t, svc.List())
	require.Empty(t, notifications.List())
	require.Empty(t, trail.Recent(0))
}

func TestCalendarService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Create(ctx, calendar.Event{Title: "no date"})
	require.ErrorIs(t, err, calendar.ErrInvalidInput)

	e, err := svc.Create(ctx, calendar.Event{
		Title: "Client meeting",
		Date:  time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Type:  calendar.TypeMeeting,
	})
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)
	require.Equal(t, calendar.TypeMeeting, e.Type)
}

func TestCalendarService_CreateDefaultsType(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	e, err := svc.Create(ctx, calendar.Event{
		Title: "Follow up",
		Date:  time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, calendar.TypeReminder, e.Type)
}

func TestCalendarService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	e, err := svc.Create(ctx, calendar.Event{
		Title: "Client meeting",
		Date:  time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	e.Title = "Rescheduled meeting"
	svc.Update(ctx, e)
	require.Equal(t, "Rescheduled meeting", svc.List()[0].Title)

	svc.Delete(ctx, e.ID)
	require.Empty(t, svc.List())
}
