package audit_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuditService_LogFillsDefaults(t *testing.T) {
	ctx := context.Background()
	svc := audit.NewService(ctx, store.NewMemory(), discardLogger())

	e := svc.Log(ctx, audit.Entry{Action: "Login"})
	require.NotEmpty(t, e.ID)
	require.False(t, e.Timestamp.IsZero())
	require.Equal(t, "admin", e.ActorID)
	require.Equal(t, "Administrator", e.ActorName)
	require.Equal(t, audit.CategorySystem, e.Category)
	require.Equal(t, audit.SeverityInfo, e.Severity)
}

func TestAuditService_NewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := audit.NewService(ctx, store.NewMemory(), discardLogger())

	svc.Record(ctx, "first", "", audit.CategorySystem, audit.SeverityInfo)
	svc.Record(ctx, "second", "", audit.CategorySystem, audit.SeverityInfo)

	entries := svc.Recent(0)
	require.Len(t, entries, 2)
	require.Equal(t, "second", entries[0].Action)
	require.Equal(t, "first", entries[1].Action)
}

func TestAuditService_CapEvictsOldest(t *testing.T) {
	ctx := context.Background()
	svc := audit.NewService(ctx, store.NewMemory(), discardLogger())

	for i := 0; i < audit.MaxEntries+10; i++ {
		svc.Record(ctx, fmt.Sprintf("action-%d", i), "", audit.CategorySystem, audit.SeverityInfo)
	}

	entries := svc.Recent(0)
	require.Len(t, entries, audit.MaxEntries)
	require.Equal(t, fmt.Sprintf("action-%d", audit.MaxEntries+9), entries[0].Action)
	require.Equal(t, "action-10", entries[len(entries)-1].Action)
}

func TestAuditService_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	svc := audit.NewService(ctx, st, discardLogger())
	svc.Record(ctx, "Project Created", "details", audit.CategoryProject, audit.SeverityInfo)

	reloaded := audit.NewService(ctx, st, discardLogger())
	entries := reloaded.Recent(0)
	require.Len(t, entries, 1)
	require.Equal(t, "Project Created", entries[0].Action)
}

func TestAuditService_Filters(t *testing.T) {
	ctx := context.Background()
	svc := audit.NewService(ctx, store.NewMemory(), discardLogger())

	svc.Record(ctx, "Login", "", audit.CategoryAuth, audit.SeveritySuccess)
	svc.Record(ctx, "Project Created", "", audit.CategoryProject, audit.SeverityInfo)
	svc.Log(ctx, audit.Entry{Action: "Other", ActorID: "guest", Category: audit.CategorySystem})

	byCat := svc.ByCategory(audit.CategoryAuth, 0)
	require.Len(t, byCat, 1)
	require.Equal(t, "Login", byCat[0].Action)

	byActor := svc.ByActor("guest", 0)
	require.Len(t, byActor, 1)
	require.Equal(t, "Other", byActor[0].Action)

	limited := svc.Recent(2)
	require.Len(t, limited, 2)
}

func TestAuditService_Stats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := audit.NewService(ctx, store.NewMemory(), discardLogger(),
		audit.WithNowFunc(func() time.Time { return now }))

	svc.Record(ctx, "a", "", audit.CategoryAuth, audit.SeverityWarning)
	svc.Log(ctx, audit.Entry{Action: "b", Timestamp: now.AddDate(0, 0, -3), Category: audit.CategoryProject, Severity: audit.SeverityInfo})
	svc.Log(ctx, audit.Entry{Action: "c", Timestamp: now.AddDate(0, 0, -30), Category: audit.CategoryProject, Severity: audit.SeverityInfo})

	st := svc.Stats()
	require.Equal(t, 3, st.Total)
	require.Equal(t, 2, st.Categories[audit.CategoryProject])
	require.Equal(t, 1, st.Severities[audit.SeverityWarning])
	require.Equal(t, 1, st.Today)
	require.Equal(t, 2, st.ThisWeek)
}

func TestAuditService_ClearOlderThan(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := audit.NewService(ctx, store.NewMemory(), discardLogger(),
		audit.WithNowFunc(func() time.Time { return now }))

	svc.Log(ctx, audit.Entry{Action: "old", Timestamp: now.AddDate(0, 0, -90)})
	svc.Log(ctx, audit.Entry{Action: "recent", Timestamp: now.AddDate(0, 0, -5)})

	svc.ClearOlderThan(ctx, 30)
	entries := svc.Recent(0)
	require.Len(t, entries, 1)
	require.Equal(t, "recent", entries[0].Action)
}
