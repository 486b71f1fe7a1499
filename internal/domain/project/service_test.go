package project_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/client"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/domain/project"
	"github.com/vmonares/atelierdesk/internal/domain/visit"
	"github.com/vmonares/atelierdesk/internal/store"
)

type fixture struct {
	projects      *project.Service
	clients       *client.Service
	notifications *notify.Service
	trail         *audit.Service
	store         *store.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemory()

	trail := audit.NewService(ctx, st, logger)
	notifications := notify.NewService(ctx, st, logger)
	clients := client.NewService(ctx, st, trail, notifications, logger)
	projects := project.NewService(ctx, st, trail, notifications, clients, logger)

	return &fixture{
		projects:      projects,
		clients:       clients,
		notifications: notifications,
		trail:         trail,
		store:         st,
	}
}

func validProject() project.Project {
	return project.Project{
		Name:       "Casa Norte",
		ClientName: "Maria Lopez",
		Location:   "Av. Central 42",
		StartDate:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		Budget:     85000,
	}
}

func TestProjectService_CreateAutoCreatesClient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.projects.Create(ctx, validProject())
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.NotEmpty(t, p.ClientID)
	require.Equal(t, project.StatusPlanning, p.Status)
	require.Equal(t, project.PriorityMedium, p.Priority)

	c, err := f.clients.GetByName("Maria Lopez")
	require.NoError(t, err)
	require.Equal(t, c.ID, p.ClientID)
	require.Equal(t, []string{p.ID}, c.ProjectIDs)
	require.Equal(t, "Av. Central 42", c.Address)
}

func TestProjectService_CreateLinksExistingClientExactName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	existing, err := f.clients.Create(ctx, client.Client{Name: "Maria Lopez", Email: "maria@example.com"})
	require.NoError(t, err)

	p, err := f.projects.Create(ctx, validProject())
	require.NoError(t, err)
	require.Equal(t, existing.ID, p.ClientID)
	require.Len(t, f.clients.List(), 1)
}

func TestProjectService_CreateNameMatchIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.clients.Create(ctx, client.Client{Name: "maria lopez"})
	require.NoError(t, err)

	_, err = f.projects.Create(ctx, validProject())
	require.NoError(t, err)
	require.Len(t, f.clients.List(), 2)
}

func TestProjectService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p := validProject()
	p.Name = ""
	p.EndDate = p.StartDate.AddDate(0, -1, 0)

	_, err := f.projects.Create(ctx, p)
	var fields project.FieldErrors
	require.ErrorAs(t, err, &fields)
	require.Contains(t, fields, "name")
	require.Contains(t, fields, "endDate")
}

func TestProjectService_UpdateMissingIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p := validProject()
	p.ID = "ghost"
	require.NoError(t, f.projects.Update(ctx, p))
	require.Empty(t, f.projects.List())
}

func TestProjectService_UpdateRelinksOnClientChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.projects.Create(ctx, validProject())
	require.NoError(t, err)

	p.ClientName = "Carlos Ruiz"
	require.NoError(t, f.projects.Update(ctx, p))

	old, err := f.clients.GetByName("Maria Lopez")
	require.NoError(t, err)
	require.Empty(t, old.ProjectIDs)

	next, err := f.clients.GetByName("Carlos Ruiz")
	require.NoError(t, err)
	require.Equal(t, []string{p.ID}, next.ProjectIDs)
}

func TestProjectService_DeleteUnlinksClient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.projects.Create(ctx, validProject())
	require.NoError(t, err)

	f.projects.Delete(ctx, p.ID)
	require.Empty(t, f.projects.List())

	c, err := f.clients.GetByName("Maria Lopez")
	require.NoError(t, err)
	require.Empty(t, c.ProjectIDs)
}

func TestProjectService_ToggleTaskRecomputesProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.projects.Create(ctx, validProject())
	require.NoError(t, err)

	var ids []string
	for _, title := range []string{"Foundations", "Framing", "Finishes"} {
		task, err := f.projects.AddTask(ctx, p.ID, project.Task{Title: title})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	require.NoError(t, f.projects.ToggleTask(ctx, p.ID, ids[0]))
	got, err := f.projects.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, 33, got.Progress)

	require.NoError(t, f.projects.ToggleTask(ctx, p.ID, ids[1]))
	require.NoError(t, f.projects.ToggleTask(ctx, p.ID, ids[2]))
	got, err = f.projects.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, 100, got.Progress)

	// reopening drops progress back
	require.NoError(t, f.projects.ToggleTask(ctx, p.ID, ids[2]))
	got, err = f.projects.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, 67, got.Progress)
}

func TestProjectService_DeleteTaskRecomputesProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.projects.Create(ctx, validProject())
	require.NoError(t, err)

	_, err = f.projects.AddTask(ctx, p.ID, project.Task{Title: "done", Completed: true})
	require.NoError(t, err)
	open, err := f.projects.AddTask(ctx, p.ID, project.Task{Title: "open"})
	require.NoError(t, err)

	require.NoError(t, f.projects.DeleteTask(ctx, p.ID, open.ID))
	got, err := f.projects.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, 100, got.Progress)
}

func TestProjectService_TaskOpsOnMissingProject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.projects.AddTask(ctx, "ghost", project.Task{Title: "t"})
	require.ErrorIs(t, err, project.ErrProjectNotFound)
	require.ErrorIs(t, f.projects.ToggleTask(ctx, "ghost", "x"), project.ErrProjectNotFound)
}

func TestProjectService_DeleteRestoredRecordWithoutName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Restored data can carry records that never went through validation.
	f.projects.ReplaceAll(ctx, []project.Project{
		{ID: "a"},
		{ID: "b", Name: "Casa Norte"},
		{ID: "c", Name: "Loft Sur"},
	})

	f.projects.Delete(ctx, "a")

	list := f.projects.List()
	require.Len(t, list, 2)
	require.Equal(t, "b", list[0].ID)
	require.Equal(t, "c", list[1].ID)
}

func TestProjectService_DeleteMissingIDLeavesCollectionIntact(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.projects.Create(ctx, validProject())
	require.NoError(t, err)

	f.projects.Delete(ctx, "ghost")

	list := f.projects.List()
	require.Len(t, list, 1)
	require.Equal(t, p.ID, list[0].ID)
}

func TestProjectService_ToggleVisit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.projects.Create(ctx, validProject())
	require.NoError(t, err)

	v, err := f.projects.AddVisit(ctx, p.ID, visit.Visit{
		Purpose: "Site survey",
		Date:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, f.projects.ToggleVisit(ctx, p.ID, v.ID))
	got, err := f.projects.Get(p.ID)
	require.NoError(t, err)
	require.Len(t, got.Visits, 1)
	require.True(t, got.Visits[0].Completed)

	require.NoError(t, f.projects.ToggleVisit(ctx, p.ID, v.ID))
	got, err = f.projects.Get(p.ID)
	require.NoError(t, err)
	require.False(t, got.Visits[0].Completed)
}

func TestProjectService_CreateSideEffects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.projects.Create(ctx, validProject())
	require.NoError(t, err)

	entries := f.trail.ByCategory(audit.CategoryProject, 0)
	require.Len(t, entries, 1)
	require.Equal(t, "Project Created", entries[0].Action)

	list := f.notifications.List()
	require.NotEmpty(t, list)
	require.Equal(t, "Project Created", list[0].Title)
	require.Equal(t, notify.TypeSuccess, list[0].Type)
}

func TestProjectService_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.projects.Create(ctx, validProject())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	trail := audit.NewService(ctx, f.store, logger)
	notifications := notify.NewService(ctx, f.store, logger)
	clients := client.NewService(ctx, f.store, trail, notifications, logger)
	reloaded := project.NewService(ctx, f.store, trail, notifications, clients, logger)

	got, err := reloaded.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, p.Name, got.Name)
}
