package project

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/domain/visit"
	"github.com/vmonares/atelierdesk/internal/store"
)

// AuditLog is the slice of the audit service projects need.
type AuditLog interface {
	Record(ctx context.Context, action, details string, category audit.Category, severity audit.Severity)
}

// Notifier enqueues user-facing alerts.
type Notifier interface {
	Push(ctx context.Context, d notify.Draft) *notify.Notification
}

// ClientDirectory keeps the client side of the project-client link in sync.
type ClientDirectory interface {
	// SyncProject links projectID to the client with the exact name, creating
	// the client with an empty contact profile when no name matches. It
	// returns the client id.
	SyncProject(ctx context.Context, clientName, projectID, location string) (string, error)
	// UnlinkProject removes projectID from whichever client holds it.
	UnlinkProject(ctx context.Context, projectID string)
}

// Service manages the projects collection and its owned tasks and visits.
type Service struct {
	logger   *slog.Logger
	trail    AuditLog
	notifier Notifier
	clients  ClientDirectory
	idFn     func() string

	mu         sync.Mutex
	projects   []Project
	collection *store.Collection[Project]
}

// NewService creates the project service and loads persisted projects.
func NewService(ctx context.Context, st store.Store, trail AuditLog, notifier Notifier, clients ClientDirectory, logger *slog.Logger) *Service {
	s := &Service{
		logger:   logger,
		trail:    trail,
		notifier: notifier,
		clients:  clients,
		idFn:     uuid.NewString,
	}
	s.collection = store.NewCollection[Project](st, store.KeyProjects, logger)
	s.projects = s.collection.Load(ctx)
	return s
}

// SetIDFunc overrides the id generator.
func (s *Service) SetIDFunc(fn func() string) { s.idFn = fn }

// List returns all projects in insertion order.
func (s *Service) List() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Recent returns up to five projects for the dashboard.
func (s *Service) Recent() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.projects)
	if n > 5 {
		n = 5
	}
	out := make([]Project, n)
	copy(out, s.projects[:n])
	return out
}

// Get returns a project by id.
func (s *Service) Get(id string) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, ErrProjectNotFound
}

// Create validates, assigns an id, links the client, persists, logs and
// notifies — in that order.
func (s *Service) Create(ctx context.Context, p Project) (Project, error) {
	if err := Validate(p); err != nil {
		return Project{}, err
	}

	p.ID = s.idFn()
	if p.Status == "" {
		p.Status = StatusPlanning
	}
	if p.Priority == "" {
		p.Priority = PriorityMedium
	}
	if p.Tasks == nil {
		p.Tasks = []Task{}
	}
	if p.Visits == nil {
		p.Visits = []visit.Visit{}
	}

	clientID, err := s.clients.SyncProject(ctx, p.ClientName, p.ID, p.Location)
	if err != nil {
		return Project{}, fmt.Errorf("linking client: %w", err)
	}
	p.ClientID = clientID

	s.mu.Lock()
	s.projects = append(s.projects, p)
	s.collection.Save(ctx, s.projects)
	s.mu.Unlock()

	s.trail.Record(ctx, "Project Created",
		fmt.Sprintf("New project: %s for client: %s", p.Name, p.ClientName),
		audit.CategoryProject, audit.SeverityInfo)
	s.notifier.Push(ctx, notify.Draft{
		Title:   "Project Created",
		Message: fmt.Sprintf("Project %q has been created", p.Name),
		Type:    notify.TypeSuccess,
	})
	return p, nil
}

// Update replaces the project with the matching id. A missing id is a silent
// no-op; callers that care must Get first. Changing the client name relinks
// both client records.
func (s *Service) Update(ctx context.Context, p Project) error {
	if err := Validate(p); err != nil {
		return err
	}

	s.mu.Lock()
	var prev *Project
	for i := range s.projects {
		if s.projects[i].ID == p.ID {
			prev = &s.projects[i]
			break
		}
	}
	if prev == nil {
		s.mu.Unlock()
		return nil
	}
	clientChanged := prev.ClientName != p.ClientName
	s.mu.Unlock()

	if clientChanged {
		s.clients.UnlinkProject(ctx, p.ID)
		clientID, err := s.clients.SyncProject(ctx, p.ClientName, p.ID, p.Location)
		if err != nil {
			return fmt.Errorf("relinking client: %w", err)
		}
		p.ClientID = clientID
	}

	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == p.ID {
			s.projects[i] = p
			break
		}
	}
	s.collection.Save(ctx, s.projects)
	s.mu.Unlock()

	s.trail.Record(ctx, "Project Updated",
		fmt.Sprintf("Project modified: %s", p.Name),
		audit.CategoryProject, audit.SeverityInfo)
	s.notifier.Push(ctx, notify.Draft{
		Title:   "Project Updated",
		Message: fmt.Sprintf("Project %q has been updated", p.Name),
		Type:    notify.TypeSuccess,
	})
	return nil
}

// Delete removes by id and unlinks the client; missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	var (
		name  string
		found bool
	)
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID == id {
			name = p.Name
			found = true
			continue
		}
		kept = append(kept, p)
	}
	s.projects = kept
	if !found {
		s.mu.Unlock()
		return
	}
	s.collection.Save(ctx, s.projects)
	s.mu.Unlock()

	s.clients.UnlinkProject(ctx, id)

	s.trail.Record(ctx, "Project Deleted",
		fmt.Sprintf("Project deleted: %s", name),
		audit.CategoryProject, audit.SeverityInfo)
	s.notifier.Push(ctx, notify.Draft{
		Title:   "Project Deleted",
		Message: fmt.Sprintf("Project %q has been deleted", name),
		Type:    notify.TypeInfo,
	})
}

// AddTask appends a task to the project.
func (s *Service) AddTask(ctx context.Context, projectID string, t Task) (Task, error) {
	t.ID = s.idFn()
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}

	err := s.mutateProject(ctx, projectID, func(p *Project) {
		p.Tasks = append(p.Tasks, t)
	})
	if err != nil {
		return Task{}, err
	}

	s.trail.Record(ctx, "Task Added",
		fmt.Sprintf("Task added: %s", t.Title),
		audit.CategoryProject, audit.SeverityInfo)
	return t, nil
}

// UpdateTask replaces the task with the matching id within the project.
func (s *Service) UpdateTask(ctx context.Context, projectID string, t Task) error {
	return s.mutateProject(ctx, projectID, func(p *Project) {
		for i := range p.Tasks {
			if p.Tasks[i].ID == t.ID {
				p.Tasks[i] = t
				break
			}
		}
	})
}

// ToggleTask flips a task's completed flag and recomputes the project's
// progress from its tasks. The progress field is only rewritten when the
// derived value actually changed.
func (s *Service) ToggleTask(ctx context.Context, projectID, taskID string) error {
	var toggled Task
	err := s.mutateProject(ctx, projectID, func(p *Project) {
		for i := range p.Tasks {
			if p.Tasks[i].ID == taskID {
				p.Tasks[i].Completed = !p.Tasks[i].Completed
				toggled = p.Tasks[i]
				break
			}
		}
		if progress := computeProgress(p.Tasks); progress != p.Progress {
			p.Progress = progress
		}
	})
	if err != nil {
		return err
	}

	state := "reopened"
	if toggled.Completed {
		state = "completed"
	}
	s.trail.Record(ctx, "Task Toggled",
		fmt.Sprintf("Task %s %s", toggled.Title, state),
		audit.CategoryProject, audit.SeverityInfo)
	return nil
}

// DeleteTask removes a task and recomputes progress.
func (s *Service) DeleteTask(ctx context.Context, projectID, taskID string) error {
	return s.mutateProject(ctx, projectID, func(p *Project) {
		kept := p.Tasks[:0]
		for _, t := range p.Tasks {
			if t.ID != taskID {
				kept = append(kept, t)
			}
		}
		p.Tasks = kept
		if progress := computeProgress(p.Tasks); progress != p.Progress {
			p.Progress = progress
		}
	})
}

// AddVisit appends a site visit to the project.
func (s *Service) AddVisit(ctx context.Context, projectID string, v visit.Visit) (visit.Visit, error) {
	v.ID = s.idFn()
	err := s.mutateProject(ctx, projectID, func(p *Project) {
		p.Visits = append(p.Visits, v)
	})
	if err != nil {
		return visit.Visit{}, err
	}

	s.trail.Record(ctx, "Visit Scheduled",
		fmt.Sprintf("Site visit scheduled: %s", v.Purpose),
		audit.CategoryVisitor, audit.SeverityInfo)
	return v, nil
}

// UpdateVisit replaces the visit with the matching id within the project.
func (s *Service) UpdateVisit(ctx context.Context, projectID string, v visit.Visit) error {
	return s.mutateProject(ctx, projectID, func(p *Project) {
		for i := range p.Visits {
			if p.Visits[i].ID == v.ID {
				p.Visits[i] = v
				break
			}
		}
	})
}

// ToggleVisit flips the completion flag on a visit within the project.
func (s *Service) ToggleVisit(ctx context.Context, projectID, visitID string) error {
	return s.mutateProject(ctx, projectID, func(p *Project) {
		for i := range p.Visits {
			if p.Visits[i].ID == visitID {
				p.Visits[i].Completed = !p.Visits[i].Completed
				break
			}
		}
	})
}

// DeleteVisit removes a visit from the project.
func (s *Service) DeleteVisit(ctx context.Context, projectID, visitID string) error {
	return s.mutateProject(ctx, projectID, func(p *Project) {
		kept := p.Visits[:0]
		for _, v := range p.Visits {
			if v.ID != visitID {
				kept = append(kept, v)
			}
		}
		p.Visits = kept
	})
}

// mutateProject applies fn to the project with the given id and persists.
func (s *Service) mutateProject(ctx context.Context, projectID string, fn func(*Project)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			fn(&s.projects[i])
			s.collection.Save(ctx, s.projects)
			return nil
		}
	}
	return ErrProjectNotFound
}

// ReplaceAll swaps the whole collection, used by backup restore.
func (s *Service) ReplaceAll(ctx context.Context, projects []Project) {
	s.mu.Lock()
	s.projects = projects
	s.collection.Save(ctx, s.projects)
	s.mu.Unlock()
}
