package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/store"
)

var (
	// ErrClientNotFound indicates the client doesn't exist.
	ErrClientNotFound = errors.New("client not found")
	// ErrInvalidInput indicates a client without a name.
	ErrInvalidInput = errors.New("invalid client input")
)

// AuditLog is the slice of the audit service clients need.
type AuditLog interface {
	Record(ctx context.Context, action, details string, category audit.Category, severity audit.Severity)
}

// Notifier enqueues user-facing alerts.
type Notifier interface {
	Push(ctx context.Context, d notify.Draft) *notify.Notification
}

// Service manages the clients collection.
type Service struct {
	logger   *slog.Logger
	trail    AuditLog
	notifier Notifier
	idFn     func() string

	mu         sync.Mutex
	clients    []Client
	collection *store.Collection[Client]
}

// NewService creates the client service and loads persisted clients.
func NewService(ctx context.Context, st store.Store, trail AuditLog, notifier Notifier, logger *slog.Logger) *Service {
	s := &Service{
		logger:   logger,
		trail:    trail,
		notifier: notifier,
		idFn:     uuid.NewString,
	}
	s.collection = store.NewCollection[Client](st, store.KeyClients, logger)
	s.clients = s.collection.Load(ctx)
	return s
}

// SetIDFunc overrides the id generator.
func (s *Service) SetIDFunc(fn func() string) { s.idFn = fn }

// List returns all clients in insertion order.
func (s *Service) List() []Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Get returns a client by id.
func (s *Service) Get(id string) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return Client{}, ErrClientNotFound
}

// GetByName returns a client by exact, case-sensitive name.
func (s *Service) GetByName(name string) (Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if c.Name == name {
			return c, nil
		}
	}
	return Client{}, ErrClientNotFound
}

// Create appends a client, persists, logs and notifies.
func (s *Service) Create(ctx context.Context, c Client) (Client, error) {
	if strings.TrimSpace(c.Name) == "" {
		return Client{}, ErrInvalidInput
	}
	c.ID = s.idFn()
	if c.ProjectIDs == nil {
		c.ProjectIDs = []string{}
	}

	s.mu.Lock()
	s.clients = append(s.clients, c)
	s.collection.Save(ctx, s.clients)
	s.mu.Unlock()

	s.trail.Record(ctx, "Client Created",
		fmt.Sprintf("New client: %s", c.Name),
		audit.CategoryClient, audit.SeverityInfo)
	s.notifier.Push(ctx, notify.Draft{
		Title:   "Client Created",
		Message: fmt.Sprintf("Client %q has been registered", c.Name),
		Type:    notify.TypeSuccess,
	})
	return c, nil
}

// Update replaces the client with the matching id; missing ids are a no-op.
func (s *Service) Update(ctx context.Context, c Client) {
	s.mu.Lock()
	for i := range s.clients {
		if s.clients[i].ID == c.ID {
			s.clients[i] = c
			break
		}
	}
	s.collection.Save(ctx, s.clients)
	s.mu.Unlock()

	s.trail.Record(ctx, "Client Updated",
		fmt.Sprintf("Client modified: %s", c.Name),
		audit.CategoryClient, audit.SeverityInfo)
	s.notifier.Push(ctx, notify.Draft{
		Title:   "Client Updated",
		Message: fmt.Sprintf("Client %q has been updated", c.Name),
		Type:    notify.TypeSuccess,
	})
}

// Delete removes by id; missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	var (
		name  string
		found bool
	)
	kept := s.clients[:0]
	for _, c := range s.clients {
		if c.ID == id {
			name = c.Name
			found = true
			continue
		}
		kept = append(kept, c)
	}
	s.clients = kept
	if !found {
		s.mu.Unlock()
		return
	}
	s.collection.Save(ctx, s.clients)
	s.mu.Unlock()

	s.trail.Record(ctx, "Client Deleted",
		fmt.Sprintf("Client deleted: %s", name),
		audit.CategoryClient, audit.SeverityInfo)
	s.notifier.Push(ctx, notify.Draft{
		Title:   "Client Deleted",
		Message: fmt.Sprintf("Client %q has been deleted", name),
		Type:    notify.TypeInfo,
	})
}

// SyncProject links projectID to the client with the exact name. When no
// client matches, one is created with an empty contact profile and the
// project's location as address.
func (s *Service) SyncProject(ctx context.Context, clientName, projectID, location string) (string, error) {
	s.mu.Lock()
	for i := range s.clients {
		if s.clients[i].Name == clientName {
			s.clients[i].ProjectIDs = append(s.clients[i].ProjectIDs, projectID)
			id := s.clients[i].ID
			s.collection.Save(ctx, s.clients)
			s.mu.Unlock()
			return id, nil
		}
	}
	s.mu.Unlock()

	if strings.TrimSpace(clientName) == "" {
		return "", ErrInvalidInput
	}

	c := Client{
		ID:         s.idFn(),
		Name:       clientName,
		Address:    location,
		ProjectIDs: []string{projectID},
	}
	s.mu.Lock()
	s.clients = append(s.clients, c)
	s.collection.Save(ctx, s.clients)
	s.mu.Unlock()

	s.trail.Record(ctx, "Client Created",
		fmt.Sprintf("Client %s created from project assignment", c.Name),
		audit.CategoryClient, audit.SeverityInfo)
	return c.ID, nil
}

// UnlinkProject removes projectID from whichever clients hold it.
func (s *Service) UnlinkProject(ctx context.Context, projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for i := range s.clients {
		kept := s.clients[i].ProjectIDs[:0]
		for _, id := range s.clients[i].ProjectIDs {
			if id != projectID {
				kept = append(kept, id)
			} else {
				changed = true
			}
		}
		s.clients[i].ProjectIDs = kept
	}
	if changed {
		s.collection.Save(ctx, s.clients)
	}
}

// ReplaceAll swaps the whole collection, used by backup restore.
func (s *Service) ReplaceAll(ctx context.Context, clients []Client) {
	s.mu.Lock()
	s.clients = clients
	s.collection.Save(ctx, s.clients)
	s.mu.Unlock()
}
