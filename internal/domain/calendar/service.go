package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/store"
)

// ErrInvalidInput indicates an event missing its title or date.
var ErrInvalidInput = errors.New("invalid event input")

// AuditLog is the slice of the audit service the calendar needs.
type AuditLog interface {
	Record(ctx context.Context, action, details string, category audit.Category, severity audit.Severity)
}

// Notifier enqueues user-facing alerts.
type Notifier interface {
	Push(ctx context.Context, d notify.Draft) *notify.Notification
}

// Service manages the calendar events collection.
type Service struct {
	logger   *slog.Logger
	trail    AuditLog
	notifier Notifier
	idFn     func() string

	mu         sync.Mutex
	events     []Event
	collection *store.Collection[Event]
}

// NewService creates the calendar service and loads persisted events.
func NewService(ctx context.Context, st store.Store, trail AuditLog, notifier Notifier, logger *slog.Logger) *Service {
	s := &Service{
		logger:   logger,
		trail:    trail,
		notifier: notifier,
		idFn:     uuid.NewString,
	}
	s.collection = store.NewCollection[Event](st, store.KeyCalendarEvents, logger)
	s.events = s.collection.Load(ctx)
	return s
}

// List returns all events in insertion order.
func (s *Service) List() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Create appends an event, persists, logs and notifies.
func (s *Service) Create(ctx context.Context, e Event) (Event, error) {
	if e.Title == "" || e.Date.IsZero() {
		return Event{}, ErrInvalidInput
	}
	if e.Type == "" {
		e.Type = TypeReminder
	}
	e.ID = s.idFn()

	s.mu.Lock()
	s.events = append(s.events, e)
	s.collection.Save(ctx, s.events)
	s.mu.Unlock()

	s.trail.Record(ctx, "Event Created",
		fmt.Sprintf("New event: %s", e.Title),
		audit.CategorySystem, audit.SeverityInfo)
	s.notifier.Push(ctx, notify.Draft{
		Title:   "Event Created",
		Message: fmt.Sprintf("Event %q has been created", e.Title),
		Type:    notify.TypeSuccess,
	})
	return e, nil
}

// Update replaces the event with the matching id; missing ids are a no-op.
func (s *Service) Update(ctx context.Context, e Event) {
	s.mu.Lock()
	found := false
	for i := range s.events {
		if s.events[i].ID == e.ID {
			s.events[i] = e
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.collection.Save(ctx, s.events)
	s.mu.Unlock()

	s.trail.Record(ctx, "Event Updated",
		fmt.Sprintf("Event modified: %s", e.Title),
		audit.CategorySystem, audit.SeverityInfo)
	s.notifier.Push(ctx, notify.Draft{
		Title:   "Event Updated",
		Message: fmt.Sprintf("Event %q has been updated", e.Title),
		Type:    notify.TypeSuccess,
	})
}

// Delete removes by id; missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	kept := s.events[:0]
	for _, e := range s.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.events = kept
	s.collection.Save(ctx, s.events)
	s.mu.Unlock()

	s.trail.Record(ctx, "Event Deleted",
		fmt.Sprintf("Event %s removed", id),
		audit.CategorySystem, audit.SeverityInfo)
}

// ReplaceAll swaps the whole collection, used by backup restore.
func (s *Service) ReplaceAll(ctx context.Context, events []Event) {
	s.mu.Lock()
	s.events = events
	s.collection.Save(ctx, s.events)
	s.mu.Unlock()
}
