package visit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/store"
)

// AuditLog is the slice of the audit service visits need.
type AuditLog interface {
	Record(ctx context.Context, action, details string, category audit.Category, severity audit.Severity)
}

// Service manages the standalone visits collection.
type Service struct {
	logger *slog.Logger
	trail  AuditLog
	idFn   func() string

	mu         sync.Mutex
	visits     []Visit
	collection *store.Collection[Visit]
}

// NewService creates the visit service and loads persisted visits.
func NewService(ctx context.Context, st store.Store, trail AuditLog, logger *slog.Logger) *Service {
	s := &Service{
		logger: logger,
		trail:  trail,
		idFn:   uuid.NewString,
	}
	s.collection = store.NewCollection[Visit](st, store.KeyVisits, logger)
	s.visits = s.collection.Load(ctx)
	return s
}

// List returns all visits in insertion order.
func (s *Service) List() []Visit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Visit, len(s.visits))
	copy(out, s.visits)
	return out
}

// Create appends a visit, persists and logs.
func (s *Service) Create(ctx context.Context, v Visit) (Visit, error) {
	if v.Location == "" || v.Purpose == "" || v.Date.IsZero() {
		return Visit{}, ErrInvalidInput
	}
	v.ID = s.idFn()

	s.mu.Lock()
	s.visits = append(s.visits, v)
	s.collection.Save(ctx, s.visits)
	s.mu.Unlock()

	s.trail.Record(ctx, "Visit Scheduled",
		fmt.Sprintf("Visit scheduled at %s: %s", v.Location, v.Purpose),
		audit.CategoryVisitor, audit.SeverityInfo)
	return v, nil
}

// Update replaces the visit with the matching id; missing ids are a no-op.
func (s *Service) Update(ctx context.Context, v Visit) {
	s.mu.Lock()
	found := false
	for i := range s.visits {
		if s.visits[i].ID == v.ID {
			s.visits[i] = v
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.collection.Save(ctx, s.visits)
	s.mu.Unlock()

	s.trail.Record(ctx, "Visit Updated",
		fmt.Sprintf("Visit updated: %s", v.Purpose),
		audit.CategoryVisitor, audit.SeverityInfo)
}

// Complete toggles the completed flag.
func (s *Service) Complete(ctx context.Context, id string, done bool) {
	s.mu.Lock()
	for i := range s.visits {
		if s.visits[i].ID == id {
			s.visits[i].Completed = done
			break
		}
	}
	s.collection.Save(ctx, s.visits)
	s.mu.Unlock()
}

// Delete removes by id; missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	kept := s.visits[:0]
	for _, v := range s.visits {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	s.visits = kept
	s.collection.Save(ctx, s.visits)
	s.mu.Unlock()

	s.trail.Record(ctx, "Visit Deleted",
		fmt.Sprintf("Visit %s removed", id),
		audit.CategoryVisitor, audit.SeverityInfo)
}

// Upcoming reports visits still open on or after the given day.
func (s *Service) Upcoming(now time.Time) []Visit {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Visit
	for _, v := range s.visits {
		if !v.Completed && !v.Date.Before(today) {
			out = append(out, v)
		}
	}
	return out
}

// ReplaceAll swaps the whole collection, used by backup restore.
func (s *Service) ReplaceAll(ctx context.Context, visits []Visit) {
	s.mu.Lock()
	s.visits = visits
	s.collection.Save(ctx, s.visits)
	s.mu.Unlock()
}
