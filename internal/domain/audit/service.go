package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmonares/atelierdesk/internal/store"
)

// MaxEntries caps the trail; the oldest entries are evicted first.
const MaxEntries = 1000

// Service is the audit trail. It is constructed once at the application root
// and handed to every other service; there is no package-level instance.
type Service struct {
	logger *slog.Logger
	idFn   func() string
	nowFn  func() time.Time

	mu         sync.Mutex
	entries    []Entry // newest first
	collection *store.Collection[Entry]
}

// Option configures a Service.
type Option func(*Service)

// WithIDFunc overrides the id generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Service) { s.idFn = fn }
}

// WithNowFunc overrides the clock.
func WithNowFunc(fn func() time.Time) Option {
	return func(s *Service) { s.nowFn = fn }
}

// NewService creates the audit service and loads the persisted trail.
func NewService(ctx context.Context, st store.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		logger: logger,
		idFn:   uuid.NewString,
		nowFn:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.collection = store.NewCollection[Entry](st, store.KeyActivityLogs, logger)
	s.entries = s.collection.Load(ctx)
	return s
}

// Log appends an entry, evicting the oldest past the cap. Warning and error
// entries are mirrored to the diagnostic log.
func (s *Service) Log(ctx context.Context, e Entry) Entry {
	if e.ID == "" {
		e.ID = s.idFn()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.nowFn()
	}
	if e.ActorID == "" {
		e.ActorID = "admin"
	}
	if e.ActorName == "" {
		e.ActorName = "Administrator"
	}
	if e.Category == "" {
		e.Category = CategorySystem
	}
	if e.Severity == "" {
		e.Severity = SeverityInfo
	}

	s.mu.Lock()
	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	switch e.Severity {
	case SeverityWarning:
		s.logger.Warn(e.Action, "details", e.Details, "category", e.Category)
	case SeverityError:
		s.logger.Error(e.Action, "details", e.Details, "category", e.Category)
	}

	return e
}

// Record is the short form used by the entity services.
func (s *Service) Record(ctx context.Context, action, details string, category Category, severity Severity) {
	s.Log(ctx, Entry{Action: action, Details: details, Category: category, Severity: severity})
}

// Recent returns up to limit entries, newest first. Zero means all.
func (s *Service) Recent(limit int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLimited(s.entries, limit)
}

// ByCategory filters entries by category.
func (s *Service) ByCategory(category Category, limit int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return cloneLimited(out, limit)
}

// ByActor filters entries by actor id.
func (s *Service) ByActor(actorID string, limit int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries {
		if e.ActorID == actorID {
			out = append(out, e)
		}
	}
	return cloneLimited(out, limit)
}

// Range returns entries with start <= Timestamp <= end.
func (s *Service) Range(start, end time.Time) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries {
		if !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
			out = append(out, e)
		}
	}
	return out
}

// Stats rolls the trail up by category, severity and recency.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -7)

	st := Stats{
		Total:      len(s.entries),
		Categories: make(map[Category]int),
		Severities: make(map[Severity]int),
	}
	for _, e := range s.entries {
		st.Categories[e.Category]++
		st.Severities[e.Severity]++
		if !e.Timestamp.Before(dayStart) {
			st.Today++
		}
		if !e.Timestamp.Before(weekStart) {
			st.ThisWeek++
		}
	}
	return st
}

// ExportJSON serializes the full trail.
func (s *Service) ExportJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("exporting audit trail: %w", err)
	}
	return data, nil
}

// ClearOlderThan drops entries older than the given number of days.
func (s *Service) ClearOlderThan(ctx context.Context, days int) {
	cutoff := s.nowFn().AddDate(0, 0, -days)
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !e.Timestamp.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.persistLocked(ctx)
}

// Clear drops the whole trail.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.persistLocked(ctx)
}

func (s *Service) persistLocked(ctx context.Context) {
	s.collection.Save(ctx, s.entries)
}

func cloneLimited(entries []Entry, limit int) []Entry {
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
