package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmonares/atelierdesk/internal/store"
)

// MaxQueued caps the queue; the oldest notification is evicted first.
const MaxQueued = 100

// Service manages the notification queue. Newest entries sit at the head.
type Service struct {
	logger *slog.Logger
	idFn   func() string
	nowFn  func() time.Time

	mu         sync.Mutex
	queue      []Notification
	collection *store.Collection[Notification]
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

// NewService creates the queue and loads persisted notifications.
func NewService(ctx context.Context, st store.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		logger: logger,
		idFn:   uuid.NewString,
		nowFn:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.collection = store.NewCollection[Notification](st, store.KeyNotifications, logger)
	s.queue = s.collection.Load(ctx)
	return s
}

// Push enqueues a notification at the head. Drafts carrying a dedupe key are
// dropped while an unread notification with the same key is still queued.
func (s *Service) Push(ctx context.Context, d Draft) *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.DedupeKey != "" {
		for _, n := range s.queue {
			if !n.Read && n.DedupeKey == d.DedupeKey {
				return nil
			}
		}
	}

	n := Notification{
		ID:             s.idFn(),
		Title:          d.Title,
		Message:        d.Message,
		Type:           d.Type,
		CreatedAt:      s.nowFn(),
		ActionRequired: d.ActionRequired,
		DedupeKey:      d.DedupeKey,
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}

	s.queue = append([]Notification{n}, s.queue...)
	if len(s.queue) > MaxQueued {
		s.queue = s.queue[:MaxQueued]
	}
	s.persistLocked(ctx)
	return &n
}

// List returns the queue, newest first.
func (s *Service) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.queue))
	copy(out, s.queue)
	return out
}

// Recent returns the five newest notifications for the dashboard.
func (s *Service) Recent() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.queue)
	if n > 5 {
		n = 5
	}
	out := make([]Notification, n)
	copy(out, s.queue[:n])
	return out
}

// UnreadCount counts notifications not yet marked read.
func (s *Service) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.queue {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one notification read. Missing ids are a no-op.
func (s *Service) MarkRead(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.queue {
		if s.queue[i].ID == id {
			s.queue[i].Read = true
			break
		}
	}
	s.persistLocked(ctx)
}

// MarkAllRead marks every notification read.
func (s *Service) MarkAllRead(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.queue {
		s.queue[i].Read = true
	}
	s.persistLocked(ctx)
}

// Delete removes one notification. Missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.queue[:0]
	for _, n := range s.queue {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.queue = kept
	s.persistLocked(ctx)
}

// Clear drops the whole queue.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = nil
	s.persistLocked(ctx)
}

func (s *Service) persistLocked(ctx context.Context) {
	s.collection.Save(ctx, s.queue)
}

// ReplaceAll swaps the whole queue, used by backup restore. The cap still
// applies.
func (s *Service) ReplaceAll(ctx context.Context, notifications []Notification) {
	s.mu.Lock()
	if len(notifications) > MaxQueued {
		notifications = notifications[:MaxQueued]
	}
	s.queue = notifications
	s.persistLocked(ctx)
	s.mu.Unlock()
}
