package payment

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

// ErrInvalidInput indicates a payment with a non-positive amount or no due date.
var ErrInvalidInput = errors.New("invalid payment input")

// AuditLog is the slice of the audit service payments need.
type AuditLog interface {
	Record(ctx context.Context, action, details string, category audit.Category, severity audit.Severity)
}

// Notifier enqueues user-facing alerts.
type Notifier interface {
	Push(ctx context.Context, d notify.Draft) *notify.Notification
}

// Service manages the global payments collection.
type Service struct {
	logger   *slog.Logger
	trail    AuditLog
	notifier Notifier
	idFn     func() string

	mu         sync.Mutex
	payments   []Payment
	collection *store.Collection[Payment]
}

// NewService creates the payment service and loads persisted payments.
func NewService(ctx context.Context, st store.Store, trail AuditLog, notifier Notifier, logger *slog.Logger) *Service {
	s := &Service{
		logger:   logger,
		trail:    trail,
		notifier: notifier,
		idFn:     uuid.NewString,
	}
	s.collection = store.NewCollection[Payment](st, store.KeyPayments, logger)
	s.payments = s.collection.Load(ctx)
	return s
}

// SetIDFunc overrides the id generator.
func (s *Service) SetIDFunc(fn func() string) { s.idFn = fn }

// List returns all payments in insertion order.
func (s *Service) List() []Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Payment, len(s.payments))
	copy(out, s.payments)
	return out
}

// Get returns a payment by id.
func (s *Service) Get(id string) (Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.ID == id {
			return p, true
		}
	}
	return Payment{}, false
}

// Create appends a payment, persists, logs and notifies.
func (s *Service) Create(ctx context.Context, p Payment) (Payment, error) {
	if p.Amount <= 0 || p.DueDate.IsZero() {
		return Payment{}, ErrInvalidInput
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	p.ID = s.idFn()

	s.mu.Lock()
	s.payments = append(s.payments, p)
	s.collection.Save(ctx, s.payments)
	s.mu.Unlock()

	s.trail.Record(ctx, "Payment Registered",
		fmt.Sprintf("Payment of $%.0f for %s due %s", p.Amount, p.ClientName, p.DueDate.Format("2006-01-02")),
		audit.CategoryBilling, audit.SeverityInfo)
	s.notifier.Push(ctx, notify.Draft{
		Title:   "Payment Registered",
		Message: fmt.Sprintf("Payment of $%.0f for %s has been registered", p.Amount, p.ClientName),
		Type:    notify.TypeSuccess,
	})
	return p, nil
}

// Update replaces the payment with the matching id; missing ids are a no-op.
func (s *Service) Update(ctx context.Context, p Payment) {
	s.mu.Lock()
	found := false
	for i := range s.payments {
		if s.payments[i].ID == p.ID {
			s.payments[i] = p
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.collection.Save(ctx, s.payments)
	s.mu.Unlock()

	s.trail.Record(ctx, "Payment Updated",
		fmt.Sprintf("Payment %s updated", p.ID),
		audit.CategoryBilling, audit.SeverityInfo)
}

// MarkPaid flips a pending payment to paid and notifies.
func (s *Service) MarkPaid(ctx context.Context, id string) {
	var paid *Payment
	s.mu.Lock()
	for i := range s.payments {
		if s.payments[i].ID == id {
			s.payments[i].Status = StatusPaid
			paid = &s.payments[i]
			break
		}
	}
	s.collection.Save(ctx, s.payments)
	s.mu.Unlock()

	if paid == nil {
		return
	}
	s.trail.Record(ctx, "Payment Received",
		fmt.Sprintf("Payment of $%.0f from %s marked paid", paid.Amount, paid.ClientName),
		audit.CategoryBilling, audit.SeveritySuccess)
	s.notifier.Push(ctx, notify.Draft{
		Title:   "Payment Received",
		Message: fmt.Sprintf("Payment of $%.0f from %s was received", paid.Amount, paid.ClientName),
		Type:    notify.TypeSuccess,
	})
}

// Delete removes by id; missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	kept := s.payments[:0]
	for _, p := range s.payments {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.payments = kept
	s.collection.Save(ctx, s.payments)
	s.mu.Unlock()

	s.trail.Record(ctx, "Payment Deleted",
		fmt.Sprintf("Payment %s removed", id),
		audit.CategoryBilling, audit.SeverityInfo)
}

// ReplaceAll swaps the whole collection, used by backup restore.
func (s *Service) ReplaceAll(ctx context.Context, payments []Payment) {
	s.mu.Lock()
	s.payments = payments
	s.collection.Save(ctx, s.payments)
	s.mu.Unlock()
}
