package billing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/store"
)

// AuditLog is the slice of the audit service billing needs.
type AuditLog interface {
	Record(ctx context.Context, action, details string, category audit.Category, severity audit.Severity)
}

// Notifier enqueues user-facing alerts.
type Notifier interface {
	Push(ctx context.Context, d notify.Draft) *notify.Notification
}

// Service manages invoices. Totals are recomputed on every write so the
// stored figures never drift from the line items.
type Service struct {
	logger     *slog.Logger
	trail      AuditLog
	notifier   Notifier
	idFn       func() string
	nowFn      func() time.Time
	taxPercent float64

	mu         sync.Mutex
	invoices   []Invoice
	collection *store.Collection[Invoice]
}

// NewService creates the billing service and loads persisted invoices.
// taxPercent is the default applied to invoices that do not set their own.
func NewService(ctx context.Context, st store.Store, trail AuditLog, notifier Notifier, taxPercent float64, logger *slog.Logger) *Service {
	s := &Service{
		logger:     logger,
		trail:      trail,
		notifier:   notifier,
		idFn:       uuid.NewString,
		nowFn:      time.Now,
		taxPercent: taxPercent,
	}
	s.collection = store.NewCollection[Invoice](st, store.KeyInvoices, logger)
	s.invoices = s.collection.Load(ctx)
	return s
}

// SetIDFunc overrides id generation, used by tests.
func (s *Service) SetIDFunc(fn func() string) { s.idFn = fn }

// List returns all invoices.
func (s *Service) List() []Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

// Get returns the invoice with the given id.
func (s *Service) Get(id string) (Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return Invoice{}, false
}

// Create validates, numbers and totals a new invoice.
func (s *Service) Create(ctx context.Context, inv Invoice) (Invoice, error) {
	if inv.TaxPercent == 0 {
		inv.TaxPercent = s.taxPercent
	}
	if err := Validate(inv); err != nil {
		return Invoice{}, err
	}
	inv.ID = s.idFn()
	if inv.Status == "" {
		inv.Status = StatusDraft
	}
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = s.idFn()
		}
	}
	recompute(&inv)

	s.mu.Lock()
	if inv.Number == "" {
		inv.Number = fmt.Sprintf("INV-%d-%03d", s.nowFn().Year(), len(s.invoices)+1)
	}
	s.invoices = append(s.invoices, inv)
	s.collection.Save(ctx, s.invoices)
	s.mu.Unlock()

	s.trail.Record(ctx, "Invoice Created",
		fmt.Sprintf("Invoice %s for %s, total %.2f", inv.Number, inv.ClientName, inv.Total),
		audit.CategoryBilling, audit.SeverityInfo)
	s.notifier.Push(ctx, notify.Draft{
		Title:   "Invoice Created",
		Message: fmt.Sprintf("Invoice %s has been created", inv.Number),
		Type:    notify.TypeSuccess,
	})
	return inv, nil
}

// Update validates and replaces an invoice, recomputing all totals.
func (s *Service) Update(ctx context.Context, inv Invoice) (Invoice, error) {
	if err := Validate(inv); err != nil {
		return Invoice{}, err
	}
	recompute(&inv)

	s.mu.Lock()
	found := false
	for i := range s.invoices {
		if s.invoices[i].ID == inv.ID {
			s.invoices[i] = inv
			found = true
			break
		}
	}
	if found {
		s.collection.Save(ctx, s.invoices)
	}
	s.mu.Unlock()
	if !found {
		return Invoice{}, ErrInvoiceNotFound
	}

	s.trail.Record(ctx, "Invoice Updated",
		fmt.Sprintf("Invoice %s modified", inv.Number),
		audit.CategoryBilling, audit.SeverityInfo)
	return inv, nil
}

// UpdateItem replaces a single line item and recomputes its total and the
// invoice totals.
func (s *Service) UpdateItem(ctx context.Context, invoiceID string, item InvoiceItem) (Invoice, error) {
	var updated Invoice
	err := s.mutate(ctx, invoiceID, func(inv *Invoice) {
		for i := range inv.Items {
			if inv.Items[i].ID == item.ID {
				item.Total = round2(item.Quantity * item.UnitPrice)
				inv.Items[i] = item
				break
			}
		}
		recompute(inv)
		updated = *inv
	})
	if err != nil {
		return Invoice{}, err
	}
	return updated, nil
}

// SetStatus moves an invoice through its lifecycle.
func (s *Service) SetStatus(ctx context.Context, id string, status InvoiceStatus) (Invoice, error) {
	var updated Invoice
	err := s.mutate(ctx, id, func(inv *Invoice) {
		inv.Status = status
		updated = *inv
	})
	if err != nil {
		return Invoice{}, err
	}

	severity := audit.SeverityInfo
	if status == StatusPaid {
		severity = audit.SeveritySuccess
	}
	s.trail.Record(ctx, "Invoice Status Changed",
		fmt.Sprintf("Invoice %s is now %s", updated.Number, status),
		audit.CategoryBilling, severity)
	if status == StatusPaid {
		s.notifier.Push(ctx, notify.Draft{
			Title:   "Invoice Paid",
			Message: fmt.Sprintf("Invoice %s has been marked as paid", updated.Number),
			Type:    notify.TypeSuccess,
		})
	}
	return updated, nil
}

// Delete removes an invoice; missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) {
	var number string
	s.mu.Lock()
	kept := s.invoices[:0]
	for _, inv := range s.invoices {
		if inv.ID != id {
			kept = append(kept, inv)
		} else {
			number = inv.Number
		}
	}
	s.invoices = kept
	s.collection.Save(ctx, s.invoices)
	s.mu.Unlock()

	if number != "" {
		s.trail.Record(ctx, "Invoice Deleted",
			fmt.Sprintf("Invoice %s removed", number),
			audit.CategoryBilling, audit.SeverityInfo)
	}
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*Invoice)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			fn(&s.invoices[i])
			s.collection.Save(ctx, s.invoices)
			return nil
		}
	}
	return ErrInvoiceNotFound
}

// recompute derives every line total and the invoice subtotal, tax and total
// from the items.
func recompute(inv *Invoice) {
	var subtotal float64
	for i := range inv.Items {
		inv.Items[i].Total = round2(inv.Items[i].Quantity * inv.Items[i].UnitPrice)
		subtotal += inv.Items[i].Total
	}
	inv.Subtotal = round2(subtotal)
	inv.Tax = round2(inv.Subtotal * inv.TaxPercent / 100)
	inv.Total = round2(inv.Subtotal + inv.Tax)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ReplaceAll swaps the whole collection, used by backup restore.
func (s *Service) ReplaceAll(ctx context.Context, invoices []Invoice) {
	s.mu.Lock()
	s.invoices = invoices
	s.collection.Save(ctx, s.invoices)
	s.mu.Unlock()
}
