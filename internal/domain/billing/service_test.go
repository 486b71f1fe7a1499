package billing_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/billing"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/store"
)

func newService(t *testing.T, taxPercent float64) *billing.Service {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemory()
	trail := audit.NewService(ctx, st, logger)
	notifications := notify.NewService(ctx, st, logger)
	return billing.NewService(ctx, st, trail, notifications, taxPercent, logger)
}

func draftInvoice() billing.Invoice {
	return billing.Invoice{
		ClientName: "Maria Lopez",
		IssueDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Items: []billing.InvoiceItem{
			{Description: "Design phase", Quantity: 2, UnitPrice: 100},
			{Description: "Site survey", Quantity: 1, UnitPrice: 50},
		},
	}
}

func TestBillingService_CreateComputesTotals(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, 19)

	inv, err := svc.Create(ctx, draftInvoice())
	require.NoError(t, err)
	require.NotEmpty(t, inv.ID)
	require.NotEmpty(t, inv.Number)
	require.Equal(t, billing.StatusDraft, inv.Status)
	require.Equal(t, 19.0, inv.TaxPercent)

	require.Equal(t, 200.0, inv.Items[0].Total)
	require.Equal(t, 50.0, inv.Items[1].Total)
	require.Equal(t, 250.0, inv.Subtotal)
	require.Equal(t, 47.5, inv.Tax)
	require.Equal(t, 297.5, inv.Total)
}

func TestBillingService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, 19)

	inv := draftInvoice()
	inv.ClientName = ""
	inv.Items = nil

	_, err := svc.Create(ctx, inv)
	var fields billing.FieldErrors
	require.ErrorAs(t, err, &fields)
	require.Contains(t, fields, "client")
	require.Contains(t, fields, "items")
}

func TestBillingService_CreateRejectsEmptyLineItems(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, 19)

	inv := draftInvoice()
	inv.Items = []billing.InvoiceItem{{Description: "", Quantity: 0, UnitPrice: 0}}

	_, err := svc.Create(ctx, inv)
	var fields billing.FieldErrors
	require.ErrorAs(t, err, &fields)
	require.Contains(t, fields, "items")
}

func TestBillingService_UpdateItemRecomputes(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, 10)

	inv, err := svc.Create(ctx, draftInvoice())
	require.NoError(t, err)

	item := inv.Items[0]
	item.Quantity = 3
	item.UnitPrice = 80

	updated, err := svc.UpdateItem(ctx, inv.ID, item)
	require.NoError(t, err)
	require.Equal(t, 240.0, updated.Items[0].Total)
	require.Equal(t, 290.0, updated.Subtotal)
	require.Equal(t, 29.0, updated.Tax)
	require.Equal(t, 319.0, updated.Total)
}

func TestBillingService_UpdateRecomputesStoredTotals(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, 0)

	inv, err := svc.Create(ctx, draftInvoice())
	require.NoError(t, err)

	// stale figures submitted by the caller must be overwritten
	inv.Subtotal = 1
	inv.Tax = 1
	inv.Total = 1

	updated, err := svc.Update(ctx, inv)
	require.NoError(t, err)
	require.Equal(t, 250.0, updated.Subtotal)
	require.Equal(t, 0.0, updated.Tax)
	require.Equal(t, 250.0, updated.Total)
}

func TestBillingService_SetStatus(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, 19)

	inv, err := svc.Create(ctx, draftInvoice())
	require.NoError(t, err)

	updated, err := svc.SetStatus(ctx, inv.ID, billing.StatusPaid)
	require.NoError(t, err)
	require.Equal(t, billing.StatusPaid, updated.Status)

	_, err = svc.SetStatus(ctx, "ghost", billing.StatusSent)
	require.ErrorIs(t, err, billing.ErrInvoiceNotFound)
}

func TestBillingService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, 19)

	inv, err := svc.Create(ctx, draftInvoice())
	require.NoError(t, err)

	svc.Delete(ctx, inv.ID)
	_, ok := svc.Get(inv.ID)
	require.False(t, ok)

	// deleting again is a no-op
	svc.Delete(ctx, inv.ID)
}

func TestBillingService_NumberSequence(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, 19)

	first, err := svc.Create(ctx, draftInvoice())
	require.NoError(t, err)
	second, err := svc.Create(ctx, draftInvoice())
	require.NoError(t, err)
	require.NotEqual(t, first.Number, second.Number)
}
