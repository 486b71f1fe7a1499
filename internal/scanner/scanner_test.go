package scanner_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/domain/payment"
	"github.com/vmonares/atelierdesk/internal/domain/visit"
	"github.com/vmonares/atelierdesk/internal/scanner"
	"github.com/vmonares/atelierdesk/internal/store"
)

var now = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	scanner       *scanner.Scanner
	payments      *payment.Service
	visits        *visit.Service
	notifications *notify.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemory()

	trail := audit.NewService(ctx, st, logger)
	notifications := notify.NewService(ctx, st, logger)
	payments := payment.NewService(ctx, st, trail, notifications, logger)
	visits := visit.NewService(ctx, st, trail, logger)

	sc := scanner.New(payments, visits, notifications, logger)
	sc.SetNowFunc(func() time.Time { return now })

	return &fixture{scanner: sc, payments: payments, visits: visits, notifications: notifications}
}

func TestScanner_PaymentDueTomorrow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.payments.Create(ctx, payment.Payment{
		Amount: 5000, ClientName: "Maria Lopez",
		DueDate: now.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	f.notifications.Clear(ctx)

	f.scanner.Sweep(ctx)

	list := f.notifications.List()
	require.Len(t, list, 1)
	require.Equal(t, "Payment Due", list[0].Title)
	require.Equal(t, notify.TypeWarning, list[0].Type)
	require.True(t, list[0].ActionRequired)
}

func TestScanner_PaymentOutsideWindowIgnored(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.payments.Create(ctx, payment.Payment{
		Amount: 5000, DueDate: now.AddDate(0, 0, 10),
	})
	require.NoError(t, err)
	f.notifications.Clear(ctx)

	f.scanner.Sweep(ctx)
	require.Empty(t, f.notifications.List())
}

func TestScanner_PaidPaymentIgnored(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.payments.Create(ctx, payment.Payment{
		Amount: 5000, DueDate: now.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	f.payments.MarkPaid(ctx, p.ID)
	f.notifications.Clear(ctx)

	f.scanner.Sweep(ctx)
	require.Empty(t, f.notifications.List())
}

func TestScanner_VisitDueTomorrow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.visits.Create(ctx, visit.Visit{
		Location: "Site A", Purpose: "Inspection",
		Date: now.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	f.notifications.Clear(ctx)

	f.scanner.Sweep(ctx)

	list := f.notifications.List()
	require.Len(t, list, 1)
	require.Equal(t, "Upcoming Visit", list[0].Title)
	require.Equal(t, notify.TypeInfo, list[0].Type)
}

func TestScanner_RepeatSweepDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.payments.Create(ctx, payment.Payment{
		Amount: 5000, DueDate: now.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	f.notifications.Clear(ctx)

	f.scanner.Sweep(ctx)
	f.scanner.Sweep(ctx)
	require.Len(t, f.notifications.List(), 1)
}

func TestScanner_ReadAlertReraisedOnNextSweep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.payments.Create(ctx, payment.Payment{
		Amount: 5000, DueDate: now.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	f.notifications.Clear(ctx)

	f.scanner.Sweep(ctx)
	f.notifications.MarkAllRead(ctx)

	f.scanner.Sweep(ctx)
	require.Len(t, f.notifications.List(), 2)
}
