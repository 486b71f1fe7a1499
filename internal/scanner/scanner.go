// Package scanner watches payment due dates and visit schedules and raises
// notifications for anything due within the next day.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/domain/payment"
	"github.com/vmonares/atelierdesk/internal/domain/visit"
)

const sweepInterval = 5 * time.Minute

// Payments is the slice of the payment service the scanner reads.
type Payments interface {
	List() []payment.Payment
}

// Visits is the slice of the visit service the scanner reads.
type Visits interface {
	List() []visit.Visit
}

// Notifier enqueues alerts. Duplicate suppression is handled by the
// notifier through the dedupe key.
type Notifier interface {
	Push(ctx context.Context, d notify.Draft) *notify.Notification
}

// Scanner runs the periodic deadline sweep.
type Scanner struct {
	payments  Payments
	visits    Visits
	notifier  Notifier
	logger    *slog.Logger
	nowFn     func() time.Time
	scheduler gocron.Scheduler
}

// New creates a scanner; call Start to begin sweeping.
func New(payments Payments, visits Visits, notifier Notifier, logger *slog.Logger) *Scanner {
	return &Scanner{
		payments: payments,
		visits:   visits,
		notifier: notifier,
		logger:   logger,
		nowFn:    time.Now,
	}
}

// SetNowFunc overrides the clock, used by tests.
func (s *Scanner) SetNowFunc(fn func() time.Time) { s.nowFn = fn }

// Start runs one immediate sweep then schedules a sweep every five minutes.
func (s *Scanner) Start(ctx context.Context) error {
	s.Sweep(ctx)

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(func() { s.Sweep(context.Background()) }),
	)
	if err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	scheduler.Start()
	s.scheduler = scheduler
	s.logger.Info("deadline scanner started", "interval", sweepInterval.String())
	return nil
}

// Shutdown stops the scheduler.
func (s *Scanner) Shutdown() {
	if s.scheduler == nil {
		return
	}
	if err := s.scheduler.Shutdown(); err != nil {
		s.logger.Error("scanner shutdown failed", "error", err)
	}
}

// Sweep checks every pending payment and incomplete visit against the
// end of tomorrow and notifies for anything inside the window.
func (s *Scanner) Sweep(ctx context.Context) {
	now := s.nowFn()
	endOfTomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 2)

	for _, p := range s.payments.List() {
		if p.Status != payment.StatusPending || !p.DueDate.Before(endOfTomorrow) {
			continue
		}
		s.notifier.Push(ctx, notify.Draft{
			Title:          "Payment Due",
			Message:        fmt.Sprintf("Payment of %.2f from %s is due %s", p.Amount, p.ClientName, p.DueDate.Format("2006-01-02")),
			Type:           notify.TypeWarning,
			ActionRequired: true,
			DedupeKey:      "payment/" + p.ID,
		})
	}

	for _, v := range s.visits.List() {
		if v.Completed || !v.Date.Before(endOfTomorrow) {
			continue
		}
		s.notifier.Push(ctx, notify.Draft{
			Title:          "Upcoming Visit",
			Message:        fmt.Sprintf("Visit to %s scheduled for %s", v.Location, v.Date.Format("2006-01-02")),
			Type:           notify.TypeInfo,
			ActionRequired: true,
			DedupeKey:      "visit/" + v.ID,
		})
	}
}
