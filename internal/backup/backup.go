// Package backup exports and restores the full dataset as a single JSON
// document. The key names match the export format the dashboard has always
// used, so old backup files keep working.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmonares/atelierdesk/internal/auth"
	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/billing"
	"github.com/vmonares/atelierdesk/internal/domain/calendar"
	"github.com/vmonares/atelierdesk/internal/domain/client"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/domain/payment"
	"github.com/vmonares/atelierdesk/internal/domain/project"
	"github.com/vmonares/atelierdesk/internal/domain/visit"
	"github.com/vmonares/atelierdesk/internal/store"
)

// Settings carries the persisted preferences.
type Settings struct {
	Theme string `json:"tema"`
}

// Document is the backup file layout. Every field is optional on restore;
// absent collections are left untouched.
type Document struct {
	Clients       *[]client.Client        `json:"clientes,omitempty"`
	Projects      *[]project.Project      `json:"proyectos,omitempty"`
	Payments      *[]payment.Payment      `json:"payments,omitempty"`
	Visits        *[]visit.Visit          `json:"visits,omitempty"`
	Events        *[]calendar.Event       `json:"calendarEvents,omitempty"`
	Notifications *[]notify.Notification  `json:"notifications,omitempty"`
	Invoices      *[]billing.Invoice      `json:"invoices,omitempty"`
	User          *auth.User              `json:"usuario,omitempty"`
	Settings      *Settings               `json:"configuracion,omitempty"`
	ExportedAt    time.Time               `json:"exportedAt"`
}

// Service bundles every collection into one document and back.
type Service struct {
	st            store.Store
	projects      *project.Service
	clients       *client.Service
	payments      *payment.Service
	visits        *visit.Service
	events        *calendar.Service
	invoices      *billing.Service
	notifications *notify.Service
	account       *auth.Service
	trail         *audit.Service
	logger        *slog.Logger
	nowFn         func() time.Time
}

// NewService wires the backup service over the live services.
func NewService(st store.Store, projects *project.Service, clients *client.Service,
	payments *payment.Service, visits *visit.Service, events *calendar.Service,
	invoices *billing.Service, notifications *notify.Service, account *auth.Service,
	trail *audit.Service, logger *slog.Logger) *Service {
	return &Service{
		st:            st,
		projects:      projects,
		clients:       clients,
		payments:      payments,
		visits:        visits,
		events:        events,
		invoices:      invoices,
		notifications: notifications,
		account:       account,
		trail:         trail,
		logger:        logger,
		nowFn:         time.Now,
	}
}

// Export serializes every collection into a backup document.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	theme := s.loadTheme(ctx)
	user := s.account.Snapshot()

	clients := s.clients.List()
	projects := s.projects.List()
	payments := s.payments.List()
	visits := s.visits.List()
	events := s.events.List()
	notifications := s.notifications.List()
	invoices := s.invoices.List()

	doc := Document{
		Clients:       &clients,
		Projects:      &projects,
		Payments:      &payments,
		Visits:        &visits,
		Events:        &events,
		Notifications: &notifications,
		Invoices:      &invoices,
		User:          &user,
		Settings:      &Settings{Theme: theme},
		ExportedAt:    s.nowFn(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}

	s.trail.Record(ctx, "Backup Exported",
		fmt.Sprintf("Full backup exported (%d projects, %d clients)", len(projects), len(clients)),
		audit.CategorySystem, audit.SeverityInfo)
	return data, nil
}

// Restore applies a backup document. Only the collections present in the
// file are overwritten; everything else keeps its current contents. A file
// that fails to parse leaves all data intact and raises one error
// notification.
func (s *Service) Restore(ctx context.Context, data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.notifications.Push(ctx, notify.Draft{
			Title:   "Restore Failed",
			Message: "The backup file could not be read",
			Type:    notify.TypeError,
		})
		return fmt.Errorf("parse backup: %w", err)
	}

	if doc.Clients != nil {
		s.clients.ReplaceAll(ctx, *doc.Clients)
	}
	if doc.Projects != nil {
		s.projects.ReplaceAll(ctx, *doc.Projects)
	}
	if doc.Payments != nil {
		s.payments.ReplaceAll(ctx, *doc.Payments)
	}
	if doc.Visits != nil {
		s.visits.ReplaceAll(ctx, *doc.Visits)
	}
	if doc.Events != nil {
		s.events.ReplaceAll(ctx, *doc.Events)
	}
	if doc.Invoices != nil {
		s.invoices.ReplaceAll(ctx, *doc.Invoices)
	}
	if doc.Notifications != nil {
		s.notifications.ReplaceAll(ctx, *doc.Notifications)
	}
	if doc.User != nil && doc.User.Username != "" {
		s.account.Restore(ctx, *doc.User)
	}
	if doc.Settings != nil {
		if err := s.st.Save(ctx, store.KeyTheme, doc.Settings.Theme); err != nil {
			s.logger.Error("failed to restore theme", "error", err)
		}
	}

	s.trail.Record(ctx, "Backup Restored",
		"Data restored from backup file",
		audit.CategorySystem, audit.SeverityWarning)
	s.notifications.Push(ctx, notify.Draft{
		Title:   "Restore Complete",
		Message: "Data has been restored from the backup file",
		Type:    notify.TypeSuccess,
	})
	return nil
}

func (s *Service) loadTheme(ctx context.Context) string {
	var theme string
	if err := s.st.Load(ctx, store.KeyTheme, &theme); err != nil {
		theme = "light"
	}
	return theme
}
