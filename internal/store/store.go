package store

import (
	"context"
	"errors"
)

// Well-known collection keys. Each key holds one JSON-encoded collection.
const (
	KeyProjects       = "projects"
	KeyPayments       = "payments"
	KeyVisits         = "visits"
	KeyCalendarEvents = "calendar-events"
	KeyClients        = "clients"
	KeyInvoices       = "invoices"
	KeyNotifications  = "notifications"
	KeyActivityLogs   = "activity_logs"
	KeyTheme          = "theme"
	KeyUser           = "user"

	// PrefixPhotos and PrefixReceipts scope file metadata per project.
	PrefixPhotos   = "project_photos_"
	PrefixReceipts = "project_receipts_"
)

// ErrNotFound is returned by Load when no value exists at the key.
var ErrNotFound = errors.New("key not found")

// Store persists one JSON blob per logical collection.
//
// Load must leave dest untouched and return ErrNotFound when the key is
// absent. Implementations treat malformed stored JSON the same as absence so
// a corrupt blob never takes the whole collection down.
type Store interface {
	Load(ctx context.Context, key string, dest any) error
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}
