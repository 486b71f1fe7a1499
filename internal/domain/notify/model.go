package notify

import "time"

// Type grades a notification for display.
type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
	TypeSuccess Type = "success"
)

// Notification is a user-facing queued alert, distinct from the audit trail.
type Notification struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Type           Type      `json:"type"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
	ActionRequired bool      `json:"actionRequired,omitempty"`
	// DedupeKey suppresses repeat alerts for the same pending item, e.g.
	// "payment/<id>" from the deadline scanner.
	DedupeKey string `json:"dedupeKey,omitempty"`
}

// Draft is the caller-supplied part of a notification.
type Draft struct {
	Title          string
	Message        string
	Type           Type
	ActionRequired bool
	DedupeKey      string
}
