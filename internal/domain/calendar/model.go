package calendar

import "time"

// EventType classifies a calendar entry.
type EventType string

const (
	TypeMeeting  EventType = "meeting"
	TypeVisit    EventType = "visit"
	TypeDeadline EventType = "deadline"
	TypePayment  EventType = "payment"
	TypeReminder EventType = "reminder"
)

// Event is one calendar entry, optionally tied back to a project.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Type        EventType `json:"type"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	ProjectID   string    `json:"projectId,omitempty"`
}
