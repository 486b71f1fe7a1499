package audit

import "time"

// Category classifies what part of the system produced an entry.
type Category string

const (
	CategoryAuth    Category = "auth"
	CategoryProject Category = "project"
	CategoryClient  Category = "client"
	CategoryVisitor Category = "visitor"
	CategorySystem  Category = "system"
	CategoryFile    Category = "file"
	CategoryBilling Category = "billing"
)

// Severity grades an entry.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// Entry is one record in the audit trail.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actorId"`
	ActorName string    `json:"actorName"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Category  Category  `json:"category"`
	Severity  Severity  `json:"severity"`
}

// Stats summarizes the trail for the admin view.
type Stats struct {
	Total      int              `json:"total"`
	Categories map[Category]int `json:"categories"`
	Severities map[Severity]int `json:"severities"`
	Today      int              `json:"today"`
	ThisWeek   int              `json:"thisWeek"`
}
