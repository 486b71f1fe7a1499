package project

import (
	"time"

	"github.com/vmonares/atelierdesk/internal/domain/visit"
)

// Status is the project workflow state.
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
)

// Priority grades projects and tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Project is one commission of the practice. ClientID is the authoritative
// link; ClientName is kept denormalized for display and exports.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	ClientID    string        `json:"clientId"`
	ClientName  string        `json:"client"`
	Status      Status        `json:"status"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Budget      float64       `json:"budget"`
	Progress    int           `json:"progress"`
	Priority    Priority      `json:"priority"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	Tasks       []Task        `json:"tasks"`
	Visits      []visit.Visit `json:"visits"`
}

// Task is a unit of work owned by a project.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	AssignedTo  string    `json:"assignedTo,omitempty"`
}

// computeProgress derives project progress from task completion.
func computeProgress(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return int(float64(done)/float64(len(tasks))*100 + 0.5)
}
