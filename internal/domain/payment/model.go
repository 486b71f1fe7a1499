package payment

import "time"

// Status is the payment workflow state.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Payment is one expected or received payment. Payments live in a single
// global collection and reference their project by id; there is no second,
// project-embedded copy to drift out of sync.
type Payment struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	DueDate     time.Time `json:"dueDate"`
	Status      Status    `json:"status"`
	Description string    `json:"description"`
	ClientName  string    `json:"client"`
	ProjectID   string    `json:"projectId,omitempty"`
}
