package billing

import "time"

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusSent    InvoiceStatus = "sent"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// InvoiceItem is a billable line. Total is always Quantity times UnitPrice.
type InvoiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// Invoice aggregates line items for a client, optionally tied to a project.
type Invoice struct {
	ID         string        `json:"id"`
	Number     string        `json:"number"`
	ClientName string        `json:"client"`
	ProjectID  string        `json:"projectId,omitempty"`
	IssueDate  time.Time     `json:"issueDate"`
	DueDate    time.Time     `json:"dueDate"`
	Items      []InvoiceItem `json:"items"`
	Subtotal   float64       `json:"subtotal"`
	TaxPercent float64       `json:"taxPercent"`
	Tax        float64       `json:"tax"`
	Total      float64       `json:"total"`
	Status     InvoiceStatus `json:"status"`
	Notes      string        `json:"notes,omitempty"`
}
