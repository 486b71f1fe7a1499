package billing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvoiceNotFound is returned when an invoice id does not exist.
var ErrInvoiceNotFound = errors.New("invoice not found")

// FieldErrors maps invoice field names to validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return strings.Join(parts, "; ")
}

// Validate checks an invoice before create or update.
func Validate(inv Invoice) error {
	errs := FieldErrors{}
	if inv.ClientName == "" {
		errs["client"] = "client is required"
	}
	if inv.IssueDate.IsZero() {
		errs["issueDate"] = "issue date is required"
	}
	if inv.DueDate.IsZero() {
		errs["dueDate"] = "due date is required"
	}
	if !inv.IssueDate.IsZero() && !inv.DueDate.IsZero() && inv.DueDate.Before(inv.IssueDate) {
		errs["dueDate"] = "due date must not precede issue date"
	}
	if len(inv.Items) == 0 {
		errs["items"] = "at least one line item is required"
	}
	for _, it := range inv.Items {
		if it.Description == "" {
			errs["items"] = "every line item needs a description"
		}
		if it.Quantity <= 0 {
			errs["items"] = "quantities must be positive"
		}
		if it.UnitPrice <= 0 {
			errs["items"] = "unit prices must be positive"
		}
	}
	if inv.TaxPercent < 0 {
		errs["taxPercent"] = "tax percent must not be negative"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
