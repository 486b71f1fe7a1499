package project

import "strings"

// Validate checks the fields the project form requires. It returns nil or a
// FieldErrors with one message per offending field.
func Validate(p Project) error {
	errs := FieldErrors{}

	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(p.ClientName) == "" {
		errs["client"] = "client is required"
	}
	if strings.TrimSpace(p.Location) == "" {
		errs["location"] = "location is required"
	}
	if p.StartDate.IsZero() {
		errs["startDate"] = "start date is required"
	}
	if p.EndDate.IsZero() {
		errs["endDate"] = "end date is required"
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && !p.StartDate.Before(p.EndDate) {
		errs["endDate"] = "end date must be after start date"
	}
	if p.Budget < 0 {
		errs["budget"] = "budget must be a valid amount"
	}
	if p.Progress < 0 || p.Progress > 100 {
		errs["progress"] = "progress must be between 0 and 100"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
