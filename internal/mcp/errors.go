package mcp

import (
	"errors"
	"fmt"

	"github.com/vmonares/atelierdesk/internal/auth"
	"github.com/vmonares/atelierdesk/internal/domain/billing"
	"github.com/vmonares/atelierdesk/internal/domain/client"
	"github.com/vmonares/atelierdesk/internal/domain/project"
)

// APIError is the error shape tool handlers return to clients.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError converts domain errors to API errors. Unrecognized errors pass
// through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var projectFields project.FieldErrors
	if errors.As(err, &projectFields) {
		return &APIError{Code: "VALIDATION_FAILED", Message: "project validation failed", Details: projectFields}
	}
	var invoiceFields billing.FieldErrors
	if errors.As(err, &invoiceFields) {
		return &APIError{Code: "VALIDATION_FAILED", Message: "invoice validation failed", Details: invoiceFields}
	}

	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the project id"}
	case errors.Is(err, client.ErrClientNotFound):
		return &APIError{Code: "CLIENT_NOT_FOUND", Message: "client not found", RecoveryHint: "Check the client id"}
	case errors.Is(err, billing.ErrInvoiceNotFound):
		return &APIError{Code: "INVOICE_NOT_FOUND", Message: "invoice not found", RecoveryHint: "Check the invoice id"}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &APIError{Code: "INVALID_CREDENTIALS", Message: "invalid credentials"}
	case errors.Is(err, auth.ErrWeakPassword):
		return &APIError{Code: "WEAK_PASSWORD", Message: "password must be at least 6 characters"}
	default:
		return err
	}
}
