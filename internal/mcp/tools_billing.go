package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vmonares/atelierdesk/internal/domain/billing"
	"github.com/vmonares/atelierdesk/internal/domain/payment"
)

type paymentListOutput struct {
	Payments []payment.Payment `json:"payments"`
}

type paymentOutput struct {
	Payment payment.Payment `json:"payment"`
}

type paymentInput struct {
	Payment payment.Payment `json:"payment" jsonschema:"the full payment record"`
}

type invoiceListOutput struct {
	Invoices []billing.Invoice `json:"invoices"`
}

type invoiceOutput struct {
	Invoice billing.Invoice `json:"invoice"`
}

type invoiceInput struct {
	Invoice billing.Invoice `json:"invoice" jsonschema:"the full invoice; totals are recomputed from the items"`
}

type invoiceItemInput struct {
	InvoiceID string              `json:"invoiceId"`
	Item      billing.InvoiceItem `json:"item"`
}

type invoiceStatusInput struct {
	ID     string `json:"id"`
	Status string `json:"status" jsonschema:"draft, sent, paid or overdue"`
}

func registerBillingTools(server *sdkmcp.Server, deps Deps) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_payments",
		Description: "List all payments",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, paymentListOutput, error) {
		return nil, paymentListOutput{Payments: deps.Payments.List()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_payment",
		Description: "Register an expected payment",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in paymentInput) (*sdkmcp.CallToolResult, paymentOutput, error) {
		created, err := deps.Payments.Create(ctx, in.Payment)
		if err != nil {
			return nil, paymentOutput{}, MapError(err)
		}
		return nil, paymentOutput{Payment: created}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_payment",
		Description: "Replace a payment record",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in paymentInput) (*sdkmcp.CallToolResult, paymentOutput, error) {
		deps.Payments.Update(ctx, in.Payment)
		return nil, paymentOutput{Payment: in.Payment}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "mark_payment_paid",
		Description: "Mark a payment as received",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Payments.MarkPaid(ctx, in.ID)
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_payment",
		Description: "Delete a payment",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Payments.Delete(ctx, in.ID)
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_invoices",
		Description: "List all invoices",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, invoiceListOutput, error) {
		return nil, invoiceListOutput{Invoices: deps.Invoices.List()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_invoice",
		Description: "Get a single invoice by id",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, invoiceOutput, error) {
		inv, ok := deps.Invoices.Get(in.ID)
		if !ok {
			return nil, invoiceOutput{}, MapError(billing.ErrInvoiceNotFound)
		}
		return nil, invoiceOutput{Invoice: inv}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_invoice",
		Description: "Create an invoice; subtotal, tax and total are computed from the line items",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in invoiceInput) (*sdkmcp.CallToolResult, invoiceOutput, error) {
		created, err := deps.Invoices.Create(ctx, in.Invoice)
		if err != nil {
			return nil, invoiceOutput{}, MapError(err)
		}
		return nil, invoiceOutput{Invoice: created}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_invoice",
		Description: "Replace an invoice; totals are recomputed",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in invoiceInput) (*sdkmcp.CallToolResult, invoiceOutput, error) {
		updated, err := deps.Invoices.Update(ctx, in.Invoice)
		if err != nil {
			return nil, invoiceOutput{}, MapError(err)
		}
		return nil, invoiceOutput{Invoice: updated}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_invoice_item",
		Description: "Replace one line item; its total and the invoice totals are recomputed",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in invoiceItemInput) (*sdkmcp.CallToolResult, invoiceOutput, error) {
		updated, err := deps.Invoices.UpdateItem(ctx, in.InvoiceID, in.Item)
		if err != nil {
			return nil, invoiceOutput{}, MapError(err)
		}
		return nil, invoiceOutput{Invoice: updated}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_invoice_status",
		Description: "Move an invoice through its lifecycle",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in invoiceStatusInput) (*sdkmcp.CallToolResult, invoiceOutput, error) {
		updated, err := deps.Invoices.SetStatus(ctx, in.ID, billing.InvoiceStatus(in.Status))
		if err != nil {
			return nil, invoiceOutput{}, MapError(err)
		}
		return nil, invoiceOutput{Invoice: updated}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_invoice",
		Description: "Delete an invoice",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Invoices.Delete(ctx, in.ID)
		return nil, emptyInput{}, nil
	})
}
