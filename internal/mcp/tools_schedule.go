package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vmonares/atelierdesk/internal/domain/calendar"
	"github.com/vmonares/atelierdesk/internal/domain/visit"
)

type visitListOutput struct {
	Visits []visit.Visit `json:"visits"`
}

type visitOutput struct {
	Visit visit.Visit `json:"visit"`
}

type visitInput struct {
	Visit visit.Visit `json:"visit" jsonschema:"the full visit record"`
}

type completeVisitInput struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

type eventListOutput struct {
	Events []calendar.Event `json:"events"`
}

type eventOutput struct {
	Event calendar.Event `json:"event"`
}

type eventInput struct {
	Event calendar.Event `json:"event" jsonschema:"the full calendar event"`
}

func registerScheduleTools(server *sdkmcp.Server, deps Deps) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_visits",
		Description: "List all standalone site visits",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, visitListOutput, error) {
		return nil, visitListOutput{Visits: deps.Visits.List()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "upcoming_visits",
		Description: "List incomplete visits scheduled for today or later",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, visitListOutput, error) {
		return nil, visitListOutput{Visits: deps.Visits.Upcoming(time.Now())}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_visit",
		Description: "Schedule a site visit",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in visitInput) (*sdkmcp.CallToolResult, visitOutput, error) {
		created, err := deps.Visits.Create(ctx, in.Visit)
		if err != nil {
			return nil, visitOutput{}, MapError(err)
		}
		return nil, visitOutput{Visit: created}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_visit",
		Description: "Replace a visit record",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in visitInput) (*sdkmcp.CallToolResult, visitOutput, error) {
		deps.Visits.Update(ctx, in.Visit)
		return nil, visitOutput{Visit: in.Visit}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "complete_visit",
		Description: "Mark a visit completed or reopen it",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in completeVisitInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Visits.Complete(ctx, in.ID, in.Completed)
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_visit",
		Description: "Delete a visit",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Visits.Delete(ctx, in.ID)
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_events",
		Description: "List all calendar events",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, eventListOutput, error) {
		return nil, eventListOutput{Events: deps.Events.List()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_event",
		Description: "Add a calendar event",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in eventInput) (*sdkmcp.CallToolResult, eventOutput, error) {
		created, err := deps.Events.Create(ctx, in.Event)
		if err != nil {
			return nil, eventOutput{}, MapError(err)
		}
		return nil, eventOutput{Event: created}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_event",
		Description: "Replace a calendar event",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in eventInput) (*sdkmcp.CallToolResult, eventOutput, error) {
		deps.Events.Update(ctx, in.Event)
		return nil, eventOutput{Event: in.Event}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_event",
		Description: "Delete a calendar event",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Events.Delete(ctx, in.ID)
		return nil, emptyInput{}, nil
	})
}
