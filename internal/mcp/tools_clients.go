package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vmonares/atelierdesk/internal/domain/client"
)

type clientListOutput struct {
	Clients []client.Client `json:"clients"`
}

type clientOutput struct {
	Client client.Client `json:"client"`
}

type clientInput struct {
	Client client.Client `json:"client" jsonschema:"the full client record"`
}

type clientStatsInput struct {
	SortBy     string `json:"sortBy,omitempty" jsonschema:"name, projects or date"`
	Descending bool   `json:"descending,omitempty"`
}

type clientStatsOutput struct {
	Clients  []client.WithStats `json:"clients"`
	Overview client.Overview    `json:"overview"`
}

func registerClientTools(server *sdkmcp.Server, deps Deps) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_clients",
		Description: "List all clients",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, clientListOutput, error) {
		return nil, clientListOutput{Clients: deps.Clients.List()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_client",
		Description: "Get a single client by id",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, clientOutput, error) {
		c, err := deps.Clients.Get(in.ID)
		if err != nil {
			return nil, clientOutput{}, MapError(err)
		}
		return nil, clientOutput{Client: c}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_client",
		Description: "Create a client",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in clientInput) (*sdkmcp.CallToolResult, clientOutput, error) {
		created, err := deps.Clients.Create(ctx, in.Client)
		if err != nil {
			return nil, clientOutput{}, MapError(err)
		}
		return nil, clientOutput{Client: created}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_client",
		Description: "Replace a client record",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in clientInput) (*sdkmcp.CallToolResult, clientOutput, error) {
		deps.Clients.Update(ctx, in.Client)
		return nil, clientOutput{Client: in.Client}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_client",
		Description: "Delete a client. Their projects remain but lose the link",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Clients.Delete(ctx, in.ID)
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "client_stats",
		Description: "List clients with project, budget and revenue figures, sorted",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in clientStatsInput) (*sdkmcp.CallToolResult, clientStatsOutput, error) {
		clients := deps.Clients.List()
		projects := deps.Projects.List()
		payments := deps.Payments.List()

		key := client.SortKey(in.SortBy)
		if key == "" {
			key = client.SortByName
		}
		return nil, clientStatsOutput{
			Clients:  client.SortedList(clients, projects, payments, key, in.Descending),
			Overview: client.ComputeOverview(clients, projects, payments),
		}, nil
	})
}
