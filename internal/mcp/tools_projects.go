package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vmonares/atelierdesk/internal/domain/files"
	"github.com/vmonares/atelierdesk/internal/domain/project"
	"github.com/vmonares/atelierdesk/internal/domain/visit"
)

type emptyInput struct{}

type idInput struct {
	ID string `json:"id" jsonschema:"the record id"`
}

type projectListOutput struct {
	Projects []project.Project `json:"projects"`
}

type projectOutput struct {
	Project project.Project `json:"project"`
}

type projectInput struct {
	Project project.Project `json:"project" jsonschema:"the full project record"`
}

type taskInput struct {
	ProjectID string       `json:"projectId"`
	Task      project.Task `json:"task"`
}

type taskRefInput struct {
	ProjectID string `json:"projectId"`
	TaskID    string `json:"taskId"`
}

type projectVisitInput struct {
	ProjectID string      `json:"projectId"`
	Visit     visit.Visit `json:"visit"`
}

type projectVisitRefInput struct {
	ProjectID string `json:"projectId"`
	VisitID   string `json:"visitId"`
}

type photoInput struct {
	ProjectID string      `json:"projectId"`
	Photo     files.Photo `json:"photo"`
}

type photoRefInput struct {
	ProjectID string `json:"projectId"`
	PhotoID   string `json:"photoId"`
}

type receiptInput struct {
	ProjectID string        `json:"projectId"`
	Receipt   files.Receipt `json:"receipt"`
}

type receiptRefInput struct {
	ProjectID string `json:"projectId"`
	ReceiptID string `json:"receiptId"`
}

func registerProjectTools(server *sdkmcp.Server, deps Deps) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with their tasks and visits",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, projectListOutput, error) {
		return nil, projectListOutput{Projects: deps.Projects.List()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a single project by id",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		p, err := deps.Projects.Get(in.ID)
		if err != nil {
			return nil, projectOutput{}, MapError(err)
		}
		return nil, projectOutput{Project: p}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a project. The client is created automatically when no client with that name exists",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		created, err := deps.Projects.Create(ctx, in.Project)
		if err != nil {
			return nil, projectOutput{}, MapError(err)
		}
		return nil, projectOutput{Project: created}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project",
		Description: "Replace a project record. Changing the client name relinks the project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		if err := deps.Projects.Update(ctx, in.Project); err != nil {
			return nil, projectOutput{}, MapError(err)
		}
		return nil, projectOutput{Project: in.Project}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project and its stored photos and receipts",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Projects.Delete(ctx, in.ID)
		deps.Files.PurgeProject(ctx, in.ID)
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_task",
		Description: "Add a task to a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in taskInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		if _, err := deps.Projects.AddTask(ctx, in.ProjectID, in.Task); err != nil {
			return nil, projectOutput{}, MapError(err)
		}
		return projectByID(deps, in.ProjectID)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_task",
		Description: "Replace a task on a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in taskInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		if err := deps.Projects.UpdateTask(ctx, in.ProjectID, in.Task); err != nil {
			return nil, projectOutput{}, MapError(err)
		}
		return projectByID(deps, in.ProjectID)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_task",
		Description: "Flip a task's completion and recompute the project progress",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in taskRefInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		if err := deps.Projects.ToggleTask(ctx, in.ProjectID, in.TaskID); err != nil {
			return nil, projectOutput{}, MapError(err)
		}
		return projectByID(deps, in.ProjectID)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_task",
		Description: "Remove a task from a project and recompute the progress",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in taskRefInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		if err := deps.Projects.DeleteTask(ctx, in.ProjectID, in.TaskID); err != nil {
			return nil, projectOutput{}, MapError(err)
		}
		return projectByID(deps, in.ProjectID)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_project_visit",
		Description: "Attach a site visit to a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectVisitInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		if _, err := deps.Projects.AddVisit(ctx, in.ProjectID, in.Visit); err != nil {
			return nil, projectOutput{}, MapError(err)
		}
		return projectByID(deps, in.ProjectID)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project_visit",
		Description: "Replace a visit attached to a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectVisitInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		if err := deps.Projects.UpdateVisit(ctx, in.ProjectID, in.Visit); err != nil {
			return nil, projectOutput{}, MapError(err)
		}
		return projectByID(deps, in.ProjectID)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_project_visit",
		Description: "Flip the completion flag on a visit attached to a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectVisitRefInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		if err := deps.Projects.ToggleVisit(ctx, in.ProjectID, in.VisitID); err != nil {
			return nil, projectOutput{}, MapError(err)
		}
		return projectByID(deps, in.ProjectID)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project_visit",
		Description: "Remove a visit from a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectVisitRefInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		if err := deps.Projects.DeleteVisit(ctx, in.ProjectID, in.VisitID); err != nil {
			return nil, projectOutput{}, MapError(err)
		}
		return projectByID(deps, in.ProjectID)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_photos",
		Description: "List the photos stored for a project, newest first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct {
		ProjectID string `json:"projectId"`
	}) (*sdkmcp.CallToolResult, struct {
		Photos []files.Photo `json:"photos"`
	}, error) {
		return nil, struct {
			Photos []files.Photo `json:"photos"`
		}{Photos: deps.Files.Photos(ctx, in.ProjectID)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_photo",
		Description: "Store a photo for a project. The file name is sanitized and timestamped",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in photoInput) (*sdkmcp.CallToolResult, struct {
		Photo files.Photo `json:"photo"`
	}, error) {
		stored := deps.Files.AddPhoto(ctx, in.ProjectID, in.Photo)
		return nil, struct {
			Photo files.Photo `json:"photo"`
		}{Photo: stored}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_photo",
		Description: "Remove a photo from a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in photoRefInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Files.DeletePhoto(ctx, in.ProjectID, in.PhotoID)
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_receipts",
		Description: "List the receipts stored for a project, newest first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct {
		ProjectID string `json:"projectId"`
	}) (*sdkmcp.CallToolResult, struct {
		Receipts []files.Receipt `json:"receipts"`
	}, error) {
		return nil, struct {
			Receipts []files.Receipt `json:"receipts"`
		}{Receipts: deps.Files.Receipts(ctx, in.ProjectID)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_receipt",
		Description: "Store a receipt for a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in receiptInput) (*sdkmcp.CallToolResult, struct {
		Receipt files.Receipt `json:"receipt"`
	}, error) {
		stored := deps.Files.AddReceipt(ctx, in.ProjectID, in.Receipt)
		return nil, struct {
			Receipt files.Receipt `json:"receipt"`
		}{Receipt: stored}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_receipt",
		Description: "Remove a receipt from a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in receiptRefInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Files.DeleteReceipt(ctx, in.ProjectID, in.ReceiptID)
		return nil, emptyInput{}, nil
	})
}

func projectByID(deps Deps, id string) (*sdkmcp.CallToolResult, projectOutput, error) {
	p, err := deps.Projects.Get(id)
	if err != nil {
		return nil, projectOutput{}, MapError(err)
	}
	return nil, projectOutput{Project: p}, nil
}
