package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/dashboard"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/export"
	"github.com/vmonares/atelierdesk/internal/store"
)

type dashboardOutput struct {
	Stats dashboard.Stats `json:"stats"`
}

type notificationListOutput struct {
	Notifications []notify.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

type activityInput struct {
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum entries to return, 0 for all"`
	Category string `json:"category,omitempty" jsonschema:"filter by category"`
	ActorID  string `json:"actorId,omitempty" jsonschema:"filter by actor"`
}

type activityOutput struct {
	Entries []audit.Entry `json:"entries"`
}

type activityStatsOutput struct {
	Stats audit.Stats `json:"stats"`
}

type clearActivityInput struct {
	OlderThanDays int `json:"olderThanDays" jsonschema:"remove entries older than this many days; 0 clears everything"`
}

type fileOutput struct {
	FileName string `json:"fileName"`
	Data     string `json:"data" jsonschema:"base64-encoded file contents"`
}

type restoreInput struct {
	Data string `json:"data" jsonschema:"the backup JSON document"`
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type themeInput struct {
	Theme string `json:"theme" jsonschema:"light or dark"`
}

type themeOutput struct {
	Theme string `json:"theme"`
}

// exportFailed raises an error notification before the failure is returned
// to the caller.
func exportFailed(ctx context.Context, deps Deps, what string, err error) error {
	deps.Notifications.Push(ctx, notify.Draft{
		Title:   "Export Failed",
		Message: what + " export failed: " + err.Error(),
		Type:    notify.TypeError,
	})
	return err
}

func registerSystemTools(server *sdkmcp.Server, deps Deps) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "dashboard_stats",
		Description: "Get the dashboard snapshot: project, budget, revenue and deadline figures",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, dashboardOutput, error) {
		stats := dashboard.Compute(deps.Projects.List(), deps.Payments.List(), deps.Visits.List(), time.Now())
		return nil, dashboardOutput{Stats: stats}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_notifications",
		Description: "List notifications, newest first, with the unread count",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, notificationListOutput, error) {
		return nil, notificationListOutput{
			Notifications: deps.Notifications.List(),
			UnreadCount:   deps.Notifications.UnreadCount(),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "mark_notification_read",
		Description: "Mark one notification as read",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Notifications.MarkRead(ctx, in.ID)
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "mark_all_notifications_read",
		Description: "Mark every notification as read",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Notifications.MarkAllRead(ctx)
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_notification",
		Description: "Delete one notification",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in idInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Notifications.Delete(ctx, in.ID)
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "clear_notifications",
		Description: "Delete every notification",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Notifications.Clear(ctx)
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List activity log entries, newest first, optionally filtered",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in activityInput) (*sdkmcp.CallToolResult, activityOutput, error) {
		var entries []audit.Entry
		switch {
		case in.Category != "":
			entries = deps.Activity.ByCategory(audit.Category(in.Category), in.Limit)
		case in.ActorID != "":
			entries = deps.Activity.ByActor(in.ActorID, in.Limit)
		default:
			entries = deps.Activity.Recent(in.Limit)
		}
		return nil, activityOutput{Entries: entries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_stats",
		Description: "Summarize the activity log by category, severity and recency",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, activityStatsOutput, error) {
		return nil, activityStatsOutput{Stats: deps.Activity.Stats()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "clear_activity",
		Description: "Remove old activity log entries",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in clearActivityInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		if in.OlderThanDays <= 0 {
			deps.Activity.Clear(ctx)
		} else {
			deps.Activity.ClearOlderThan(ctx, in.OlderThanDays)
		}
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_activity",
		Description: "Export the activity log as JSON",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, fileOutput, error) {
		data, err := deps.Activity.ExportJSON()
		if err != nil {
			return nil, fileOutput{}, exportFailed(ctx, deps, "Activity log", err)
		}
		return nil, fileOutput{
			FileName: "activity-" + time.Now().Format("2006-01-02") + ".json",
			Data:     base64.StdEncoding.EncodeToString(data),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_backup",
		Description: "Export every collection as one backup JSON document",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, fileOutput, error) {
		data, err := deps.Backup.Export(ctx)
		if err != nil {
			return nil, fileOutput{}, exportFailed(ctx, deps, "Backup", err)
		}
		return nil, fileOutput{
			FileName: "backup-" + time.Now().Format("2006-01-02") + ".json",
			Data:     base64.StdEncoding.EncodeToString(data),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "restore_backup",
		Description: "Restore from a backup document. Collections present in the file replace current data; absent ones are untouched",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in restoreInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		raw := []byte(in.Data)
		if decoded, err := base64.StdEncoding.DecodeString(in.Data); err == nil && json.Valid(decoded) {
			raw = decoded
		}
		if err := deps.Backup.Restore(ctx, raw); err != nil {
			return nil, emptyInput{}, err
		}
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_clients_xlsx",
		Description: "Export the client list with revenue figures as a spreadsheet",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, fileOutput, error) {
		data, err := export.ClientsXLSX(deps.Clients.List(), deps.Projects.List(), deps.Payments.List())
		if err != nil {
			return nil, fileOutput{}, exportFailed(ctx, deps, "Client list", err)
		}
		return nil, fileOutput{
			FileName: "clients-" + time.Now().Format("2006-01-02") + ".xlsx",
			Data:     base64.StdEncoding.EncodeToString(data),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_projects_xlsx",
		Description: "Export the project list as a spreadsheet",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, fileOutput, error) {
		data, err := export.ProjectsXLSX(deps.Projects.List())
		if err != nil {
			return nil, fileOutput{}, exportFailed(ctx, deps, "Project list", err)
		}
		return nil, fileOutput{
			FileName: "projects-" + time.Now().Format("2006-01-02") + ".xlsx",
			Data:     base64.StdEncoding.EncodeToString(data),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "login",
		Description: "Authenticate with the dashboard credentials",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in loginInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		if err := deps.Account.Login(ctx, in.Username, in.Password); err != nil {
			return nil, emptyInput{}, MapError(err)
		}
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "logout",
		Description: "End the dashboard session",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		deps.Account.Logout(ctx)
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "change_password",
		Description: "Change the account password after verifying the current one",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in changePasswordInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		if err := deps.Account.ChangePassword(ctx, in.CurrentPassword, in.NewPassword); err != nil {
			return nil, emptyInput{}, MapError(err)
		}
		return nil, emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_theme",
		Description: "Get the saved UI theme",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, themeOutput, error) {
		theme := "light"
		if err := deps.Store.Load(ctx, store.KeyTheme, &theme); err != nil {
			theme = "light"
		}
		return nil, themeOutput{Theme: theme}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_theme",
		Description: "Save the UI theme",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in themeInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		if err := deps.Store.Save(ctx, store.KeyTheme, in.Theme); err != nil {
			return nil, emptyInput{}, err
		}
		return nil, emptyInput{}, nil
	})
}
