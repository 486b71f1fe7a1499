// Package mcp exposes the dashboard operations as MCP tools over stdio or
// streamable HTTP.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vmonares/atelierdesk/internal/auth"
	"github.com/vmonares/atelierdesk/internal/backup"
	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/domain/billing"
	"github.com/vmonares/atelierdesk/internal/domain/calendar"
	"github.com/vmonares/atelierdesk/internal/domain/client"
	"github.com/vmonares/atelierdesk/internal/domain/files"
	"github.com/vmonares/atelierdesk/internal/domain/notify"
	"github.com/vmonares/atelierdesk/internal/domain/payment"
	"github.com/vmonares/atelierdesk/internal/domain/project"
	"github.com/vmonares/atelierdesk/internal/domain/visit"
	"github.com/vmonares/atelierdesk/internal/store"
)

const (
	serverName    = "atelierdesk"
	serverVersion = "1.0.0"
)

// Deps carries the services the tool handlers call into.
type Deps struct {
	Projects      *project.Service
	Clients       *client.Service
	Payments      *payment.Service
	Visits        *visit.Service
	Events        *calendar.Service
	Invoices      *billing.Service
	Notifications *notify.Service
	Activity      *audit.Service
	Files         *files.Service
	Account       *auth.Service
	Backup        *backup.Service
	Store         store.Store
	Logger        *slog.Logger

	// TransportMode is "stdio" or "http". APIToken guards HTTP mode; when
	// empty the server runs open, intended for local use only.
	TransportMode string
	APIToken      string
}

// NewServer builds the MCP server with every tool registered and the
// logging middleware attached.
func NewServer(deps Deps) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	if deps.TransportMode == "http" && deps.APIToken != "" {
		server.AddReceivingMiddleware(TokenAuthMiddleware(deps.APIToken))
	}
	server.AddReceivingMiddleware(LoggingMiddleware(deps.Logger))

	registerProjectTools(server, deps)
	registerClientTools(server, deps)
	registerScheduleTools(server, deps)
	registerBillingTools(server, deps)
	registerSystemTools(server, deps)

	return server
}
