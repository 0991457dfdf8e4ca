// Package mcp exposes the dashboard core as an MCP tool server. It is the
// only surface the presentation layer talks to; nothing here touches storage
// directly.
package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/rosterdesk/internal/catalog"
	"github.com/ganot/rosterdesk/internal/identity"
	"github.com/ganot/rosterdesk/internal/roster"
	"github.com/ganot/rosterdesk/internal/session"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `rosterdesk manages a student roster and course catalog.
Sign in (sign_in or sign_up) before adding students or courses; listing,
filtering and selecting work without authentication. Selection is remembered
across restarts.`

// SessionService defines auth operations needed by MCP.
type SessionService interface {
	Snapshot() session.Session
	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) (*identity.User, error)
	SignOut(ctx context.Context) error
}

// RosterService defines roster operations needed by MCP.
type RosterService interface {
	Add(req roster.AddRequest) (roster.Student, error)
	Select(id string)
	ClearSelection()
	Selected() (roster.Student, bool)
	Get(id string) (roster.Student, error)
	List() []roster.Student
	Filter(term, course string) []roster.Student
	Courses() []string
	Stats() roster.Stats
}

// CatalogService defines catalog operations needed by MCP.
type CatalogService interface {
	List() []catalog.Course
	Search(term string) []catalog.Course
	Add(req catalog.AddRequest) (catalog.Course, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Session SessionService
	Roster  RosterService
	Catalog CatalogService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "rosterdesk",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
