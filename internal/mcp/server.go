// Package mcp exposes the training history to LLM clients over the Model
// Context Protocol. It can run against the in-process manager or a remote
// LiftLog instance reached over its REST API.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog workout tracker. Query the training plan, finished sessions, per-day volume, per-exercise load progression, and the shared exercise catalog."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetPlan, Handler: h.getPlan},
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolGetVolumeByDate, Handler: h.getVolumeByDate},
		server.ServerTool{Tool: toolGetLoadEvolution, Handler: h.getLoadEvolution},
		server.ServerTool{Tool: toolGetGroupDistribution, Handler: h.getGroupDistribution},
		server.ServerTool{Tool: toolGetCatalog, Handler: h.getCatalog},
	)

	s.AddResources(
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
		server.ServerResource{Resource: resTrainingPlan, Handler: h.trainingPlan},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentSessions = mcp.NewResource(
	"liftlog://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("Workout sessions from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resTrainingPlan = mcp.NewResource(
	"liftlog://training_plan",
	"Training Plan",
	mcp.WithResourceDescription("The user's categories, exercises, weekly schedule and settings"),
	mcp.WithMIMEType("application/json"),
)
