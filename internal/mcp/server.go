// Package mcp exposes the estimator and session planner as MCP tools.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/EntireTwix/Progression/internal/plan"
	"github.com/EntireTwix/Progression/internal/weightstore"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the FreeReps user ID injected by the caller.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Deps are the optional collaborators of the tool handlers. A nil Store or
// Performances disables the features that need them.
type Deps struct {
	Store        weightstore.Store
	Performances PerformanceSource
	Warmup       plan.WarmupOptions
}

// New creates an MCP server with all tools registered.
func New(deps Deps, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Progression", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Progression estimates one-rep maxes from a logged set and plans the next session's working set and warm-ups over the weights a lifter owns."),
	)

	h := &handlers{deps: deps, log: log}

	tools := []server.ServerTool{
		{Tool: toolEstimateOneRepMax, Handler: h.estimateOneRepMax},
		{Tool: toolEstimateReps, Handler: h.estimateReps},
		{Tool: toolPlanSession, Handler: h.planSession},
	}
	if deps.Performances != nil {
		tools = append(tools, server.ServerTool{Tool: toolLastPerformance, Handler: h.lastPerformance})
	}
	s.AddTools(tools...)

	return s
}

// handlers holds dependencies for MCP tool handlers.
type handlers struct {
	deps Deps
	log  *slog.Logger
}
