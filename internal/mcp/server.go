// Package mcp exposes the workout and daily overview views as MCP tools and
// resources.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("lifeops", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("lifeops personal dashboard. Query strength workouts (grouped by day or month, aggregated per exercise), weekly training stats with streak and goal progress, the exercise catalog, and today's overview of frogs and TIL entries. Dates are YYYY-MM-DD; weights are kg."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetRecentWorkouts, Handler: h.getRecentWorkouts},
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetWeeklyStats, Handler: h.getWeeklyStats},
		server.ServerTool{Tool: toolListExerciseTypes, Handler: h.listExerciseTypes},
		server.ServerTool{Tool: toolGetDailyOverview, Handler: h.getDailyOverview},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resWeeklySummary, Handler: h.weeklySummary},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resWeeklySummary = mcp.NewResource(
	"lifeops://weekly_summary",
	"Weekly Summary",
	mcp.WithResourceDescription("This week's workout count, sets, volume, category breakdown, streak and goal progress"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"lifeops://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All exercise types with their categories"),
	mcp.WithMIMEType("application/json"),
)
