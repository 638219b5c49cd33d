package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/fitness"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetRecentWorkouts = mcp.NewTool("get_recent_workouts",
	mcp.WithDescription("Recent workouts grouped by day, most recent first. Each session lists its exercises with weight, set count and reps taken from the first set."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions. Defaults to the server's recent limit (20).")),
)

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("Every workout grouped by month, plus all-time totals of workouts, sets and volume (kg)."),
	mcp.WithString("locale", mcp.Description("Month label language. Defaults to the server setting."), mcp.Enum("zh", "en")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("A single workout session with its raw sets and aggregated exercises."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout session UUID")),
)

var toolGetWeeklyStats = mcp.NewTool("get_weekly_stats",
	mcp.WithDescription("Statistics for the Sunday-to-Saturday week: workout count, sets, volume, sets per category, whether today had a workout, the current day streak and weekly goal progress."),
	mcp.WithString("date", mcp.Description("Any day of the week to report (YYYY-MM-DD). Defaults to today.")),
)

var toolListExerciseTypes = mcp.NewTool("list_exercise_types",
	mcp.WithDescription("List all exercise types with their categories."),
)

var toolGetDailyOverview = mcp.NewTool("get_daily_overview",
	mcp.WithDescription("Today's overview: greeting, frog (daily priority) completion, TIL count and weekly workout days against the goal."),
)

// --- Tool handlers ---

func (h *handlers) getRecentWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}

	groups, err := h.ds.RecentWorkouts(ctx, limit)
	if err != nil {
		h.log.Error("mcp get_recent_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(groups)
}

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	history, err := h.ds.History(ctx, req.GetString("locale", ""))
	if err != nil {
		h.log.Error("mcp get_workout_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(history)
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError("invalid id: " + err.Error()), nil
	}

	detail, err := h.ds.Workout(ctx, id)
	if err != nil {
		h.log.Error("mcp get_workout", "id", id, "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(detail)
}

func (h *handlers) getWeeklyStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := req.GetString("date", "")
	if date != "" {
		if _, err := fitness.ParseDate(date); err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
	}

	weekly, err := h.ds.Weekly(ctx, date)
	if err != nil {
		h.log.Error("mcp get_weekly_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(weekly)
}

func (h *handlers) listExerciseTypes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types, err := h.ds.ExerciseTypes(ctx)
	if err != nil {
		h.log.Error("mcp list_exercise_types", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(types)
}

func (h *handlers) getDailyOverview(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	home, err := h.ds.Home(ctx)
	if err != nil {
		h.log.Error("mcp get_daily_overview", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(home)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
