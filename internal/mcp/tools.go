package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/liftlog/internal/models"
)

// --- Tool definitions ---

var toolGetPlan = mcp.NewTool("get_plan",
	mcp.WithDescription("Retrieve the training plan: categories with their split group letters, exercises with default sets/reps/load, the weekly schedule, and rest timer settings."),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("Retrieve finished workout sessions with duration, volume, notes, covered groups, and per-exercise completed series."),
	mcp.WithString("start", mcp.Description("Earliest session date (YYYY-MM-DD). Optional.")),
	mcp.WithString("end", mcp.Description("Latest session date (YYYY-MM-DD). Optional.")),
)

var toolGetVolumeByDate = mcp.NewTool("get_volume_by_date",
	mcp.WithDescription("Total training volume (load x reps over completed series) summed per calendar day, ascending."),
)

var toolGetLoadEvolution = mcp.NewTool("get_load_evolution",
	mcp.WithDescription("Per-session load progression for one exercise. Reports the first recorded series' load of each session containing the exercise."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise id from the training plan")),
)

var toolGetGroupDistribution = mcp.NewTool("get_group_distribution",
	mcp.WithDescription("Number of sessions covering each split group letter (A-F). Sessions spanning several groups count once per group."),
)

var toolGetCatalog = mcp.NewTool("get_catalog",
	mcp.WithDescription("List the shared, admin-curated exercise catalog with media links."),
)

// --- Tool handlers ---

func (h *handlers) getPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := h.ds.State(ctx)
	if err != nil {
		h.log.Error("mcp get_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"categories": state.Categories,
		"exercises":  state.Exercises,
		"schedule":   state.Schedule,
		"settings":   state.Settings,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.Sessions(ctx)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	// Session dates are YYYY-MM-DD, so string comparison is date comparison.
	start := req.GetString("start", "")
	end := req.GetString("end", "")
	if start != "" || end != "" {
		sessions = filterSessions(sessions, start, end)
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func filterSessions(sessions []models.Session, start, end string) []models.Session {
	var out []models.Session
	for _, s := range sessions {
		if start != "" && s.Date < start {
			continue
		}
		if end != "" && s.Date > end {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (h *handlers) getVolumeByDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	points, err := h.ds.VolumeByDate(ctx)
	if err != nil {
		h.log.Error("mcp get_volume_by_date", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(points)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLoadEvolution(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	points, err := h.ds.LoadEvolution(ctx, exerciseID)
	if err != nil {
		h.log.Error("mcp get_load_evolution", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(points)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getGroupDistribution(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	counts, err := h.ds.GroupDistribution(ctx)
	if err != nil {
		h.log.Error("mcp get_group_distribution", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(counts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := h.ds.Catalog(ctx)
	if err != nil {
		h.log.Error("mcp get_catalog", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(items)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
