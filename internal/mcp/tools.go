package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pbaille/ht/internal/domain"
	"github.com/pbaille/ht/internal/stats"
	"github.com/pbaille/ht/internal/store"
)

func registerTools(s *server.MCPServer, st *store.Store) {
	registerPingTool(s)
	registerLogEntryTool(s, st)
	registerGetTodayEntryTool(s, st)
	registerListEntriesTool(s, st)
	registerUpdateEntryTool(s, st)
	registerDeleteEntryTool(s, st)
	registerGetStatsTool(s, st)
}

func registerPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the tracker MCP server is alive."),
	)
	s.AddTool(pingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong"), nil
	})
}

// entryInputFromArgs pulls the shared content arguments out of a tool request.
func entryInputFromArgs(args map[string]interface{}) (domain.EntryInput, error) {
	score, ok := args["score"].(float64)
	if !ok {
		return domain.EntryInput{}, fmt.Errorf("'score' parameter is required and must be a number")
	}

	in := domain.EntryInput{Score: score}

	if notes, ok := args["notes"].(string); ok {
		in.Notes = notes
	}
	if timeOfDay, ok := args["time_of_day"].(string); ok {
		in.TimeOfDay = timeOfDay
	}
	causesStr, _ := args["potential_causes"].(string)
	locationsStr, _ := args["locations"].(string)
	in.PotentialCauses = parseLabels(causesStr)
	in.Locations = parseLabels(locationsStr)

	return domain.Validate(in)
}

func parseLabels(labelsStr string) []string {
	if labelsStr == "" {
		return nil
	}
	var labels []string
	for _, l := range strings.Split(labelsStr, ",") {
		if trimmed := strings.TrimSpace(l); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}
	return labels
}

func registerLogEntryTool(s *server.MCPServer, st *store.Store) {
	logEntry := mcp.NewTool("log_entry",
		mcp.WithDescription("Records today's headache entry. Fails if an entry already exists for the current local day."),
		mcp.WithNumber("score", mcp.Required(), mcp.Description("Headache intensity from 0 (none) to 5 (extreme).")),
		mcp.WithString("notes", mcp.Description("Optional free-form notes.")),
		mcp.WithString("potential_causes", mcp.Description("Optional comma-separated list of suspected causes, e.g. 'Caffeine, Stress'.")),
		mcp.WithString("locations", mcp.Description("Optional comma-separated list of headache locations, e.g. 'Left temple'.")),
		mcp.WithString("time_of_day", mcp.Description("Optional time of day: Morning, Noon, Afternoon or Evening.")),
	)
	s.AddTool(logEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := entryInputFromArgs(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entry, err := st.AddEntry(ctx, in)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateDay) {
				return mcp.NewToolResultError("An entry already exists for today. Use update_entry to change it."), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to log entry: %v", err)), nil
		}

		return jsonResult(entry)
	})
}

func registerGetTodayEntryTool(s *server.MCPServer, st *store.Store) {
	todayTool := mcp.NewTool("get_today_entry",
		mcp.WithDescription("Returns today's entry, or null if nothing has been logged yet."),
	)
	s.AddTool(todayTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entry, err := st.TodayEntry(ctx, time.Now())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to look up today's entry: %v", err)), nil
		}
		if entry == nil {
			return mcp.NewToolResultText("null"), nil
		}
		return jsonResult(entry)
	})
}

func registerListEntriesTool(s *server.MCPServer, st *store.Store) {
	listTool := mcp.NewTool("list_entries",
		mcp.WithDescription("Lists all recorded entries, newest first."),
	)
	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := st.ListEntries(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}
		if len(entries) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(entries)
	})
}

func registerUpdateEntryTool(s *server.MCPServer, st *store.Store) {
	updateTool := mcp.NewTool("update_entry",
		mcp.WithDescription("Replaces the content of an existing entry. The creation timestamp never changes."),
		mcp.WithString("id", mcp.Required(), mcp.Description("The id of the entry to update.")),
		mcp.WithNumber("score", mcp.Required(), mcp.Description("Headache intensity from 0 (none) to 5 (extreme).")),
		mcp.WithString("notes", mcp.Description("Optional free-form notes.")),
		mcp.WithString("potential_causes", mcp.Description("Optional comma-separated list of suspected causes.")),
		mcp.WithString("locations", mcp.Description("Optional comma-separated list of headache locations.")),
		mcp.WithString("time_of_day", mcp.Description("Optional time of day: Morning, Noon, Afternoon or Evening.")),
	)
	s.AddTool(updateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := request.Params.Arguments["id"].(string)
		if !ok || id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		in, err := entryInputFromArgs(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entry, err := st.UpdateEntry(ctx, id, in)
		if err != nil {
			if errors.Is(err, domain.ErrEntryNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("Entry '%s' not found.", id)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update entry: %v", err)), nil
		}

		return jsonResult(entry)
	})
}

func registerDeleteEntryTool(s *server.MCPServer, st *store.Store) {
	deleteTool := mcp.NewTool("delete_entry",
		mcp.WithDescription("Permanently deletes an entry."),
		mcp.WithString("id", mcp.Required(), mcp.Description("The id of the entry to delete.")),
	)
	s.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := request.Params.Arguments["id"].(string)
		if !ok || id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}

		if err := st.DeleteEntry(ctx, id); err != nil {
			if errors.Is(err, domain.ErrEntryNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("Entry '%s' not found.", id)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete entry: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Entry '%s' deleted.", id)), nil
	})
}

func registerGetStatsTool(s *server.MCPServer, st *store.Store) {
	statsTool := mcp.NewTool("get_stats",
		mcp.WithDescription("Returns aggregate statistics: total count, running average, week high/low and the 30-day series."),
	)
	s.AddTool(statsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := st.ListEntries(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}
		return jsonResult(stats.Aggregate(entries, time.Now()))
	})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
