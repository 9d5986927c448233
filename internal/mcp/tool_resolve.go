package mcp

// Implementation Plan:
// 1. AddResolveTodoTool - registers glean_resolve_todo
// 2. createResolveTodoHandler - looks up the scan, resolves the selection
// 3. Unknown scans, unresolvable selections and vanished files are tool
//    errors; the client never receives a wrong location

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcputils "github.com/mvp-joe/project-glean/internal/mcp-utils"
	"github.com/mvp-joe/project-glean/internal/navigator"
	"github.com/mvp-joe/project-glean/internal/rules"
	"github.com/mvp-joe/project-glean/internal/session"
)

// AddResolveTodoTool registers the glean_resolve_todo tool with an MCP server.
func AddResolveTodoTool(s *server.MCPServer, store *session.Store) {
	tool := mcp.NewTool(
		"glean_resolve_todo",
		mcp.WithDescription("Resolve a TODO item from a glean_todos result to the file and line to open. Returns a 0-based line and column plus a 1-based \"path:line:col\" target."),
		mcp.WithString("scan_id",
			mcp.Required(),
			mcp.Description("The scan_id returned by glean_todos")),
		mcp.WithString("label",
			mcp.Required(),
			mcp.Description("The item's label, e.g. \"src/app.js:12\"")),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("The item's description (the TODO line text)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, createResolveTodoHandler(store))
}

// createResolveTodoHandler creates the handler function for glean_resolve_todo.
func createResolveTodoHandler(store *session.Store) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req ResolveRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if err := req.validate(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		report, err := store.Get(req.ScanID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sel := navigator.Selection{Label: req.Label, Description: req.Description}
		loc, err := navigator.Navigate(sel, report.Set(rules.Todo))
		switch {
		case errors.Is(err, navigator.ErrNotFound), errors.Is(err, navigator.ErrTargetGone):
			return mcp.NewToolResultError(err.Error()), nil
		case err != nil:
			return nil, err
		}

		return marshalToolResponse(&ResolveResponse{
			Location: loc,
			Target:   loc.String(),
		})
	}
}
