package mcp

// Implementation Plan:
// 1. AddScanTool - registers glean_<category>s for one category
// 2. createScanHandler - runs a fresh scan, stores the report, pages items
// 3. Empty sets carry a message naming the reason (no files vs no matches)
// 4. Return as JSON text (mcp-go convention)

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcputils "github.com/mvp-joe/project-glean/internal/mcp-utils"
	"github.com/mvp-joe/project-glean/internal/rules"
	"github.com/mvp-joe/project-glean/internal/scanner"
	"github.com/mvp-joe/project-glean/internal/session"
)

var scanToolDescriptions = map[rules.Category]string{
	rules.Comment: "List every comment in the workspace: line comments (// and #), block comments (/* */) and triple-quoted docstrings. Each item has a label \"<relpath>:<line>\" and the comment text.",
	rules.Log:     "List every logging statement in the workspace (console.log, System.out.println, logger.info/debug/error, print). Each item has a label \"<relpath>:<line>\" and the statement text.",
	rules.Todo:    "List every line containing TODO (case-insensitive) in the workspace. Returns a scan_id; pass it with an item's label and description to glean_resolve_todo to get the source location.",
}

// ScanToolName returns the MCP tool name for a category.
func ScanToolName(c rules.Category) string {
	return "glean_" + string(c) + "s"
}

// AddScanTool registers the scan tool for one category with an MCP server.
func AddScanTool(s *server.MCPServer, category rules.Category, runner ScanRunner, store *session.Store, metrics *ScanMetrics) {
	tool := mcp.NewTool(
		ScanToolName(category),
		mcp.WithDescription(scanToolDescriptions[category]),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of items to return (1-%d, default: %d)", MaxLimit, DefaultLimit))),
		mcp.WithNumber("offset",
			mcp.Description("Number of items to skip, for paging through large result sets (default: 0)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createScanHandler(category, runner, store, metrics))
}

// createScanHandler creates the handler function for a category's scan tool.
func createScanHandler(category rules.Category, runner ScanRunner, store *session.Store, metrics *ScanMetrics) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req ScanRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		offset, limit := req.window()

		start := time.Now()
		report, err := runner.Scan(ctx, category)
		metrics.RecordScan(time.Since(start), report, err)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
		}
		if err := store.Put(report); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to store scan: %v", err)), nil
		}

		rs := report.Set(category)
		items := make([]Item, 0, rs.Len())
		for _, o := range rs.Occurrences {
			items = append(items, toItem(o))
		}

		response := &ScanResponse{
			ScanID:       report.ID,
			Category:     string(category),
			Status:       rs.Status,
			Items:        page(items, offset, limit),
			Total:        len(items),
			Offset:       offset,
			FilesScanned: len(report.Files),
			Skipped:      report.SkippedCount(),
			DurationMs:   report.Duration.Milliseconds(),
		}
		if reason := scanner.EmptyReason(report, rs); reason != nil {
			response.Message = reason.Error()
		}

		return marshalToolResponse(response)
	}
}

// AddStatusTool registers the glean_status tool with an MCP server.
func AddStatusTool(s *server.MCPServer, rootDir string, metrics *ScanMetrics) {
	tool := mcp.NewTool(
		"glean_status",
		mcp.WithDescription("Report the workspace root and statistics about the scans run by this server."),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return marshalToolResponse(&StatusResponse{
			Root:    rootDir,
			Metrics: metrics.GetMetrics(),
		})
	})
}
