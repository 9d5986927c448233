package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvp-joe/project-glean/internal/navigator"
	"github.com/mvp-joe/project-glean/internal/scanner"
)

// marshalToolResponse marshals a response object to JSON and returns it as an MCP tool result.
func marshalToolResponse(response interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// toItem converts an occurrence into its displayed form.
func toItem(o scanner.Occurrence) Item {
	sel := navigator.SelectionFor(o)
	return Item{
		Label:       sel.Label,
		Description: sel.Description,
		Path:        o.Path,
		Line:        o.Line,
		Rule:        o.Rule,
	}
}

// page returns items[offset:offset+limit] bounded to the slice.
func page(items []Item, offset, limit int) []Item {
	if offset >= len(items) {
		return []Item{}
	}
	return items[offset:min(len(items), offset+limit)]
}
