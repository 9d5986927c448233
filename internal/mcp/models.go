package mcp

// Implementation Plan:
// 1. ScanRequest - paging arguments with defaults and bounds
// 2. ResolveRequest - the selection glean_resolve_todo resolves
// 3. Item - one displayed occurrence (label, description, location)
// 4. ScanResponse - one category's result set plus scan bookkeeping
// 5. ResolveResponse - the OpenLocation a client should carry out
// 6. StatusResponse - workspace root plus metrics snapshot

import (
	"fmt"

	"github.com/mvp-joe/project-glean/internal/navigator"
	"github.com/mvp-joe/project-glean/internal/scanner"
)

const (
	// DefaultLimit is the page size when a client does not send one.
	DefaultLimit = 200

	// MaxLimit caps the page size of a single response.
	MaxLimit = 1000
)

// ScanRequest holds the optional paging arguments of a scan tool.
type ScanRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// window returns the offset and page size with defaults and bounds applied.
func (r ScanRequest) window() (offset, limit int) {
	limit = r.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return max(r.Offset, 0), min(limit, MaxLimit)
}

// ResolveRequest identifies one item of a stored TODO scan.
type ResolveRequest struct {
	ScanID      string `json:"scan_id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// validate reports the first missing argument.
func (r ResolveRequest) validate() error {
	for _, arg := range []struct{ name, value string }{
		{"scan_id", r.ScanID},
		{"label", r.Label},
		{"description", r.Description},
	} {
		if arg.value == "" {
			return fmt.Errorf("%s parameter is required", arg.name)
		}
	}
	return nil
}

// Item is a single occurrence as shown to a client.
// Label and Description together form the selection for glean_resolve_todo.
type Item struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Line        int    `json:"line"`
	Rule        string `json:"rule,omitempty"`
}

// ScanResponse is returned by glean_comments, glean_logs and glean_todos.
type ScanResponse struct {
	ScanID       string         `json:"scan_id"`
	Category     string         `json:"category"`
	Status       scanner.Status `json:"status"`
	Message      string         `json:"message,omitempty"`
	Items        []Item         `json:"items"`
	Total        int            `json:"total"`
	Offset       int            `json:"offset"`
	FilesScanned int            `json:"files_scanned"`
	Skipped      int            `json:"skipped"`
	DurationMs   int64          `json:"duration_ms"`
}

// ResolveResponse is returned by glean_resolve_todo.
type ResolveResponse struct {
	Location navigator.OpenLocation `json:"location"`
	Target   string                 `json:"target"`
}

// StatusResponse is returned by glean_status.
type StatusResponse struct {
	Root    string          `json:"root"`
	Metrics MetricsSnapshot `json:"metrics"`
}
