// Package resources implements the read-only MCP resources over the
// current workspace snapshot.
//
// Resources use URI-based addressing (jumble://...) following MCP
// conventions. Each read sees the snapshot published at that moment.
package resources

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/query"
	"github.com/HendryAvila/jumble/internal/workspace"
)

// Resource URIs.
const (
	OverviewURI    = "jumble://workspace/overview"
	DiagnosticsURI = "jumble://workspace/diagnostics"
)

// Snapshotter supplies the current workspace snapshot.
type Snapshotter interface {
	Current() *workspace.Workspace
}

// Handler manages the workspace resource endpoints.
type Handler struct {
	snap Snapshotter
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(snap Snapshotter) *Handler {
	return &Handler{snap: snap}
}

// OverviewResource returns the MCP resource definition for the workspace
// overview.
func (h *Handler) OverviewResource() mcp.Resource {
	return mcp.NewResource(
		OverviewURI,
		"Workspace Overview",
		mcp.WithResourceDescription("Every project in the workspace with descriptions and dependency relationships"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleOverview returns the workspace overview as JSON.
func (h *Handler) HandleOverview(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents(req.Params.URI, query.WorkspaceOverview(h.snap.Current()))
}

// DiagnosticsResource returns the MCP resource definition for load errors.
func (h *Handler) DiagnosticsResource() mcp.Resource {
	return mcp.NewResource(
		DiagnosticsURI,
		"Workspace Diagnostics",
		mcp.WithResourceDescription("Descriptor files that failed to load in the last workspace scan, and why"),
		mcp.WithMIMEType("application/json"),
	)
}

// diagnostics is the body of the diagnostics resource.
type diagnostics struct {
	Root       string                 `json:"root"`
	BuiltAt    string                 `json:"built_at,omitempty"`
	LoadErrors []workspace.Diagnostic `json:"load_errors"`
}

// HandleDiagnostics returns the load errors of the current snapshot as JSON.
func (h *Handler) HandleDiagnostics(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ws := h.snap.Current()
	body := diagnostics{Root: ws.Root, LoadErrors: ws.LoadErrors}
	if body.LoadErrors == nil {
		body.LoadErrors = []workspace.Diagnostic{}
	}
	if !ws.BuiltAt.IsZero() {
		body.BuiltAt = ws.BuiltAt.UTC().Format(time.RFC3339)
	}
	return jsonContents(req.Params.URI, body)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "marshaling %s", uri)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
