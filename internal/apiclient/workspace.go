package apiclient

import (
	"context"
	"net/http"

	"github.com/flowpilot/portal-go/internal/model"
)

// GetWorkspace handles GET /api/workspace.
func (c *Client) GetWorkspace(ctx context.Context) model.Response[model.Workspace] {
	return call[model.Workspace](ctx, c, http.MethodGet, workspacePath, nil)
}

// CreateWorkspace handles POST /api/workspace.
func (c *Client) CreateWorkspace(ctx context.Context, req model.CreateWorkspaceRequest) model.Response[model.Workspace] {
	if details := check(req); len(details) > 0 {
		return rejected[model.Workspace](details)
	}
	return call[model.Workspace](ctx, c, http.MethodPost, workspacePath, req)
}
