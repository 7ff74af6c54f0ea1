package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/flowpilot/portal-go/internal/model"
)

// ListClients handles GET /api/clients.
func (c *Client) ListClients(ctx context.Context) model.Response[[]model.Client] {
	return call[[]model.Client](ctx, c, http.MethodGet, clientsPath, nil)
}

// CreateClient handles POST /api/clients. The response carries the client's
// one-time temporary password.
func (c *Client) CreateClient(ctx context.Context, req model.CreateClientRequest) model.Response[model.CreatedClient] {
	if details := check(req); len(details) > 0 {
		return rejected[model.CreatedClient](details)
	}
	return call[model.CreatedClient](ctx, c, http.MethodPost, clientsPath, req)
}

// UpdateClient handles PUT /api/clients/{id}.
func (c *Client) UpdateClient(ctx context.Context, id string, req model.UpdateClientRequest) model.Response[model.Client] {
	id = strings.TrimSpace(id)
	details := check(req)
	if id == "" {
		details = append([]model.FieldError{{Field: "id", Message: "is required"}}, details...)
	}
	if len(details) > 0 {
		return rejected[model.Client](details)
	}
	return call[model.Client](ctx, c, http.MethodPut, clientsPath+"/"+url.PathEscape(id), req)
}
