package apiclient

import (
	"context"
	"net/http"

	"github.com/flowpilot/portal-go/internal/model"
)

// ClientLogin handles POST /api/client-portal/login.
func (c *Client) ClientLogin(ctx context.Context, req model.ClientLoginRequest) model.Response[model.ClientAuthData] {
	if details := check(req); len(details) > 0 {
		return rejected[model.ClientAuthData](details)
	}
	return call[model.ClientAuthData](ctx, c, http.MethodPost, clientPortalPath+"/login", req)
}

// ClientLogout handles POST /api/client-portal/logout.
func (c *Client) ClientLogout(ctx context.Context) model.Response[model.Empty] {
	return call[model.Empty](ctx, c, http.MethodPost, clientPortalPath+"/logout", nil)
}

// CurrentClient handles GET /api/client-portal/me, the client identity probe.
func (c *Client) CurrentClient(ctx context.Context) model.Response[model.ClientAuthData] {
	return call[model.ClientAuthData](ctx, c, http.MethodGet, clientPortalPath+"/me", nil)
}
