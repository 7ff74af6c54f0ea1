package apiclient

import (
	"context"
	"net/http"

	"github.com/flowpilot/portal-go/internal/model"
)

// ListMembers handles GET /api/team/members.
func (c *Client) ListMembers(ctx context.Context) model.Response[[]model.TeamMember] {
	return call[[]model.TeamMember](ctx, c, http.MethodGet, teamPath+"/members", nil)
}

// CreateInvite handles POST /api/team/invites.
func (c *Client) CreateInvite(ctx context.Context, req model.InviteRequest) model.Response[model.Invite] {
	if details := check(req); len(details) > 0 {
		return rejected[model.Invite](details)
	}
	return call[model.Invite](ctx, c, http.MethodPost, teamPath+"/invites", req)
}
