package session

import (
	"context"
	"log/slog"

	"github.com/flowpilot/portal-go/internal/model"
)

// ClientAPI is the client-portal part of the backend.
type ClientAPI interface {
	ClientLogin(ctx context.Context, req model.ClientLoginRequest) model.Response[model.ClientAuthData]
	ClientLogout(ctx context.Context) model.Response[model.Empty]
	CurrentClient(ctx context.Context) model.Response[model.ClientAuthData]
}

// Client tracks the external client signed in to a workspace portal. Its
// state never carries workspace or subscription flags.
type Client struct {
	api ClientAPI
	t   *tracker[model.ClientAuthData]
}

// NewClient creates a client-portal provider.
func NewClient(api ClientAPI) *Client {
	return &Client{api: api, t: newTracker[model.ClientAuthData]()}
}

// Activate runs the mount probe in the background.
func (c *Client) Activate(ctx context.Context) {
	go c.Refresh(ctx)
}

// Wait blocks until the first probe has settled.
func (c *Client) Wait(ctx context.Context) error {
	return c.t.wait(ctx)
}

// State returns a snapshot of the provider.
func (c *Client) State() State[model.ClientAuthData] {
	return c.t.snapshot()
}

// Refresh re-establishes the client identity from the backend session.
func (c *Client) Refresh(ctx context.Context) State[model.ClientAuthData] {
	seq := c.t.begin()
	var st State[model.ClientAuthData]
	if data, ok := c.api.CurrentClient(ctx).Value(); ok {
		st.Identity = &data
	}
	if !c.t.apply(seq, st) {
		slog.Debug("discarding superseded client probe", "seq", seq)
	}
	return c.t.snapshot()
}

// Login signs the client in to the portal of req.WorkspaceSlug and refreshes
// on success.
func (c *Client) Login(ctx context.Context, req model.ClientLoginRequest) model.Response[model.ClientAuthData] {
	resp := c.api.ClientLogin(ctx, req)
	if resp.Success {
		c.Refresh(detached(ctx))
	}
	return resp
}

// Logout ends the portal session and always clears the local identity.
func (c *Client) Logout(ctx context.Context) model.Response[model.Empty] {
	c.t.begin()
	resp := c.api.ClientLogout(ctx)
	c.t.clear()
	if !resp.Success && resp.Error != nil {
		slog.Warn("backend logout failed; local client session cleared", "code", resp.Error.Code)
	}
	return resp
}
