package apiclient

import (
	"context"
	"net/http"

	"github.com/flowpilot/portal-go/internal/model"
)

// Register handles POST /api/auth/register.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) model.Response[model.AuthResponse] {
	if details := checkWithPassword(req, req.Senha); len(details) > 0 {
		return rejected[model.AuthResponse](details)
	}
	return call[model.AuthResponse](ctx, c, http.MethodPost, authPath+"/register", req)
}

// Login handles POST /api/auth/login.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) model.Response[model.AuthResponse] {
	if details := check(req); len(details) > 0 {
		return rejected[model.AuthResponse](details)
	}
	return call[model.AuthResponse](ctx, c, http.MethodPost, authPath+"/login", req)
}

// Logout handles POST /api/auth/logout.
func (c *Client) Logout(ctx context.Context) model.Response[model.Empty] {
	return call[model.Empty](ctx, c, http.MethodPost, authPath+"/logout", nil)
}

// Me handles GET /api/auth/me, the staff identity probe.
func (c *Client) Me(ctx context.Context) model.Response[model.User] {
	return call[model.User](ctx, c, http.MethodGet, authPath+"/me", nil)
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (c *Client) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) model.Response[model.Empty] {
	if details := check(req); len(details) > 0 {
		return rejected[model.Empty](details)
	}
	return call[model.Empty](ctx, c, http.MethodPost, authPath+"/forgot-password", req)
}

// ResetPassword handles POST /api/auth/reset-password.
func (c *Client) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) model.Response[model.Empty] {
	if details := checkWithPassword(req, req.Senha); len(details) > 0 {
		return rejected[model.Empty](details)
	}
	return call[model.Empty](ctx, c, http.MethodPost, authPath+"/reset-password", req)
}
