package session

import (
	"context"
	"log/slog"

	"github.com/flowpilot/portal-go/internal/model"
)

// StaffAPI is the part of the backend the staff provider needs.
type StaffAPI interface {
	Register(ctx context.Context, req model.RegisterRequest) model.Response[model.AuthResponse]
	Login(ctx context.Context, req model.LoginRequest) model.Response[model.AuthResponse]
	Logout(ctx context.Context) model.Response[model.Empty]
	Me(ctx context.Context) model.Response[model.User]
	GetWorkspace(ctx context.Context) model.Response[model.Workspace]
	CreateWorkspace(ctx context.Context, req model.CreateWorkspaceRequest) model.Response[model.Workspace]
	GetSubscription(ctx context.Context) model.Response[model.Subscription]
	CreateSubscription(ctx context.Context, req model.CreateSubscriptionRequest) model.Response[model.CheckoutResponse]
}

// Staff tracks the workspace user signed in to a browser scope.
type Staff struct {
	api StaffAPI
	t   *tracker[model.User]
}

// NewStaff creates a staff provider. Its state is loading until the first
// probe settles.
func NewStaff(api StaffAPI) *Staff {
	return &Staff{api: api, t: newTracker[model.User]()}
}

// Activate runs the mount probe in the background.
func (s *Staff) Activate(ctx context.Context) {
	go s.Refresh(ctx)
}

// Wait blocks until the first probe has settled.
func (s *Staff) Wait(ctx context.Context) error {
	return s.t.wait(ctx)
}

// State returns a snapshot of the provider.
func (s *Staff) State() State[model.User] {
	return s.t.snapshot()
}

// Refresh re-establishes identity and flags from the backend session.
func (s *Staff) Refresh(ctx context.Context) State[model.User] {
	seq := s.t.begin()
	st := s.probe(ctx)
	if !s.t.apply(seq, st) {
		slog.Debug("discarding superseded staff probe", "seq", seq)
	}
	return s.t.snapshot()
}

func (s *Staff) probe(ctx context.Context) State[model.User] {
	user, ok := s.api.Me(ctx).Value()
	if !ok {
		return State[model.User]{}
	}

	st := State[model.User]{Identity: &user}
	ws := s.api.GetWorkspace(ctx)
	if transportFailed(ws) {
		return State[model.User]{}
	}
	if !ws.Success {
		return st
	}
	st.HasWorkspace = true

	sub := s.api.GetSubscription(ctx)
	if transportFailed(sub) {
		return State[model.User]{}
	}
	if v, ok := sub.Value(); ok && v.Active() {
		st.HasActiveSubscription = true
	}
	return st
}

// Login signs in and, on success, refreshes before returning so the caller
// never redirects on the login payload alone.
func (s *Staff) Login(ctx context.Context, req model.LoginRequest) model.Response[model.AuthResponse] {
	resp := s.api.Login(ctx, req)
	if resp.Success {
		s.Refresh(detached(ctx))
	}
	return resp
}

// Register creates the account and refreshes on success.
func (s *Staff) Register(ctx context.Context, req model.RegisterRequest) model.Response[model.AuthResponse] {
	resp := s.api.Register(ctx, req)
	if resp.Success {
		s.Refresh(detached(ctx))
	}
	return resp
}

// CreateWorkspace creates the user's workspace and refreshes on success.
func (s *Staff) CreateWorkspace(ctx context.Context, req model.CreateWorkspaceRequest) model.Response[model.Workspace] {
	resp := s.api.CreateWorkspace(ctx, req)
	if resp.Success {
		s.Refresh(detached(ctx))
	}
	return resp
}

// Subscribe subscribes the workspace to a plan and refreshes on success.
func (s *Staff) Subscribe(ctx context.Context, req model.CreateSubscriptionRequest) model.Response[model.CheckoutResponse] {
	resp := s.api.CreateSubscription(ctx, req)
	if resp.Success {
		s.Refresh(detached(ctx))
	}
	return resp
}

// Logout ends the backend session and always clears the local identity, even
// when the backend call fails.
func (s *Staff) Logout(ctx context.Context) model.Response[model.Empty] {
	s.t.begin()
	resp := s.api.Logout(ctx)
	s.t.clear()
	if !resp.Success && resp.Error != nil {
		slog.Warn("backend logout failed; local staff session cleared", "code", resp.Error.Code)
	}
	return resp
}
