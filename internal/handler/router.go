package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/flowpilot/portal-go/internal/guard"
	"github.com/flowpilot/portal-go/internal/middleware"
	"github.com/flowpilot/portal-go/internal/scope"
)

// RouterConfig carries what the shell router needs.
type RouterConfig struct {
	Registry       *scope.Registry
	ScopeSecret    string
	ScopeTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	// Per-IP limit on creating scopes for browsers without a valid cookie.
	ScopeCreateRPS   float64
	ScopeCreateBurst int
	Routes           guard.Routes
}

// NewRouter builds the portal shell. ctx bounds the background work of the
// rate limiters.
func NewRouter(ctx context.Context, cfg RouterConfig) chi.Router {
	authHandler := NewAuthHandler(cfg.Routes)
	workspaceHandler := NewWorkspaceHandler(cfg.Routes)
	dashboardHandler := NewDashboardHandler()
	portalHandler := NewPortalHandler()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Scope(ctx, cfg.Registry, cfg.ScopeSecret, cfg.ScopeTTL, cfg.ScopeCreateRPS, cfg.ScopeCreateBurst))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
			r.Post("/auth/register", authHandler.HandleRegister)
			r.Post("/auth/login", authHandler.HandleLogin)
			r.Post("/auth/forgot-password", authHandler.HandleForgotPassword)
			r.Post("/auth/reset-password", authHandler.HandleResetPassword)
			r.Post("/portal/{slug}/login", portalHandler.HandleLogin)
		})

		r.Get("/login", authHandler.HandleLoginView)
		r.Get("/portal/{slug}/login", portalHandler.HandleLoginView)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/auth/session", authHandler.HandleSession)
		r.Get("/billing/plans", workspaceHandler.HandleListPlans)
		r.Post("/portal/{slug}/logout", portalHandler.HandleLogout)
		r.Get("/portal/{slug}/session", portalHandler.HandleSession)

		r.Group(func(r chi.Router) {
			r.Use(guard.Middleware(StaffResolver(guard.RequireAuth, cfg.Routes)))
			r.Get("/onboarding/workspace", workspaceHandler.HandleWorkspaceView)
			r.Post("/onboarding/workspace", workspaceHandler.HandleCreateWorkspace)
		})

		r.Group(func(r chi.Router) {
			r.Use(guard.Middleware(StaffResolver(guard.RequireWorkspace, cfg.Routes)))
			r.Get("/billing/subscription", workspaceHandler.HandleGetSubscription)
			r.Post("/billing/subscription", workspaceHandler.HandleSubscribe)
		})

		r.Route("/app", func(r chi.Router) {
			r.Use(guard.Middleware(StaffResolver(guard.RequireSubscription, cfg.Routes)))
			r.Get("/dashboard", dashboardHandler.HandleDashboard)
			r.Get("/team", dashboardHandler.HandleListMembers)
			r.Post("/team/invites", dashboardHandler.HandleInvite)
			r.Get("/clients", dashboardHandler.HandleListClients)
			r.Post("/clients", dashboardHandler.HandleCreateClient)
			r.Put("/clients/{id}", dashboardHandler.HandleUpdateClient)
		})

		r.Group(func(r chi.Router) {
			r.Use(guard.Middleware(ClientResolver()))
			r.Get("/portal/{slug}/home", portalHandler.HandleHome)
		})
	})

	return r
}

// StaffResolver evaluates the staff chain up to req against the request's
// scope.
func StaffResolver(req guard.Requirement, routes guard.Routes) guard.Resolver {
	return func(r *http.Request) guard.Decision {
		s, ok := middleware.ScopeFromContext(r.Context())
		if !ok {
			return guard.Decision{Kind: guard.Redirect, Target: routes.Login}
		}
		return guard.Staff(s.Staff.State(), req, routes)
	}
}

// ClientResolver evaluates the client-portal chain for the workspace in the
// path. A client signed in to another workspace is sent to this workspace's
// login page.
func ClientResolver() guard.Resolver {
	return func(r *http.Request) guard.Decision {
		login := LoginRoute(chi.URLParam(r, "slug"))
		s, ok := middleware.ScopeFromContext(r.Context())
		if !ok {
			return guard.Decision{Kind: guard.Redirect, Target: login}
		}

		st := s.Client.State()
		d := guard.Client(st, login)
		if d.Kind == guard.Allow && st.Identity.WorkspaceSlug != chi.URLParam(r, "slug") {
			return guard.Decision{Kind: guard.Redirect, Target: login}
		}
		return d
	}
}
