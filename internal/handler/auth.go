package handler

import (
	"net/http"

	"github.com/flowpilot/portal-go/internal/guard"
	"github.com/flowpilot/portal-go/internal/model"
	"github.com/flowpilot/portal-go/internal/session"
)

// AuthHandler handles the staff authentication actions of the shell.
type AuthHandler struct {
	routes guard.Routes
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(routes guard.Routes) *AuthHandler {
	return &AuthHandler{routes: routes}
}

// sessionView is the staff session as seen by the browser.
type sessionView struct {
	Authenticated         bool        `json:"authenticated"`
	Loading               bool        `json:"loading"`
	HasWorkspace          bool        `json:"hasWorkspace"`
	HasActiveSubscription bool        `json:"hasActiveSubscription"`
	User                  *model.User `json:"user,omitempty"`
}

func newSessionView(st session.State[model.User]) sessionView {
	return sessionView{
		Authenticated:         st.IsAuthenticated(),
		Loading:               st.Loading,
		HasWorkspace:          st.HasWorkspace,
		HasActiveSubscription: st.HasActiveSubscription,
		User:                  st.Identity,
	}
}

// formView is a form page: where it posts and the fields it sends, plus the
// session it renders for.
type formView struct {
	Action  string   `json:"action"`
	Fields  []string `json:"fields"`
	Session any      `json:"session"`
}

// next returns the route a freshly refreshed staff session should land on.
func next(st session.State[model.User], routes guard.Routes) string {
	d := guard.Staff(st, guard.RequireSubscription, routes)
	if d.Kind == guard.Redirect {
		return d.Target
	}
	return routes.Dashboard
}

// HandleLoginView handles GET /login requests, the target of unauthenticated
// staff redirects.
func (h *AuthHandler) HandleLoginView(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, model.OK(formView{
		Action:  "/auth/login",
		Fields:  []string{"email", "senha"},
		Session: newSessionView(s.Staff.State()),
	}))
}

// HandleRegister handles POST /auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	var req model.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	resp := s.Staff.Register(r.Context(), req)
	respond(w, resp, next(s.Staff.State(), h.routes))
}

// HandleLogin handles POST /auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	var req model.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	resp := s.Staff.Login(r.Context(), req)
	respond(w, resp, next(s.Staff.State(), h.routes))
}

// HandleLogout handles POST /auth/logout requests. The local session is
// cleared whatever the backend answers, so the browser always lands on login.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	resp := s.Staff.Logout(r.Context())
	view := actionView[model.Empty]{Response: resp, Redirect: h.routes.Login}
	if !resp.Success && resp.Error != nil {
		view.Notice = resp.Error.UserMessage()
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleForgotPassword handles POST /auth/forgot-password requests.
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	var req model.ForgotPasswordRequest
	if !decode(w, r, &req) {
		return
	}

	respond(w, s.API.ForgotPassword(r.Context(), req), "")
}

// HandleResetPassword handles POST /auth/reset-password requests.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	var req model.ResetPasswordRequest
	if !decode(w, r, &req) {
		return
	}

	respond(w, s.API.ResetPassword(r.Context(), req), h.routes.Login)
}

// HandleSession handles GET /auth/session requests.
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, model.OK(newSessionView(s.Staff.State())))
}
