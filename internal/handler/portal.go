package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flowpilot/portal-go/internal/model"
)

// PortalHandler handles the client portal of a workspace.
type PortalHandler struct{}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler() *PortalHandler {
	return &PortalHandler{}
}

// LoginRoute is the client-portal login page of a workspace.
func LoginRoute(slug string) string {
	return "/portal/" + slug + "/login"
}

func homeRoute(slug string) string {
	return "/portal/" + slug + "/home"
}

type portalSessionView struct {
	Authenticated bool                  `json:"authenticated"`
	Loading       bool                  `json:"loading"`
	Client        *model.ClientAuthData `json:"client,omitempty"`
}

// HandleLoginView handles GET /portal/{slug}/login requests.
func (h *PortalHandler) HandleLoginView(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	st := s.Client.State()
	writeJSON(w, http.StatusOK, model.OK(formView{
		Action: LoginRoute(chi.URLParam(r, "slug")),
		Fields: []string{"email", "senha"},
		Session: portalSessionView{
			Authenticated: st.IsAuthenticated(),
			Loading:       st.Loading,
			Client:        st.Identity,
		},
	}))
}

// HandleLogin handles POST /portal/{slug}/login requests. The workspace comes
// from the path, never from the body.
func (h *PortalHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	var req model.ClientLoginRequest
	if !decode(w, r, &req) {
		return
	}
	slug := chi.URLParam(r, "slug")
	req.WorkspaceSlug = slug

	respond(w, s.Client.Login(r.Context(), req), homeRoute(slug))
}

// HandleLogout handles POST /portal/{slug}/logout requests.
func (h *PortalHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	resp := s.Client.Logout(r.Context())
	view := actionView[model.Empty]{Response: resp, Redirect: LoginRoute(chi.URLParam(r, "slug"))}
	if !resp.Success && resp.Error != nil {
		view.Notice = resp.Error.UserMessage()
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleSession handles GET /portal/{slug}/session requests.
func (h *PortalHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	st := s.Client.State()
	writeJSON(w, http.StatusOK, model.OK(portalSessionView{
		Authenticated: st.IsAuthenticated(),
		Loading:       st.Loading,
		Client:        st.Identity,
	}))
}

// HandleHome handles GET /portal/{slug}/home requests.
func (h *PortalHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, model.OK(s.Client.State().Identity))
}
