package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flowpilot/portal-go/internal/model"
)

// DashboardHandler handles the views and actions behind the full staff chain.
type DashboardHandler struct{}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// HandleDashboard handles GET /app/dashboard requests.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, model.OK(newSessionView(s.Staff.State())))
}

// HandleListMembers handles GET /app/team requests.
func (h *DashboardHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	respond(w, s.API.ListMembers(r.Context()), "")
}

// HandleInvite handles POST /app/team/invites requests.
func (h *DashboardHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	var req model.InviteRequest
	if !decode(w, r, &req) {
		return
	}

	respond(w, s.API.CreateInvite(r.Context(), req), "")
}

// HandleListClients handles GET /app/clients requests.
func (h *DashboardHandler) HandleListClients(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	respond(w, s.API.ListClients(r.Context()), "")
}

// HandleCreateClient handles POST /app/clients requests.
func (h *DashboardHandler) HandleCreateClient(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	var req model.CreateClientRequest
	if !decode(w, r, &req) {
		return
	}

	respond(w, s.API.CreateClient(r.Context(), req), "")
}

// HandleUpdateClient handles PUT /app/clients/{id} requests.
func (h *DashboardHandler) HandleUpdateClient(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	var req model.UpdateClientRequest
	if !decode(w, r, &req) {
		return
	}

	respond(w, s.API.UpdateClient(r.Context(), chi.URLParam(r, "id"), req), "")
}
