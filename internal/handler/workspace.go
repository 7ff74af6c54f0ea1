package handler

import (
	"net/http"

	"github.com/flowpilot/portal-go/internal/guard"
	"github.com/flowpilot/portal-go/internal/model"
)

// WorkspaceHandler handles onboarding and billing actions.
type WorkspaceHandler struct {
	routes guard.Routes
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(routes guard.Routes) *WorkspaceHandler {
	return &WorkspaceHandler{routes: routes}
}

// subscriptionView is the subscription page: the current subscription, nil
// when the workspace has none, and the plans on offer.
type subscriptionView struct {
	Subscription *model.Subscription `json:"subscription"`
	Plans        []model.Plan        `json:"plans"`
}

// HandleWorkspaceView handles GET /onboarding/workspace requests.
func (h *WorkspaceHandler) HandleWorkspaceView(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, model.OK(formView{
		Action:  "/onboarding/workspace",
		Fields:  []string{"name", "slug"},
		Session: newSessionView(s.Staff.State()),
	}))
}

// HandleCreateWorkspace handles POST /onboarding/workspace requests.
func (h *WorkspaceHandler) HandleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	var req model.CreateWorkspaceRequest
	if !decode(w, r, &req) {
		return
	}

	resp := s.Staff.CreateWorkspace(r.Context(), req)
	respond(w, resp, next(s.Staff.State(), h.routes))
}

// HandleListPlans handles GET /billing/plans requests.
func (h *WorkspaceHandler) HandleListPlans(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	respond(w, s.API.ListPlans(r.Context()), "")
}

// HandleGetSubscription handles GET /billing/subscription requests, the
// target of redirects for workspaces without an active subscription.
func (h *WorkspaceHandler) HandleGetSubscription(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	var view subscriptionView
	sub := s.API.GetSubscription(r.Context())
	if v, ok := sub.Value(); ok {
		view.Subscription = &v
	} else if sub.Error == nil || sub.Error.Code != model.CodeNotFound {
		respond(w, sub, "")
		return
	}

	plans := s.API.ListPlans(r.Context())
	if !plans.Success {
		respond(w, plans, "")
		return
	}
	view.Plans, _ = plans.Value()

	writeJSON(w, http.StatusOK, model.OK(view))
}

// HandleSubscribe handles POST /billing/subscription requests. When the
// payment provider hands back a checkout URL the browser goes there first.
func (h *WorkspaceHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	s, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	var req model.CreateSubscriptionRequest
	if !decode(w, r, &req) {
		return
	}

	resp := s.Staff.Subscribe(r.Context(), req)
	redirect := next(s.Staff.State(), h.routes)
	if checkout, ok := resp.Value(); ok && checkout.CheckoutURL != "" {
		redirect = checkout.CheckoutURL
	}
	respond(w, resp, redirect)
}
