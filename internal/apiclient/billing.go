package apiclient

import (
	"context"
	"net/http"

	"github.com/flowpilot/portal-go/internal/model"
)

// ListPlans handles GET /api/billing/plans.
func (c *Client) ListPlans(ctx context.Context) model.Response[[]model.Plan] {
	return call[[]model.Plan](ctx, c, http.MethodGet, billingPath+"/plans", nil)
}

// GetSubscription handles GET /api/billing/subscription.
func (c *Client) GetSubscription(ctx context.Context) model.Response[model.Subscription] {
	return call[model.Subscription](ctx, c, http.MethodGet, billingPath+"/subscription", nil)
}

// CreateSubscription handles POST /api/billing/subscription.
func (c *Client) CreateSubscription(ctx context.Context, req model.CreateSubscriptionRequest) model.Response[model.CheckoutResponse] {
	if details := check(req); len(details) > 0 {
		return rejected[model.CheckoutResponse](details)
	}
	return call[model.CheckoutResponse](ctx, c, http.MethodPost, billingPath+"/subscription", req)
}
