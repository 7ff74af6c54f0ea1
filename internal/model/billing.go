package model

import "time"

// Subscription statuses reported by the billing backend.
const (
	SubscriptionActive   = "ACTIVE"
	SubscriptionTrialing = "TRIALING"
	SubscriptionPastDue  = "PAST_DUE"
	SubscriptionCanceled = "CANCELED"
)

// Plan is a billing plan offered to workspaces.
type Plan struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Interval   string `json:"interval"`
	MaxMembers int    `json:"maxMembers"`
	MaxClients int    `json:"maxClients"`
}

// Subscription is the workspace's current billing subscription.
type Subscription struct {
	ID               string     `json:"id"`
	PlanID           string     `json:"planId"`
	Status           string     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"currentPeriodEnd,omitempty"`
}

// Active reports whether the subscription grants access to the dashboard.
func (s Subscription) Active() bool {
	return s.Status == SubscriptionActive || s.Status == SubscriptionTrialing
}

// CreateSubscriptionRequest subscribes the workspace to a plan.
type CreateSubscriptionRequest struct {
	PlanID string `json:"planId" validate:"required"`
}

// CheckoutResponse is returned when a subscription is created. CheckoutURL is
// set when the payment provider needs the user to complete payment.
type CheckoutResponse struct {
	Subscription *Subscription `json:"subscription,omitempty"`
	CheckoutURL  string        `json:"checkoutUrl,omitempty"`
}
