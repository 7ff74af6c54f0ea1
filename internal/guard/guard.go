// Package guard decides whether a layout may render for the current session
// state, and where to send the browser when it may not.
package guard

import "github.com/flowpilot/portal-go/internal/session"

// Kind is the outcome of a guard evaluation.
type Kind int

const (
	Pending Kind = iota
	Allow
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is what a layout should do.
type Decision struct {
	Kind   Kind
	Target string
}

// Requirement truncates the staff chain: each level includes the previous ones.
type Requirement int

const (
	RequireAuth Requirement = iota + 1
	RequireWorkspace
	RequireSubscription
)

// Routes are the redirect targets of the staff chain. Dashboard is where a
// browser goes once the chain allows it.
type Routes struct {
	Dashboard       string
	Login           string
	CreateWorkspace string
	Subscription    string
}

// DefaultRoutes returns the portal shell's staff routes.
func DefaultRoutes() Routes {
	return Routes{
		Dashboard:       "/app/dashboard",
		Login:           "/login",
		CreateWorkspace: "/onboarding/workspace",
		Subscription:    "/billing/subscription",
	}
}

// Staff evaluates the staff chain in priority order; only the first unmet
// precondition picks the target.
func Staff[I any](st session.State[I], req Requirement, routes Routes) Decision {
	switch {
	case st.Loading:
		return Decision{Kind: Pending}
	case !st.IsAuthenticated():
		return Decision{Kind: Redirect, Target: routes.Login}
	case req >= RequireWorkspace && !st.HasWorkspace:
		return Decision{Kind: Redirect, Target: routes.CreateWorkspace}
	case req >= RequireSubscription && !st.HasActiveSubscription:
		return Decision{Kind: Redirect, Target: routes.Subscription}
	default:
		return Decision{Kind: Allow}
	}
}

// Client evaluates the client-portal chain.
func Client[I any](st session.State[I], loginRoute string) Decision {
	switch {
	case st.Loading:
		return Decision{Kind: Pending}
	case !st.IsAuthenticated():
		return Decision{Kind: Redirect, Target: loginRoute}
	default:
		return Decision{Kind: Allow}
	}
}
