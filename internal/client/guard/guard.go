// Package guard decides whether a client route may be shown for the
// current session state.
package guard

import "github.com/dmitrijs2005/folio/internal/client/session"

type Action int

const (
	// Render shows the route.
	Render Action = iota
	// Pending means the session is still resolving; ask again once it settles.
	Pending
	// Redirect sends the user to Decision.Target.
	Redirect
)

func (a Action) String() string {
	switch a {
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	default:
		return "render"
	}
}

type Route struct {
	Name      string
	Protected bool
}

type Decision struct {
	Action Action
	Target string
}

type Guard struct {
	LoginRoute string
}

func New(loginRoute string) Guard {
	return Guard{LoginRoute: loginRoute}
}

// Decide never redirects a public route and never renders a protected one
// without an identity.
func (g Guard) Decide(st session.State, route Route) Decision {
	if !route.Protected {
		return Decision{Action: Render}
	}
	switch st.Status {
	case session.Authenticated:
		return Decision{Action: Render}
	case session.Resolving:
		return Decision{Action: Pending}
	default:
		return Decision{Action: Redirect, Target: g.LoginRoute}
	}
}
