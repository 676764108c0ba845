// Package gate decides, per navigable view, whether to render or to
// redirect. Decisions are pure values over the session token so the
// router consumes them without any side-effect ordering: a redirect
// decision means the wrapped view is never rendered, not even for one
// frame.
package gate

const (
	SignInPath    = "/signin"
	DashboardPath = "/dashboard"
)

// Decision is either render (zero value) or a redirect to a path.
type Decision struct {
	redirect string
}

func render() Decision {
	return Decision{}
}

func redirectTo(path string) Decision {
	return Decision{redirect: path}
}

// Redirects reports whether the decision is a redirect.
func (d Decision) Redirects() bool {
	return d.redirect != ""
}

// Path returns the redirect target, empty for render decisions.
func (d Decision) Path() string {
	return d.redirect
}

// Protected gates views that need a signed-in user. A missing token is
// the ordinary logged-out state and yields a sign-in redirect. A
// present token renders unconditionally; the 12-hour ceiling is the
// session guard's job, running concurrently.
func Protected(token string) Decision {
	if token == "" {
		return redirectTo(SignInPath)
	}
	return render()
}

// PublicOnly gates views meant for visitors (splash, landing). A
// signed-in user is sent to the dashboard instead.
func PublicOnly(token string) Decision {
	if token != "" {
		return redirectTo(DashboardPath)
	}
	return render()
}
