package guard

import (
	"net/url"

	"machinehub/internal/core/domain"
	"machinehub/internal/pkg/session"
)

// State is the guard's evaluation state
type State int

const (
	// StateChecking means the session has not been rehydrated yet.
	// Neither protected content nor a redirect may be produced.
	StateChecking State = iota
	// StateAllowed means the protected content may be shown
	StateAllowed
	// StateDenied means access is refused and RedirectTo is set
	StateDenied
)

// String returns the state name for logs
func (s State) String() string {
	switch s {
	case StateChecking:
		return "CHECKING"
	case StateAllowed:
		return "ALLOWED"
	case StateDenied:
		return "DENIED"
	}
	return "UNKNOWN"
}

const (
	// DefaultLoginPath receives unauthenticated visitors
	DefaultLoginPath = "/login"
	// DefaultDeniedPath receives authenticated visitors with the wrong role
	DefaultDeniedPath = "/"
)

// Decision is the outcome of one guard evaluation. RedirectTo is
// non-empty only for StateDenied.
type Decision struct {
	State      State
	RedirectTo string
}

// Guard gates a protected surface behind a role allowlist. It is a
// UX convenience layer only; the HTTP middleware remains the
// enforcement surface for data-mutating operations.
type Guard struct {
	store      *session.Store
	allowlist  []domain.Role
	loginPath  string
	deniedPath string
}

// New creates a guard over the session store with the given allowlist
func New(store *session.Store, allowlist ...domain.Role) *Guard {
	return &Guard{
		store:      store,
		allowlist:  allowlist,
		loginPath:  DefaultLoginPath,
		deniedPath: DefaultDeniedPath,
	}
}

// WithRedirects overrides the login and denied destinations
func (g *Guard) WithRedirects(loginPath, deniedPath string) *Guard {
	if loginPath != "" {
		g.loginPath = loginPath
	}
	if deniedPath != "" {
		g.deniedPath = deniedPath
	}
	return g
}

// Evaluate runs the state machine once for the requested path.
//
//	not rehydrated          -> Checking
//	no token                -> Denied, login (+redirect back to path)
//	role not in allowlist   -> Denied, denied destination
//	otherwise               -> Allowed
func (g *Guard) Evaluate(requestedPath string) Decision {
	if !g.store.Ready() {
		return Decision{State: StateChecking}
	}

	if !g.store.IsAuthenticated() {
		return Decision{State: StateDenied, RedirectTo: g.loginRedirect(requestedPath)}
	}

	if !g.store.HasRole(g.allowlist...) {
		return Decision{State: StateDenied, RedirectTo: g.deniedPath}
	}

	return Decision{State: StateAllowed}
}

// Watch evaluates immediately and re-evaluates after every session
// mutation, passing each fresh decision to onChange. The last
// evaluation wins; there is no queue of conflicting redirects. The
// returned function stops watching.
func (g *Guard) Watch(requestedPath string, onChange func(Decision)) func() {
	onChange(g.Evaluate(requestedPath))
	return g.store.Subscribe(func() {
		onChange(g.Evaluate(requestedPath))
	})
}

// loginRedirect carries the originally requested path so the user
// returns there after authenticating
func (g *Guard) loginRedirect(requestedPath string) string {
	if requestedPath == "" {
		return g.loginPath
	}
	return g.loginPath + "?redirect=" + url.QueryEscape(requestedPath)
}
