package guard

import (
	"testing"

	"machinehub/internal/core/domain"
	"machinehub/internal/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedInStore(t *testing.T, token string, role domain.Role) *session.Store {
	t.Helper()
	store := session.NewStore(session.NewMemoryStorage())
	store.Rehydrate()
	if token != "" {
		store.SetToken(token)
	}
	store.SetRole(role)
	return store
}

func TestGuard_CheckingBeforeRehydration(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage())
	g := New(store, domain.RoleOwner)

	decision := g.Evaluate("/owner/machines")

	assert.Equal(t, StateChecking, decision.State)
	assert.Empty(t, decision.RedirectTo, "no premature redirect during checking")
}

func TestGuard_Evaluate(t *testing.T) {
	tests := []struct {
		name         string
		token        string
		role         domain.Role
		allowlist    []domain.Role
		path         string
		wantState    State
		wantRedirect string
	}{
		{
			name:         "unauthenticated redirects to login with original path",
			token:        "",
			allowlist:    []domain.Role{domain.RoleOwner},
			path:         "/owner/machines",
			wantState:    StateDenied,
			wantRedirect: "/login?redirect=%2Fowner%2Fmachines",
		},
		{
			name:         "wrong role redirects home",
			token:        "x",
			role:         domain.RoleCustomer,
			allowlist:    []domain.Role{domain.RoleOwner},
			path:         "/owner/machines",
			wantState:    StateDenied,
			wantRedirect: "/",
		},
		{
			name:      "matching role allowed",
			token:     "x",
			role:      domain.RoleOwner,
			allowlist: []domain.Role{domain.RoleOwner},
			path:      "/owner/machines",
			wantState: StateAllowed,
		},
		{
			name:      "role in union allowlist allowed",
			token:     "x",
			role:      domain.RoleAdmin,
			allowlist: []domain.Role{domain.RoleOwner, domain.RoleAdmin},
			path:      "/owner/bookings",
			wantState: StateAllowed,
		},
		{
			name:         "unauthenticated without path gets bare login",
			token:        "",
			allowlist:    []domain.Role{domain.RoleCustomer},
			path:         "",
			wantState:    StateDenied,
			wantRedirect: "/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := loggedInStore(t, tt.token, tt.role)
			g := New(store, tt.allowlist...)

			decision := g.Evaluate(tt.path)

			assert.Equal(t, tt.wantState, decision.State)
			assert.Equal(t, tt.wantRedirect, decision.RedirectTo)
		})
	}
}

func TestGuard_WithRedirects(t *testing.T) {
	store := loggedInStore(t, "x", domain.RoleCustomer)
	g := New(store, domain.RoleAdmin).WithRedirects("/signin", "/unauthorized")

	decision := g.Evaluate("/admin")
	assert.Equal(t, StateDenied, decision.State)
	assert.Equal(t, "/unauthorized", decision.RedirectTo)

	store.Clear()
	decision = g.Evaluate("/admin")
	assert.Equal(t, "/signin?redirect=%2Fadmin", decision.RedirectTo)
}

func TestGuard_WatchReactsToSessionChanges(t *testing.T) {
	store := loggedInStore(t, "x", domain.RoleOwner)
	g := New(store, domain.RoleOwner)

	var decisions []Decision
	stop := g.Watch("/owner", func(d Decision) {
		decisions = append(decisions, d)
	})
	defer stop()

	// Initial evaluation is Allowed
	require.NotEmpty(t, decisions)
	assert.Equal(t, StateAllowed, decisions[0].State)

	// Logout elsewhere in the process flips the guard to Denied
	store.Clear()
	last := decisions[len(decisions)-1]
	assert.Equal(t, StateDenied, last.State)
	assert.Equal(t, "/login?redirect=%2Fowner", last.RedirectTo)
}

func TestGuard_WatchStops(t *testing.T) {
	store := loggedInStore(t, "x", domain.RoleOwner)
	g := New(store, domain.RoleOwner)

	count := 0
	stop := g.Watch("/owner", func(Decision) { count++ })
	stop()

	store.Clear()
	assert.Equal(t, 1, count, "no evaluations after stop")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "CHECKING", StateChecking.String())
	assert.Equal(t, "ALLOWED", StateAllowed.String())
	assert.Equal(t, "DENIED", StateDenied.String())
}
