package session

import (
	"os"
	"path/filepath"
	"testing"

	"machinehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadyStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(NewMemoryStorage())
	store.Rehydrate()
	return store
}

func TestStore_EmptySession(t *testing.T) {
	store := newReadyStore(t)

	assert.Empty(t, store.Token())
	assert.Empty(t, store.Role())
	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.HasRole(domain.RoleAdmin, domain.RoleOwner, domain.RoleCustomer))
	assert.False(t, store.IsAdmin())
	assert.False(t, store.IsOwner())
	assert.False(t, store.IsCustomer())
}

func TestStore_SetAndRead(t *testing.T) {
	store := newReadyStore(t)

	store.SetToken("tok-123")
	store.SetRole(domain.RoleOwner)

	assert.Equal(t, "tok-123", store.Token())
	assert.Equal(t, domain.RoleOwner, store.Role())
	assert.True(t, store.IsAuthenticated())
	assert.True(t, store.IsOwner())
	assert.False(t, store.IsAdmin())
}

func TestStore_HasRole(t *testing.T) {
	tests := []struct {
		name  string
		token string
		role  domain.Role
		allow []domain.Role
		want  bool
	}{
		{"role in allowlist", "x", domain.RoleOwner, []domain.Role{domain.RoleOwner}, true},
		{"role in wider allowlist", "x", domain.RoleCustomer, []domain.Role{domain.RoleOwner, domain.RoleCustomer}, true},
		{"role not in allowlist", "x", domain.RoleCustomer, []domain.Role{domain.RoleOwner}, false},
		{"no token means no role", "", domain.RoleAdmin, []domain.Role{domain.RoleAdmin}, false},
		{"empty allowlist", "x", domain.RoleAdmin, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newReadyStore(t)
			if tt.token != "" {
				store.SetToken(tt.token)
			}
			store.SetRole(tt.role)
			assert.Equal(t, tt.want, store.HasRole(tt.allow...))
		})
	}
}

func TestStore_Clear(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)
	store.Rehydrate()

	store.SetToken("tok")
	store.SetRole(domain.RoleAdmin)
	store.Clear()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Role())

	snapshot, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, snapshot, "persisted record must be removed")
}

func TestStore_SetTokenIdempotent(t *testing.T) {
	store := newReadyStore(t)

	notified := 0
	unsubscribe := store.Subscribe(func() { notified++ })
	defer unsubscribe()

	store.SetToken("same")
	store.SetToken("same")

	assert.Equal(t, "same", store.Token())
	assert.Equal(t, 1, notified, "identical write must leave session observably unchanged")
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	store := newReadyStore(t)

	var seen []string
	unsubscribe := store.Subscribe(func() {
		seen = append(seen, store.Token())
	})

	store.SetToken("a")
	store.SetToken("b")
	unsubscribe()
	store.SetToken("c")

	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestStore_RehydrateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := NewFileStorage(path)

	first := NewStore(storage)
	first.Rehydrate()
	first.SetToken("persisted-token")
	first.SetRole(domain.RoleCustomer)

	// A fresh store over the same file observes the identical pair
	second := NewStore(storage)
	assert.False(t, second.Ready())
	second.Rehydrate()

	assert.True(t, second.Ready())
	assert.Equal(t, "persisted-token", second.Token())
	assert.Equal(t, domain.RoleCustomer, second.Role())
}

func TestStore_RehydrateMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	store := NewStore(NewFileStorage(path))
	store.Rehydrate()

	assert.True(t, store.Ready())
	assert.False(t, store.IsAuthenticated())
}

func TestStore_RehydrateCorruptFileDegradesToLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := NewStore(NewFileStorage(path))
	store.Rehydrate()

	assert.True(t, store.Ready())
	assert.False(t, store.IsAuthenticated())
}

func TestFileStorage_ClearMissingFile(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "absent.json"))
	assert.NoError(t, storage.Clear())
}
