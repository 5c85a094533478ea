package session

import (
	"log"
	"sync"

	"machinehub/internal/core/domain"
)

// Store holds the current authentication token and role. It is the
// single source of truth for "who is logged in and what they may see".
// State survives restarts through the Storage backend and every reader
// observes the latest write. Mutators never fail; persistence errors
// are logged and the in-memory state stays authoritative.
type Store struct {
	mu      sync.RWMutex
	token   string
	role    domain.Role
	ready   bool
	storage Storage

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewStore creates a store backed by the given storage. The store is
// not ready until Rehydrate has run.
func NewStore(storage Storage) *Store {
	return &Store{
		storage: storage,
		subs:    make(map[int]func()),
	}
}

// Current is the process-wide store instance, set by Init
var Current *Store

// Init creates, rehydrates and installs the process-wide store
func Init(storage Storage) *Store {
	store := NewStore(storage)
	store.Rehydrate()
	Current = store
	return store
}

// Rehydrate restores persisted state into memory. A missing record
// means logged out; a corrupt or unreadable record degrades to logged
// out rather than failing. The store is ready afterwards either way.
func (s *Store) Rehydrate() {
	snapshot, err := s.storage.Load()

	s.mu.Lock()
	if err != nil {
		log.Printf("⚠️ Session rehydration failed, starting logged out: %v", err)
	} else if snapshot != nil {
		s.token = snapshot.Token
		s.role = domain.Role(snapshot.Role)
	}
	s.ready = true
	s.mu.Unlock()

	s.notify()
}

// Ready reports whether rehydration has completed
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// SetToken stores the token and persists the session
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	if s.token == token {
		s.mu.Unlock()
		return
	}
	s.token = token
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
}

// SetRole stores the role and persists the session
func (s *Store) SetRole(role domain.Role) {
	s.mu.Lock()
	if s.role == role {
		s.mu.Unlock()
		return
	}
	s.role = role
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
}

// Clear removes token and role and drops the persisted record
func (s *Store) Clear() {
	s.mu.Lock()
	if s.token == "" && s.role == "" {
		s.mu.Unlock()
		return
	}
	s.token = ""
	s.role = ""
	if err := s.storage.Clear(); err != nil {
		log.Printf("⚠️ Failed to clear persisted session: %v", err)
	}
	s.mu.Unlock()

	s.notify()
}

// Token returns the current token, empty when logged out
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Role returns the current role, empty when logged out
func (s *Store) Role() domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// IsAuthenticated reports whether a token is present
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// HasRole reports whether the session is authenticated and the current
// role is in the allowlist. The role alone is never enough.
func (s *Store) HasRole(roles ...domain.Role) bool {
	s.mu.RLock()
	token, role := s.token, s.role
	s.mu.RUnlock()

	if token == "" {
		return false
	}
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the session holds the ADMIN role
func (s *Store) IsAdmin() bool {
	return s.HasRole(domain.RoleAdmin)
}

// IsOwner reports whether the session holds the OWNER role
func (s *Store) IsOwner() bool {
	return s.HasRole(domain.RoleOwner)
}

// IsCustomer reports whether the session holds the CUSTOMER role
func (s *Store) IsCustomer() bool {
	return s.HasRole(domain.RoleCustomer)
}

// Subscribe registers fn to run after every session mutation. The
// returned function unsubscribes. Callbacks run synchronously on the
// mutating goroutine and must not mutate the store themselves.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// persistLocked writes the current snapshot; caller holds s.mu
func (s *Store) persistLocked() {
	snapshot := &Snapshot{Token: s.token, Role: string(s.role)}
	if err := s.storage.Save(snapshot); err != nil {
		log.Printf("⚠️ Failed to persist session: %v", err)
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	callbacks := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		callbacks = append(callbacks, fn)
	}
	s.subMu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
