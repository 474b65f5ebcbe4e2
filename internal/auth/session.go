package auth

import (
	"sync"

	dom "minifeed/internal/domain"
)

// Binder maps opaque session tokens to user IDs.
// Tokens are created and expired by the transport; a missing binding is
// treated the same as an expired one.
type Binder[K comparable] struct {
	mu       sync.RWMutex
	sessions map[K]dom.UserID
}

// NewBinder returns an empty Binder.
func NewBinder[K comparable]() *Binder[K] {
	return &Binder[K]{sessions: make(map[K]dom.UserID)}
}

// Bind associates token with userID, replacing any earlier binding.
func (b *Binder[K]) Bind(token K, userID dom.UserID) {
	b.mu.Lock()
	b.sessions[token] = userID
	b.mu.Unlock()
}

// Resolve returns the user bound to token.
func (b *Binder[K]) Resolve(token K) (dom.UserID, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	id, ok := b.sessions[token]
	return id, ok
}

// Unbind removes the binding. Unbinding an unknown token is a no-op.
func (b *Binder[K]) Unbind(token K) {
	b.mu.Lock()
	delete(b.sessions, token)
	b.mu.Unlock()
}

// RequireAuth is Resolve for write paths: it fails with ErrUnauthenticated.
func (b *Binder[K]) RequireAuth(token K) (dom.UserID, error) {
	id, ok := b.Resolve(token)
	if !ok {
		return 0, dom.ErrUnauthenticated
	}
	return id, nil
}

// Len returns the number of live bindings.
func (b *Binder[K]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sessions)
}
