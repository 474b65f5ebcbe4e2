package repo

import (
	"sync"

	dom "minifeed/internal/domain"
)

// UserRepo provides user identity storage.
type UserRepo interface {
	FindByName(name string) (dom.User, bool)
	Get(id dom.UserID) (dom.User, bool)
	Exists(id dom.UserID) bool
	Register(name, credential string) (dom.UserID, error)
	Authenticate(name, credential string) (dom.UserID, error)
}

// MemUserRepo implements UserRepo in process memory.
// Users are never deleted, so users[i] always holds ID i+1.
type MemUserRepo struct {
	mu     sync.RWMutex
	users  []dom.User
	byName map[string]dom.UserID
}

// NewMemUserRepo returns an empty MemUserRepo.
func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{byName: make(map[string]dom.UserID)}
}

// FindByName returns the user with exactly this name. Matching is case-sensitive.
func (r *MemUserRepo) FindByName(name string) (dom.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	if !ok {
		return dom.User{}, false
	}
	return r.users[id-1], true
}

// Get returns the user by ID.
func (r *MemUserRepo) Get(id dom.UserID) (dom.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getLocked(id)
}

// Exists reports whether a user with this ID was registered.
func (r *MemUserRepo) Exists(id dom.UserID) bool {
	_, ok := r.Get(id)
	return ok
}

// Register inserts a new user and returns its ID.
func (r *MemUserRepo) Register(name, credential string) (dom.UserID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[name]; taken {
		return 0, dom.ErrDuplicateName
	}
	id := dom.UserID(len(r.users) + 1)
	r.users = append(r.users, dom.User{ID: id, Name: name, Credential: credential})
	r.byName[name] = id
	return id, nil
}

// Authenticate returns the user ID if name and credential match exactly.
// An unknown name and a wrong credential are both ErrAuthFailed.
func (r *MemUserRepo) Authenticate(name, credential string) (dom.UserID, error) {
	u, ok := r.FindByName(name)
	if !ok || u.Credential != credential {
		return 0, dom.ErrAuthFailed
	}
	return u.ID, nil
}

// Count returns the number of registered users.
func (r *MemUserRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *MemUserRepo) getLocked(id dom.UserID) (dom.User, bool) {
	if id < 1 || int(id) > len(r.users) {
		return dom.User{}, false
	}
	return r.users[id-1], true
}
