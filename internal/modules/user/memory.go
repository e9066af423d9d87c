package user

import (
	"context"
	"sync"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryRepository returns a process-local repository for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]*User)}
}

func (r *memoryRepository) CreateUser(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperr.Conflict("email %s is already registered", user.Email)
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryRepository) GetUserByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user", email)
}

func (r *memoryRepository) GetUserByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (r *memoryRepository) UpdateUser(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return apperr.NotFound("user", user.ID)
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}
