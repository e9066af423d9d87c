package category

import (
	"context"
	"sort"
	"sync"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
)

type memoryRepo struct {
	mu    sync.RWMutex
	items map[string]*Category
}

// NewMemoryRepository returns a process-local repository for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepo{items: make(map[string]*Category)}
}

func (r *memoryRepo) Create(_ context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.IsActive && r.nameTaken(c.Name, c.ID) {
		return apperr.Conflict("category name %q already exists", c.Name)
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound("category", id)
	}
	cp := *c
	return &cp, nil
}

func (r *memoryRepo) List(_ context.Context, activeOnly bool) ([]*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Category, 0, len(r.items))
	for _, c := range r.items {
		if activeOnly && !c.IsActive {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return apperr.NotFound("category", c.ID)
	}
	if c.IsActive && r.nameTaken(c.Name, c.ID) {
		return apperr.Conflict("category name %q already exists", c.Name)
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

// nameTaken reports whether another active category uses name. Soft-deleted
// categories release their name.
func (r *memoryRepo) nameTaken(name, exceptID string) bool {
	for id, c := range r.items {
		if id != exceptID && c.IsActive && c.Name == name {
			return true
		}
	}
	return false
}
