package catalog

import (
	"context"
	"sync"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
)

type memoryRepo struct {
	mu    sync.RWMutex
	order []string
	items map[string]*Product
}

// NewMemoryRepository returns a process-local repository for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepo{items: make(map[string]*Product)}
}

func (r *memoryRepo) Create(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; ok {
		return apperr.Conflict("product %s already exists", p.ID)
	}
	cp := *p
	r.items[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound("product", id)
	}
	cp := *p
	return &cp, nil
}

func (r *memoryRepo) ListActive(_ context.Context, categoryID string) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.items[id]
		if !p.IsActive || (categoryID != "" && p.CategoryID != categoryID) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return apperr.NotFound("product", p.ID)
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}
