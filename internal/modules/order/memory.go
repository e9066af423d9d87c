package order

import (
	"context"
	"sync"
	"time"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
)

type memoryRepo struct {
	mu     sync.RWMutex
	orders []*Order
}

// NewMemoryRepository returns a process-local repository for development and tests.
func NewMemoryRepository() Repository { return &memoryRepo{} }

func clone(o *Order) *Order {
	cp := *o
	cp.Items = append([]Line(nil), o.Items...)
	return &cp
}

func (r *memoryRepo) Create(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.OrderNumber == o.OrderNumber {
			return apperr.Conflict("order number %s already exists", o.OrderNumber)
		}
	}
	r.orders = append(r.orders, clone(o))
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return clone(o), nil
		}
	}
	return nil, apperr.NotFound("order", id)
}

func (r *memoryRepo) List(_ context.Context, status Status) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*Order{}
	for i := len(r.orders) - 1; i >= 0; i-- {
		o := r.orders[i]
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, clone(o))
	}
	return out, nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id string, from, to Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID != id {
			continue
		}
		if o.Status != from {
			return apperr.InvalidTransition("order %s is no longer %s", id, from)
		}
		o.Status = to
		o.UpdatedAt = at
		return nil
	}
	return apperr.NotFound("order", id)
}
