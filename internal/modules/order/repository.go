package order

import (
	"context"
	"time"
)

// Repository defines data access for orders. Orders are never deleted.
type Repository interface {
	Create(ctx context.Context, o *Order) error

	GetByID(ctx context.Context, id string) (*Order, error)

	// List returns orders newest first. An empty status matches every status.
	List(ctx context.Context, status Status) ([]*Order, error)

	// UpdateStatus sets the status of an order only if it is still in from,
	// so concurrent transitions cannot both succeed.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error
}
