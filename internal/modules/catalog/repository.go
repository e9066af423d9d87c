package catalog

import "context"

// Repository defines the interface for product data storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	// ListActive returns active products in creation order. An empty
	// categoryID matches every category.
	ListActive(ctx context.Context, categoryID string) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
}
