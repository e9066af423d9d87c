package category

import "context"

// Repository defines category persistence. Implementations translate missing
// documents into apperr NotFound and duplicate names into apperr Conflict.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	// List returns categories ordered by name.
	List(ctx context.Context, activeOnly bool) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
}
