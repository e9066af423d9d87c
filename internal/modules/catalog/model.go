package catalog

import "time"

// Product is a sellable item listed under a category.
type Product struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description,omitempty" bson:"description"`
	Price        float64   `json:"price" bson:"price"`
	Availability int       `json:"availability" bson:"availability"`
	CategoryID   string    `json:"categoryId" bson:"categoryId"`
	Origin       string    `json:"origin,omitempty" bson:"origin"`
	Weight       string    `json:"weight,omitempty" bson:"weight"`
	Packaging    string    `json:"packaging,omitempty" bson:"packaging"`
	LeadTime     string    `json:"leadTime,omitempty" bson:"leadTime"`
	ShelfLife    string    `json:"shelfLife,omitempty" bson:"shelfLife"`
	EanUpc       string    `json:"eanUpc,omitempty" bson:"eanUpc"`
	ImageURL     string    `json:"imageUrl,omitempty" bson:"imageUrl"`
	IsActive     bool      `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`

	// Seq orders products by insertion in stores without a native sequence.
	Seq int64 `json:"-" bson:"seq,omitempty"`
}

// CreateProductRequest holds the data for creating a product.
type CreateProductRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Description  string  `json:"description" validate:"max=5000"`
	Price        float64 `json:"price" validate:"min=0"`
	Availability int     `json:"availability" validate:"min=0,max=100"`
	CategoryID   string  `json:"categoryId" validate:"required"`
	Origin       string  `json:"origin" validate:"max=200"`
	Weight       string  `json:"weight" validate:"max=100"`
	Packaging    string  `json:"packaging" validate:"max=200"`
	LeadTime     string  `json:"leadTime" validate:"max=100"`
	ShelfLife    string  `json:"shelfLife" validate:"max=100"`
	EanUpc       string  `json:"eanUpc" validate:"max=64"`
	ImageURL     string  `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateProductRequest is a partial patch; nil fields are left unchanged.
type UpdateProductRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=5000"`
	Price        *float64 `json:"price" validate:"omitempty,min=0"`
	Availability *int     `json:"availability" validate:"omitempty,min=0,max=100"`
	CategoryID   *string  `json:"categoryId" validate:"omitempty,min=1"`
	Origin       *string  `json:"origin" validate:"omitempty,max=200"`
	Weight       *string  `json:"weight" validate:"omitempty,max=100"`
	Packaging    *string  `json:"packaging" validate:"omitempty,max=200"`
	LeadTime     *string  `json:"leadTime" validate:"omitempty,max=100"`
	ShelfLife    *string  `json:"shelfLife" validate:"omitempty,max=100"`
	EanUpc       *string  `json:"eanUpc" validate:"omitempty,max=64"`
	ImageURL     *string  `json:"imageUrl" validate:"omitempty,url"`
}
