package category

import (
	"bytes"
	"encoding/json"
	"time"
)

// Category groups products. A nil ParentID marks a root category.
type Category struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description"`
	ParentID    *string   `json:"parentId" bson:"parentId"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Node is a category with its active children, used by the tree view.
type Node struct {
	*Category
	Children []*Node `json:"children"`
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description" validate:"max=2000"`
	ParentID    *string `json:"parentId" validate:"omitempty,min=1"`
}

// UpdateCategoryRequest is a partial patch; nil fields are left unchanged.
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	ParentID    OptionalID `json:"parentId"`
}

// OptionalID tells an absent field apart from an explicit null, so a patch
// can detach a category from its parent.
type OptionalID struct {
	Set   bool
	Value *string
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
