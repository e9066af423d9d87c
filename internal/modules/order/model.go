package order

import "time"

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Priority is the customer's stated urgency for an inquiry.
type Priority string

const (
	PriorityHigh Priority = "high"
	PriorityLow  Priority = "low"
)

// Order is a submitted inquiry. Items and TotalAmount are a snapshot taken at
// submission and never change afterwards.
type Order struct {
	ID              string    `json:"id" bson:"_id"`
	OrderNumber     string    `json:"orderNumber" bson:"orderNumber"`
	FullName        string    `json:"fullName" bson:"fullName"`
	Email           string    `json:"email" bson:"email"`
	PhoneNumber     string    `json:"phoneNumber,omitempty" bson:"phoneNumber"`
	CompanyName     string    `json:"companyName,omitempty" bson:"companyName"`
	PositionTitle   string    `json:"positionTitle,omitempty" bson:"positionTitle"`
	Address         string    `json:"address,omitempty" bson:"address"`
	InquiryPriority Priority  `json:"inquiryPriority" bson:"inquiryPriority"`
	Items           []Line    `json:"items" bson:"items"`
	TotalAmount     float64   `json:"totalAmount" bson:"totalAmount"`
	Status          Status    `json:"status" bson:"status"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Line is one product in an order, priced at submission time.
type Line struct {
	ProductID   string  `json:"productId" bson:"productId"`
	ProductName string  `json:"productName" bson:"productName"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	Price       float64 `json:"price" bson:"price"`
}

// LineRequest is one submitted cart line. Missing name or price are taken
// from the stored product.
type LineRequest struct {
	ProductID   string   `json:"productId" validate:"required"`
	ProductName string   `json:"productName" validate:"max=200"`
	Quantity    int      `json:"quantity" validate:"min=1"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
}

// PlaceOrderRequest is the payload for submitting an order inquiry.
type PlaceOrderRequest struct {
	FullName        string        `json:"fullName" validate:"required,max=200"`
	Email           string        `json:"email" validate:"required,email,max=254"`
	PhoneNumber     string        `json:"phoneNumber" validate:"max=50"`
	CompanyName     string        `json:"companyName" validate:"max=200"`
	PositionTitle   string        `json:"positionTitle" validate:"max=200"`
	Address         string        `json:"address" validate:"max=1000"`
	InquiryPriority string        `json:"inquiryPriority" validate:"required,oneof=high low"`
	Items           []LineRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateStatusRequest is the payload for moving an order to a new status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}
