package user

import "time"

// User is an account that can sign in. Only admins reach the back-office.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	IsAdmin      bool      `json:"isAdmin" bson:"isAdmin"`
	FirstName    string    `json:"firstName,omitempty" bson:"firstName"`
	LastName     string    `json:"lastName,omitempty" bson:"lastName"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}
