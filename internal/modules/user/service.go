package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	// RegisterUser creates a non-admin account.
	RegisterUser(ctx context.Context, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	// EnsureAdmin creates an admin account for email, or promotes the existing
	// account and resets its password. It reports whether a user was created.
	EnsureAdmin(ctx context.Context, email, password string) (*User, bool, error)
}
