package auth

import (
	"context"

	"github.com/dgrijalva/jwt-go"

	"github.com/georgemunganga/gluto-backend/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login checks the credentials and returns the user with a fresh token.
	Login(ctx context.Context, email, password string) (*user.User, string, error)
	// IssueToken signs a token for u.
	IssueToken(u *user.User) (string, error)
	// Verify parses a token and returns its claims. It never touches the store.
	Verify(token string) (*Claims, error)
	// CurrentUser reloads the user behind a verified token. A user that no
	// longer exists reads as Unauthorized.
	CurrentUser(ctx context.Context, userID string) (*user.User, error)
}

// Claims is the token payload. Subject carries the user id.
type Claims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.StandardClaims
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
