package seed

import (
	"context"
	"log/slog"

	"github.com/georgemunganga/gluto-backend/internal/modules/user"
)

// Admin creates the bootstrap admin account, or promotes and resets the
// password of an existing account with the same email.
func Admin(ctx context.Context, users user.Service, email, password string) (*user.User, error) {
	u, created, err := users.EnsureAdmin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if created {
		slog.Info("admin user created", "email", u.Email)
	} else {
		slog.Info("admin user updated", "email", u.Email)
	}
	return u, nil
}
