package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, is_admin, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash, user.IsAdmin,
		user.FirstName, user.LastName, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperr.Conflict("email %s is already registered", user.Email)
		}
		return apperr.Store("insert user", err)
	}
	return nil
}

func (r *postgresRepository) getUser(ctx context.Context, where, key string) (*User, error) {
	user := &User{}
	query := `
		SELECT id, email, password_hash, is_admin, first_name, last_name, created_at, updated_at
		FROM users
		WHERE ` + where + ` = $1
	`
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user", key)
	}
	if err != nil {
		return nil, apperr.Store("find user", err)
	}
	return user, nil
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.getUser(ctx, "email", email)
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	return r.getUser(ctx, "id", id)
}

func (r *postgresRepository) UpdateUser(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET email = $1, password_hash = $2, is_admin = $3, first_name = $4, last_name = $5, updated_at = $6
		WHERE id = $7
	`
	res, err := r.db.ExecContext(ctx, query, user.Email, user.PasswordHash, user.IsAdmin,
		user.FirstName, user.LastName, user.UpdatedAt, user.ID)
	if err != nil {
		return apperr.Store("update user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("user", user.ID)
	}
	return nil
}
