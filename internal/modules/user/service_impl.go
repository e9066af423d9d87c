package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
)

// MinPasswordLength is the shortest password accepted for any account.
const MinPasswordLength = 8

type service struct {
	repo Repository
	cost int
	now  func() time.Time
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo, cost: bcrypt.DefaultCost, now: func() time.Time { return time.Now().UTC() }}
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) RegisterUser(ctx context.Context, req RegisterRequest) (*User, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return nil, apperr.ValidationFields(map[string]string{"email": "required"})
	}
	hashedPassword, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *service) EnsureAdmin(ctx context.Context, email, password string) (*User, bool, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, false, apperr.ValidationFields(map[string]string{"email": "required"})
	}
	hashedPassword, err := s.hash(password)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		existing.PasswordHash = hashedPassword
		existing.IsAdmin = true
		existing.UpdatedAt = s.now()
		if err := s.repo.UpdateUser(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	case !apperr.Is(err, apperr.KindNotFound):
		return nil, false, err
	}

	now := s.now()
	admin := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashedPassword,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, admin); err != nil {
		return nil, false, err
	}
	return admin, true, nil
}

func (s *service) hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", apperr.ValidationFields(map[string]string{"password": "min=8"})
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", apperr.Validation("password cannot be hashed: %v", err)
	}
	return string(hashed), nil
}
