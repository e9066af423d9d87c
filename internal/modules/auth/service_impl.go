package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/modules/user"
)

const issuer = "gluto"

var errInvalidCredentials = apperr.Unauthorized("invalid email or password")

type service struct {
	userRepo user.Repository
	jwtKey   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewService creates a new auth service signing HS256 tokens with secret.
func NewService(userRepo user.Repository, secret string, ttl time.Duration) Service {
	return &service{
		userRepo: userRepo,
		jwtKey:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, "", errInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", errInvalidCredentials
	}

	token, err := s.IssueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) IssueToken(u *user.User) (string, error) {
	now := s.now()
	claims := &Claims{
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID,
			Issuer:    issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return "", apperr.Store("sign token", err)
	}
	return tokenString, nil
}

func (s *service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	if claims.Subject == "" || claims.Issuer != issuer {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return claims, nil
}

func (s *service) CurrentUser(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized("account no longer exists")
		}
		return nil, err
	}
	return u, nil
}
