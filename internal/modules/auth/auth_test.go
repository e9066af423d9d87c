package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/modules/user"
)

const testSecret = "test-secret"

type env struct {
	users    user.Service
	repo     user.Repository
	svc      Service
	sessions *Sessions
	router   *chi.Mux
}

func newEnv(t *testing.T) *env {
	t.Helper()
	repo := user.NewMemoryRepository()
	users := user.NewService(repo)
	svc := NewService(repo, testSecret, time.Hour)
	sessions := NewSessions(svc, time.Hour, false)

	r := chi.NewRouter()
	user.NewHandler(users, sessions).RegisterRoutes(r)
	NewHandler(svc, users, sessions).RegisterRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(Authenticate(svc), RequireAdmin(svc))
		r.Get("/api/admin/ping", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return &env{users: users, repo: repo, svc: svc, sessions: sessions, router: r}
}

func (e *env) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	_, _, err := e.users.EnsureAdmin(ctx, "admin@glutointernational.com", "correct-horse")
	require.NoError(t, err)

	u, token, err := e.svc.Login(ctx, "Admin@GlutoInternational.com", "correct-horse")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	claims, err := e.svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.True(t, claims.IsAdmin)

	_, _, err = e.svc.Login(ctx, "admin@glutointernational.com", "wrong")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	_, _, err = e.svc.Login(ctx, "nobody@example.com", "correct-horse")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	e := newEnv(t)

	other := NewService(e.repo, "another-secret", time.Hour)
	foreign, err := other.IssueToken(&user.User{ID: "u1", Email: "x@example.com"})
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   "u1",
			Issuer:    issuer,
			ExpiresAt: time.Now().Add(-time.Minute).Unix(),
		},
	})
	expiredToken, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      expiredToken,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := e.svc.Verify(token)
			assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
		})
	}
}

func TestRegisterLoginMeFlow(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/api/auth/register", `{"email":"buyer@example.com","password":"s3cretpass"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var session user.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.NotEmpty(t, session.Token)
	assert.False(t, session.User.IsAdmin)
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	rec = e.do(http.MethodPost, "/api/auth/login", `{"email":"buyer@example.com","password":"wrong-pass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(http.MethodPost, "/api/auth/login", `{"email":"buyer@example.com","password":"s3cretpass"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))

	rec = e.do(http.MethodGet, "/api/auth/me", "", session.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"buyer@example.com"`)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: session.Token})
	cookieRec := httptest.NewRecorder()
	e.router.ServeHTTP(cookieRec, req)
	assert.Equal(t, http.StatusOK, cookieRec.Code)

	rec = e.do(http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestAdminGuard(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	buyer, err := e.users.RegisterUser(ctx, user.RegisterRequest{Email: "buyer@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	buyerToken, err := e.svc.IssueToken(buyer)
	require.NoError(t, err)

	admin, _, err := e.users.EnsureAdmin(ctx, "admin@glutointernational.com", "correct-horse")
	require.NoError(t, err)
	adminToken, err := e.svc.IssueToken(admin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/admin/ping", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/admin/ping", "", "forged").Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/api/admin/ping", "", buyerToken).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/admin/ping", "", adminToken).Code)
}

func TestAdminGuardRereadsAdminFlag(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	admin, _, err := e.users.EnsureAdmin(ctx, "admin@glutointernational.com", "correct-horse")
	require.NoError(t, err)
	token, err := e.svc.IssueToken(admin)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/admin/ping", "", token).Code)

	demoted, err := e.repo.GetUserByID(ctx, admin.ID)
	require.NoError(t, err)
	demoted.IsAdmin = false
	require.NoError(t, e.repo.UpdateUser(ctx, demoted))

	claims, err := e.svc.Verify(token)
	require.NoError(t, err)
	require.True(t, claims.IsAdmin, "token still carries the old flag")
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/api/admin/ping", "", token).Code)

	ghost, err := e.svc.IssueToken(&user.User{ID: "deleted-user", Email: "gone@example.com", IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/admin/ping", "", ghost).Code)
}
