package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/httpx"
)

// CookieName is the HttpOnly cookie that carries the session token.
const CookieName = "gluto_session"

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID  string
	Email   string
	IsAdmin bool
}

type identityKey struct{}

// FromContext returns the identity stored by Authenticate.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// Authenticate rejects requests without a valid token with 401. The token is
// read from the Authorization bearer header first, then the session cookie.
func Authenticate(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				httpx.Error(w, r, apperr.Unauthorized("authentication required"))
				return
			}
			claims, err := svc.Verify(token)
			if err != nil {
				httpx.Error(w, r, err)
				return
			}
			ctx := WithIdentity(r.Context(), Identity{
				UserID:  claims.Subject,
				Email:   claims.Email,
				IsAdmin: claims.IsAdmin,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after Authenticate. The admin flag is re-read from
// the store, so a demoted user loses access before the token expires.
// Non-admin callers get 403.
func RequireAdmin(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := FromContext(r.Context())
			if !ok {
				httpx.Error(w, r, apperr.Unauthorized("authentication required"))
				return
			}
			u, err := svc.CurrentUser(r.Context(), id.UserID)
			if err != nil {
				httpx.Error(w, r, err)
				return
			}
			if !u.IsAdmin {
				httpx.Error(w, r, apperr.Forbidden("admin access required"))
				return
			}
			id.IsAdmin = true
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}
