package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/httpx"
	"github.com/georgemunganga/gluto-backend/internal/modules/user"
)

// Sessions issues tokens and writes them as the session cookie. It
// implements user.Sessions.
type Sessions struct {
	service Service
	ttl     time.Duration
	secure  bool
}

func NewSessions(service Service, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{service: service, ttl: ttl, secure: secure}
}

func (s *Sessions) Start(w http.ResponseWriter, u *user.User) (string, error) {
	token, err := s.service.IssueToken(u)
	if err != nil {
		return "", err
	}
	s.setCookie(w, token, int(s.ttl.Seconds()))
	return token, nil
}

func (s *Sessions) clear(w http.ResponseWriter) { s.setCookie(w, "", -1) }

func (s *Sessions) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Handler exposes login, logout and current-user endpoints.
type Handler struct {
	service  Service
	users    user.Service
	sessions *Sessions
}

func NewHandler(service Service, users user.Service, sessions *Sessions) *Handler {
	return &Handler{service: service, users: users, sessions: sessions}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)
	r.With(Authenticate(h.service)).Get("/api/auth/me", h.me)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	u, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	h.sessions.setCookie(w, token, int(h.sessions.ttl.Seconds()))
	httpx.Respond(w, http.StatusOK, user.SessionResponse{Token: token, User: u})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id, ok := FromContext(r.Context())
	if !ok {
		httpx.Error(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	u, err := h.users.GetUser(r.Context(), id.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			err = apperr.Unauthorized("account no longer exists")
		}
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusOK, u)
}
