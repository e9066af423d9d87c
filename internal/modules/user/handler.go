package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/gluto-backend/internal/httpx"
)

// Sessions starts a signed-in session for a user on the response and
// returns the bearer token.
type Sessions interface {
	Start(w http.ResponseWriter, u *User) (string, error)
}

type Handler struct {
	service  Service
	sessions Sessions
}

func NewHandler(service Service, sessions Sessions) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/api/auth/register", h.registerUser)
}

// SessionResponse is returned by register and login.
type SessionResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	user, err := h.service.RegisterUser(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	token, err := h.sessions.Start(w, user)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, SessionResponse{Token: token, User: user})
}
