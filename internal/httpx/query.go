package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
)

// QueryInt parses an optional integer query parameter.
func QueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.ValidationFields(map[string]string{name: "integer"})
	}
	return n, nil
}
