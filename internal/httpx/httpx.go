// Package httpx holds the JSON request/response helpers shared by every module
// handler.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/logger"
	"github.com/georgemunganga/gluto-backend/internal/validate"
)

const maxBodyBytes = 1 << 20

// Respond writes body as JSON with the given status.
func Respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error maps err to its HTTP status and writes the error body. Store failures
// are logged and their detail hidden from the caller.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Store("internal error", err)
	}
	status := ae.Status()
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		Respond(w, status, errorBody{Error: "internal server error"})
		return
	}
	Respond(w, status, errorBody{Error: ae.Message, Fields: ae.Fields})
}

// Decode reads a JSON body into dst and runs struct validation on it.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body is empty")
		}
		return apperr.Validation("malformed JSON body: %v", err)
	}
	return validate.Struct(dst)
}
