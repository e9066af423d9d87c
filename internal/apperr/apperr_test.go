package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusByKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{NotFound("product", "x"), http.StatusNotFound},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Forbidden("admin only"), http.StatusForbidden},
		{Conflict("dup"), http.StatusConflict},
		{InvalidTransition("nope"), http.StatusConflict},
		{Store("insert", errors.New("down")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.Status(), tc.err.Error())
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("update category: %w", NotFound("category", "abc"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(err, KindValidation))

	assert.Equal(t, KindStore, KindOf(errors.New("plain")))
}

func TestErrorMessageIncludesFields(t *testing.T) {
	err := ValidationFields(map[string]string{"email": "email", "fullName": "required"})
	assert.Equal(t, "validation failed (email: email, fullName: required)", err.Error())

	wrapped := Store("find products", errors.New("timeout"))
	assert.Equal(t, "find products: timeout", wrapped.Error())
	assert.ErrorContains(t, fmt.Errorf("x: %w", wrapped), "timeout")
}
