package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
)

type order struct {
	Email string `json:"email" validate:"required,email"`
	Items []item `json:"items" validate:"required,min=1,dive"`
}

type item struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(order{Email: "a@example.com", Items: []item{{ProductID: "p", Quantity: 1}}}))

	err := Struct(order{Email: "nope", Items: []item{{ProductID: "p"}, {Quantity: 2}}})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Equal(t, map[string]string{
		"email":              "email",
		"items[0].quantity":  "min=1",
		"items[1].productId": "required",
	}, ae.Fields)
}

func TestStructEmptySlice(t *testing.T) {
	err := Struct(order{Email: "a@example.com", Items: []item{}})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "min=1", ae.Fields["items"])
}
