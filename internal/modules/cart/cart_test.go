package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rice   = Product{ID: "p-rice", Name: "Premium Basmati Rice", Price: decimal.RequireFromString("7.99")}
	coffee = Product{ID: "p-coffee", Name: "Premium Coffee Beans", Price: decimal.RequireFromString("12.99")}
)

func TestAddMergesQuantities(t *testing.T) {
	var c Cart
	c.Add(rice, 2)
	c.Add(rice, 3)

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 5, c.Lines()[0].Quantity)
	assert.Equal(t, 5, c.TotalItems())
	assert.True(t, decimal.RequireFromString("39.95").Equal(c.TotalPrice()))
}

func TestAddKeepsFirstPrice(t *testing.T) {
	var c Cart
	c.Add(rice, 1)
	c.Add(Product{ID: rice.ID, Name: "renamed", Price: decimal.NewFromInt(100)}, 1)

	line := c.Lines()[0]
	assert.Equal(t, "Premium Basmati Rice", line.ProductName)
	assert.True(t, rice.Price.Equal(line.Price))
	assert.True(t, decimal.RequireFromString("15.98").Equal(c.TotalPrice()))
}

func TestAddNonPositiveQuantityCountsAsOne(t *testing.T) {
	var c Cart
	c.Add(rice, 0)
	c.Add(coffee, -4)
	assert.Equal(t, 2, c.TotalItems())
}

func TestRemove(t *testing.T) {
	var c Cart
	c.Add(rice, 1)
	c.Add(coffee, 2)

	c.Remove("absent")
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, c.TotalItems())

	c.Remove(rice.ID)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, coffee.ID, c.Lines()[0].ProductID)
}

func TestSetQuantity(t *testing.T) {
	var c Cart
	c.Add(rice, 1)
	c.Add(coffee, 1)

	c.SetQuantity(rice.ID, 4)
	assert.Equal(t, 4, c.Lines()[0].Quantity)

	c.SetQuantity(rice.ID, 0)
	assert.Equal(t, 1, c.Len())

	c.SetQuantity("absent", 3)
	assert.Equal(t, 1, c.Len())
	for _, l := range c.Lines() {
		assert.Greater(t, l.Quantity, 0)
	}
}

func TestLinesKeepInsertionOrderAndAreCopies(t *testing.T) {
	var c Cart
	c.Add(coffee, 1)
	c.Add(rice, 1)
	c.Add(coffee, 1)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, coffee.ID, lines[0].ProductID)
	assert.Equal(t, rice.ID, lines[1].ProductID)

	lines[0].Quantity = 99
	assert.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestClear(t *testing.T) {
	var c Cart
	c.Add(rice, 3)
	c.Clear()
	assert.Zero(t, c.Len())
	assert.True(t, c.TotalPrice().IsZero())
}
