// Package cart aggregates product selections into ordered lines. A Cart is a
// value type held by its caller; the server builds one per order submission
// to merge duplicate items and compute the total.
package cart

import "github.com/shopspring/decimal"

// Product is what the cart needs to know about a product at add time.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// Line is one product in the cart. Price is the unit price captured when the
// product was first added.
type Line struct {
	ProductID   string
	ProductName string
	Price       decimal.Decimal
	Quantity    int
}

// Subtotal returns Price × Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps lines in insertion order. The zero value is an empty cart.
// A Cart is not safe for concurrent use.
type Cart struct {
	lines []Line
}

// Add puts qty units of p in the cart. A quantity below 1 counts as 1. Adding
// a product already in the cart increments its line and keeps the original
// name and price.
func (c *Cart) Add(p Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity += qty
		return
	}
	c.lines = append(c.lines, Line{
		ProductID:   p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Quantity:    qty,
	})
}

// Remove drops the line for productID. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// SetQuantity replaces the quantity for productID; n <= 0 removes the line.
func (c *Cart) SetQuantity(productID string, n int) {
	if n <= 0 {
		c.Remove(productID)
		return
	}
	if i := c.index(productID); i >= 0 {
		c.lines[i].Quantity = n
	}
}

func (c *Cart) Clear() { c.lines = nil }

// TotalItems is the sum of quantities over all lines.
func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice is the sum of line subtotals at add-time prices.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len is the number of distinct products.
func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) index(productID string) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
