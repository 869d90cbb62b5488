// Package cart holds the in-memory cart of the active chat session.
// It is owned by a single session and is not safe for concurrent use.
package cart

import (
	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
	"github.com/google/uuid"
)

// Line is one product/quantity pairing. At most one line exists per
// product id; adding an already-present product increments its line.
type Line struct {
	ID       string
	Product  domain.Product
	Quantity int
}

// Subtotal is quantity * unit price in whole CFA.
func (l Line) Subtotal() int64 {
	return int64(l.Quantity) * l.Product.Price
}

type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add inserts a new line with quantity 1, or increments the existing line
// for the same product.
func (c *Cart) Add(p domain.Product) {
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ID:       uuid.NewString(),
		Product:  p,
		Quantity: 1,
	})
}

// SetQuantity updates a line in place; a quantity of zero or less removes
// the line. Unknown line ids are ignored.
func (c *Cart) SetQuantity(lineID string, quantity int) {
	for i := range c.lines {
		if c.lines[i].ID != lineID {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = quantity
		}
		return
	}
}

// Remove deletes a line. Absent lines are a no-op, not an error.
func (c *Cart) Remove(lineID string) {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Total sums quantity * price over all lines. Empty cart totals zero.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// LineCount is the number of distinct lines ("N lignes").
func (c *Cart) LineCount() int {
	return len(c.lines)
}

// ItemCount is the sum of quantities ("N articles").
func (c *Cart) ItemCount() int {
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Snapshot copies the current lines, in insertion order. The copy is what
// gets handed to order submission so later cart edits cannot leak into an
// in-flight request.
func (c *Cart) Snapshot() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}
