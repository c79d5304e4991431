package cart

import (
	"time"
)

// Cart is the per-user aggregate of selected products. Items are keyed
// uniquely by product so repeated adds merge into one line, and TotalPrice
// is always recomputed from the line subtotals after any mutation.
type Cart struct {
	UserID     string    `json:"userId" db:"user_id"`
	Items      []Item    `json:"cartItems" db:"-"`
	TotalPrice float64   `json:"totalPrice" db:"total_price"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Item is one product line: a quantity plus the name and unit price
// snapshotted at add-time. Subtotal is always quantity times price, never
// set independently.
type Item struct {
	UserID    string    `json:"-" db:"user_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
	Subtotal  float64   `json:"subTotal" db:"subtotal"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

type ItemNew struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// New returns an empty cart for the user.
func New(userID string, now time.Time) Cart {
	return Cart{
		UserID:    userID,
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem merges the quantity into the existing line for the product, or
// appends a new line with the given snapshot.
func (c *Cart) AddItem(productID string, name string, price float64, quantity int, now time.Time) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.recompute(now)
			return
		}
	}

	c.Items = append(c.Items, Item{
		UserID:    c.UserID,
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: now,
	})
	c.recompute(now)
}

// SetQuantity overwrites the line's quantity, appending the line when the
// product is not in the cart yet.
func (c *Cart) SetQuantity(productID string, name string, price float64, quantity int, now time.Time) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.recompute(now)
			return
		}
	}

	c.Items = append(c.Items, Item{
		UserID:    c.UserID,
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: now,
	})
	c.recompute(now)
}

// RemoveItem deletes the product's line. It reports whether the line was
// present.
func (c *Cart) RemoveItem(productID string, now time.Time) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.recompute(now)
			return true
		}
	}
	return false
}

// Clear empties the cart and zeroes the total.
func (c *Cart) Clear(now time.Time) {
	c.Items = []Item{}
	c.recompute(now)
}

// recompute restores the invariants: every subtotal is quantity times unit
// price and the total is the sum of all subtotals.
func (c *Cart) recompute(now time.Time) {
	var total float64
	for i := range c.Items {
		c.Items[i].Subtotal = float64(c.Items[i].Quantity) * c.Items[i].Price
		total += c.Items[i].Subtotal
	}
	c.TotalPrice = total
	c.UpdatedAt = now
}
