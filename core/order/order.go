package order

import "time"

// Order is the immutable snapshot born from a checkout. It is never
// updated or deleted afterwards.
type Order struct {
	ID          string    `json:"id" db:"order_id"`
	UserID      string    `json:"userId" db:"user_id"`
	Items       []Item    `json:"cartItems" db:"-"`
	TotalAmount float64   `json:"totalAmount" db:"total_amount"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Item struct {
	OrderID   string  `json:"-" db:"order_id"`
	ProductID string  `json:"productId" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	Quantity  int     `json:"quantity" db:"quantity"`
	Price     float64 `json:"price" db:"price"`
	Subtotal  float64 `json:"subTotal" db:"subtotal"`
}
