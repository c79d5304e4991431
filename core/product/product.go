package product

import "time"

type Product struct {
	ID          string    `json:"id" db:"product_id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	Price       float64   `json:"price" db:"price"`
	Available   bool      `json:"isAvailable" db:"available"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type ProductNew struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl"`
}

type ProductUp struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"imageUrl"`
}

type NameSearch struct {
	Name string `json:"name" validate:"required"`
}

// PriceSearch bounds are pointers so that a missing bound is told apart
// from an explicit zero.
type PriceSearch struct {
	MinPrice *float64 `json:"minPrice" validate:"required"`
	MaxPrice *float64 `json:"maxPrice" validate:"required"`
}
