package product

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, p Product) error {
	const q = `
	INSERT INTO products (product_id, name, category, description, image_url, price, available, created_at, updated_at)
	VALUES (:product_id, :name, :category, :description, :image_url, :price, :available, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, p); err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Product, error) {
	const q = `SELECT * FROM products WHERE product_id = $1`

	var p Product
	if err := sqlx.GetContext(ctx, db, &p, q, id); err != nil {
		return Product{}, err
	}

	return p, nil
}

func FetchByName(ctx context.Context, db sqlx.ExtContext, name string) (Product, error) {
	const q = `SELECT * FROM products WHERE name = $1`

	var p Product
	if err := sqlx.GetContext(ctx, db, &p, q, name); err != nil {
		return Product{}, err
	}

	return p, nil
}

func List(ctx context.Context, db sqlx.ExtContext) ([]Product, error) {
	const q = `SELECT * FROM products ORDER BY created_at`

	ps := []Product{}
	if err := sqlx.SelectContext(ctx, db, &ps, q); err != nil {
		return nil, fmt.Errorf("selecting products: %w", err)
	}

	return ps, nil
}

func ListAvailable(ctx context.Context, db sqlx.ExtContext) ([]Product, error) {
	const q = `SELECT * FROM products WHERE available ORDER BY created_at`

	ps := []Product{}
	if err := sqlx.SelectContext(ctx, db, &ps, q); err != nil {
		return nil, fmt.Errorf("selecting available products: %w", err)
	}

	return ps, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, p Product) error {
	const q = `
	UPDATE products SET
	name = :name,
	category = :category,
	description = :description,
	image_url = :image_url,
	price = :price,
	updated_at = :updated_at
	WHERE product_id = :product_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, p); err != nil {
		return fmt.Errorf("updating product[%s]: %w", p.ID, err)
	}

	return nil
}

func SetAvailability(ctx context.Context, db sqlx.ExtContext, id string, available bool) error {
	const q = `UPDATE products SET available = $2, updated_at = now() WHERE product_id = $1`

	if _, err := db.ExecContext(ctx, q, id, available); err != nil {
		return fmt.Errorf("setting availability of product[%s]: %w", id, err)
	}

	return nil
}

// SearchByName matches the name by case-insensitive substring. No match is
// an empty slice, not an error.
func SearchByName(ctx context.Context, db sqlx.ExtContext, name string) ([]Product, error) {
	const q = `SELECT * FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at`

	ps := []Product{}
	if err := sqlx.SelectContext(ctx, db, &ps, q, name); err != nil {
		return nil, fmt.Errorf("searching products by name: %w", err)
	}

	return ps, nil
}

// SearchByPriceRange returns products with price inside the inclusive
// [min, max] range.
func SearchByPriceRange(ctx context.Context, db sqlx.ExtContext, min float64, max float64) ([]Product, error) {
	const q = `SELECT * FROM products WHERE price >= $1 AND price <= $2 ORDER BY price`

	ps := []Product{}
	if err := sqlx.SelectContext(ctx, db, &ps, q, min, max); err != nil {
		return nil, fmt.Errorf("searching products by price range: %w", err)
	}

	return ps, nil
}
