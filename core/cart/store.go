package cart

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Fetch loads the user's cart with all of its lines. sql.ErrNoRows is
// returned when the user has no cart.
func Fetch(ctx context.Context, db sqlx.ExtContext, userID string) (Cart, error) {
	const q = `SELECT * FROM carts WHERE user_id = $1`

	var c Cart
	if err := sqlx.GetContext(ctx, db, &c, q, userID); err != nil {
		return Cart{}, err
	}

	items, err := FetchItems(ctx, db, userID)
	if err != nil {
		return Cart{}, fmt.Errorf("fetching cart items: %w", err)
	}
	c.Items = items

	return c, nil
}

func FetchItems(ctx context.Context, db sqlx.ExtContext, userID string) ([]Item, error) {
	const q = `SELECT * FROM cart_items WHERE user_id = $1 ORDER BY created_at`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, userID); err != nil {
		return nil, err
	}

	return items, nil
}

// Save writes the whole aggregate: it upserts the cart row and replaces its
// lines. Run it inside a transaction so readers never observe a half-written
// cart.
func Save(ctx context.Context, tx sqlx.ExtContext, c Cart) error {
	const upsert = `
	INSERT INTO carts (user_id, total_price, created_at, updated_at)
	VALUES (:user_id, :total_price, :created_at, :updated_at)
	ON CONFLICT (user_id) DO UPDATE SET total_price = :total_price, updated_at = :updated_at`

	if _, err := sqlx.NamedExecContext(ctx, tx, upsert, c); err != nil {
		return fmt.Errorf("upserting cart of user[%s]: %w", c.UserID, err)
	}

	const del = `DELETE FROM cart_items WHERE user_id = $1`
	if _, err := tx.ExecContext(ctx, del, c.UserID); err != nil {
		return fmt.Errorf("flushing cart items of user[%s]: %w", c.UserID, err)
	}

	const ins = `
	INSERT INTO cart_items (user_id, product_id, name, quantity, price, subtotal, created_at)
	VALUES (:user_id, :product_id, :name, :quantity, :price, :subtotal, :created_at)`

	for _, it := range c.Items {
		it.UserID = c.UserID
		if _, err := sqlx.NamedExecContext(ctx, tx, ins, it); err != nil {
			return fmt.Errorf("inserting cart item[%s]: %w", it.ProductID, err)
		}
	}

	return nil
}

// Delete removes the cart and, by cascade, its lines.
func Delete(ctx context.Context, db sqlx.ExtContext, userID string) error {
	const q = `DELETE FROM carts WHERE user_id = $1`

	if _, err := db.ExecContext(ctx, q, userID); err != nil {
		return fmt.Errorf("deleting cart of user[%s]: %w", userID, err)
	}

	return nil
}
