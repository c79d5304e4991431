package order

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, o Order) error {
	const q = `
	INSERT INTO orders (order_id, user_id, total_amount, created_at)
	VALUES (:order_id, :user_id, :total_amount, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, o); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	return nil
}

func CreateItem(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO order_items (order_id, product_id, name, quantity, price, subtotal)
	VALUES (:order_id, :product_id, :name, :quantity, :price, :subtotal)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("inserting order item: %w", err)
	}

	return nil
}

func FetchByUser(ctx context.Context, db sqlx.ExtContext, userID string) ([]Order, error) {
	const q = `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at`

	orders := []Order{}
	if err := sqlx.SelectContext(ctx, db, &orders, q, userID); err != nil {
		return nil, fmt.Errorf("selecting orders of user[%s]: %w", userID, err)
	}

	if err := attachItems(ctx, db, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]Order, error) {
	const q = `SELECT * FROM orders ORDER BY created_at`

	orders := []Order{}
	if err := sqlx.SelectContext(ctx, db, &orders, q); err != nil {
		return nil, fmt.Errorf("selecting all orders: %w", err)
	}

	if err := attachItems(ctx, db, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func attachItems(ctx context.Context, db sqlx.ExtContext, orders []Order) error {
	const q = `SELECT * FROM order_items WHERE order_id = $1`

	for i := range orders {
		items := []Item{}
		if err := sqlx.SelectContext(ctx, db, &items, q, orders[i].ID); err != nil {
			return fmt.Errorf("selecting items of order[%s]: %w", orders[i].ID, err)
		}
		orders[i].Items = items
	}

	return nil
}
