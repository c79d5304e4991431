package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/meowexpress/ecommerce-api/api/web"
	"github.com/meowexpress/ecommerce-api/api/weberr"
	"github.com/meowexpress/ecommerce-api/core/cart"
	"github.com/meowexpress/ecommerce-api/core/claims"
	"github.com/meowexpress/ecommerce-api/database"
	"github.com/meowexpress/ecommerce-api/lock"
	"github.com/meowexpress/ecommerce-api/validate"
)

// HandleCheckout converts the caller's cart into an order. The order insert
// and the cart delete happen in one transaction, so a crash can never leave
// an order behind together with its source cart.
func HandleCheckout(db *sqlx.DB, locks *lock.Keyed) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		release := locks.Acquire(clm.UserID)
		defer release()

		c, err := cart.Fetch(ctx, db, clm.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "Cart not found for the user", http.StatusNotFound)
			}
			return fmt.Errorf("fetching cart of user[%s]: %w", clm.UserID, err)
		}

		if len(c.Items) == 0 {
			err := errors.New("cart has no items")
			return weberr.NewError(err, "Cart is empty", http.StatusBadRequest)
		}

		if c.TotalPrice == 0 {
			err := errors.New("cart total is missing")
			return weberr.NewError(err, "Total price is missing in the cart", http.StatusBadRequest)
		}

		ord := Order{
			ID:          validate.GenerateID(),
			UserID:      c.UserID,
			TotalAmount: c.TotalPrice,
			CreatedAt:   time.Now().UTC(),
		}
		for _, it := range c.Items {
			ord.Items = append(ord.Items, Item{
				OrderID:   ord.ID,
				ProductID: it.ProductID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				Price:     it.Price,
				Subtotal:  it.Subtotal,
			})
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := Create(ctx, tx, ord); err != nil {
				return fmt.Errorf("creating order: %w", err)
			}

			for _, it := range ord.Items {
				if err := CreateItem(ctx, tx, it); err != nil {
					return fmt.Errorf("creating order item[%s]: %w", it.ProductID, err)
				}
			}

			if err := cart.Delete(ctx, tx, c.UserID); err != nil {
				return fmt.Errorf("flushing cart: %w", err)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("placing order for user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, ord, http.StatusOK)
	}
}

// HandleListOwn returns the caller's orders. An empty history is reported
// as not found rather than an empty list.
func HandleListOwn(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		orders, err := FetchByUser(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("listing orders of user[%s]: %w", clm.UserID, err)
		}

		if len(orders) == 0 {
			err := errors.New("user has no orders")
			return weberr.NewError(err, "No orders found for the user", http.StatusNotFound)
		}

		return web.Respond(ctx, w, orders, http.StatusOK)
	}
}

func HandleListAll(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		orders, err := FetchAll(ctx, db)
		if err != nil {
			return fmt.Errorf("listing all orders: %w", err)
		}

		return web.Respond(ctx, w, orders, http.StatusOK)
	}
}
