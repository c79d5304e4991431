package cart

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
	"github.com/meowexpress/ecommerce-api/core/claims"
	"github.com/meowexpress/ecommerce-api/core/product"
	"github.com/meowexpress/ecommerce-api/database"
	"github.com/meowexpress/ecommerce-api/lock"
	"github.com/meowexpress/ecommerce-api/validate"
)

// Carts belong to shoppers. Admin identities are rejected.
func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		if clm.Role == claims.RoleAdmin {
			return weberr.Forbidden(errors.New("admin users don't own a cart"))
		}

		c, err := Fetch(ctx, db, clm.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "No cart found", http.StatusNotFound)
			}
			return fmt.Errorf("fetching cart of user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleAddItem(db *sqlx.DB, locks *lock.Keyed) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		if clm.Role == claims.RoleAdmin {
			return weberr.Forbidden(errors.New("admin users don't own a cart"))
		}

		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		p, err := product.Fetch(ctx, db, in.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "Product not found", http.StatusNotFound)
			}
			return fmt.Errorf("fetching product[%s]: %w", in.ProductID, err)
		}

		release := locks.Acquire(clm.UserID)
		defer release()

		var c Cart
		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			now := time.Now().UTC()

			c, err = Fetch(ctx, tx, clm.UserID)
			if errors.Is(err, sql.ErrNoRows) {
				c = New(clm.UserID, now)
			} else if err != nil {
				return fmt.Errorf("fetching cart: %w", err)
			}

			c.AddItem(p.ID, p.Name, p.Price, in.Quantity, now)

			return Save(ctx, tx, c)
		})
		if err != nil {
			return fmt.Errorf("adding product[%s] to cart of user[%s]: %w", p.ID, clm.UserID, err)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleUpdateQuantity(db *sqlx.DB, locks *lock.Keyed) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		p, err := product.Fetch(ctx, db, in.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "Product not found", http.StatusNotFound)
			}
			return fmt.Errorf("fetching product[%s]: %w", in.ProductID, err)
		}

		release := locks.Acquire(clm.UserID)
		defer release()

		var c Cart
		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			now := time.Now().UTC()

			c, err = Fetch(ctx, tx, clm.UserID)
			if errors.Is(err, sql.ErrNoRows) {
				c = New(clm.UserID, now)
			} else if err != nil {
				return fmt.Errorf("fetching cart: %w", err)
			}

			c.SetQuantity(p.ID, p.Name, p.Price, in.Quantity, now)

			return Save(ctx, tx, c)
		})
		if err != nil {
			return fmt.Errorf("updating quantity of product[%s] for user[%s]: %w", p.ID, clm.UserID, err)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleDeleteItem(db *sqlx.DB, locks *lock.Keyed) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		productID := web.Param(r, "productId")

		release := locks.Acquire(clm.UserID)
		defer release()

		var c Cart
		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			now := time.Now().UTC()

			c, err = Fetch(ctx, tx, clm.UserID)
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "Cart not found", http.StatusNotFound)
			} else if err != nil {
				return fmt.Errorf("fetching cart: %w", err)
			}

			if !c.RemoveItem(productID, now) {
				err := errors.New("item not in cart")
				return weberr.NewError(err, "Item not found in cart", http.StatusNotFound)
			}

			return Save(ctx, tx, c)
		})
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleClear(db *sqlx.DB, locks *lock.Keyed) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		release := locks.Acquire(clm.UserID)
		defer release()

		var c Cart
		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			now := time.Now().UTC()

			c, err = Fetch(ctx, tx, clm.UserID)
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "Cart not found", http.StatusNotFound)
			} else if err != nil {
				return fmt.Errorf("fetching cart: %w", err)
			}

			c.Clear(now)

			return Save(ctx, tx, c)
		})
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}
