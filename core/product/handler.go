package product

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
	"github.com/meowexpress/ecommerce-api/validate"
)

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pn ProductNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(pn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if _, err := FetchByName(ctx, db, pn.Name); err == nil {
			err := errors.New("product already exists")
			return weberr.Conflict(err, err.Error())
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking product name[%s]: %w", pn.Name, err)
		}

		now := time.Now().UTC()
		p := Product{
			ID:          validate.GenerateID(),
			Name:        pn.Name,
			Category:    pn.Category,
			Description: pn.Description,
			ImageURL:    pn.ImageURL,
			Price:       pn.Price,
			Available:   true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := Create(ctx, db, p); err != nil {
			return fmt.Errorf("creating product: %w", err)
		}

		return web.Respond(ctx, w, p, http.StatusCreated)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		p, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "Product not found", http.StatusNotFound)
			}
			return fmt.Errorf("fetching product[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ps, err := List(ctx, db)
		if err != nil {
			return fmt.Errorf("listing products: %w", err)
		}

		return web.Respond(ctx, w, ps, http.StatusOK)
	}
}

func HandleListAvailable(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ps, err := ListAvailable(ctx, db)
		if err != nil {
			return fmt.Errorf("listing available products: %w", err)
		}

		return web.Respond(ctx, w, ps, http.StatusOK)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var up ProductUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		p, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "Product not found", http.StatusNotFound)
			}
			return fmt.Errorf("fetching product[%s]: %w", id, err)
		}

		if up.Name != nil {
			p.Name = *up.Name
		}
		if up.Category != nil {
			p.Category = *up.Category
		}
		if up.Description != nil {
			p.Description = *up.Description
		}
		if up.Price != nil {
			p.Price = *up.Price
		}
		if up.ImageURL != nil {
			p.ImageURL = *up.ImageURL
		}
		p.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, p); err != nil {
			return fmt.Errorf("updating product[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

// HandleArchive soft-disables the product. Products are never hard-deleted.
func HandleArchive(db *sqlx.DB) web.Handler {
	return handleAvailability(db, false)
}

func HandleActivate(db *sqlx.DB) web.Handler {
	return handleAvailability(db, true)
}

func handleAvailability(db *sqlx.DB, available bool) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if _, err := Fetch(ctx, db, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "Product not found", http.StatusNotFound)
			}
			return fmt.Errorf("fetching product[%s]: %w", id, err)
		}

		if err := SetAvailability(ctx, db, id, available); err != nil {
			return fmt.Errorf("toggling product[%s]: %w", id, err)
		}

		p, err := Fetch(ctx, db, id)
		if err != nil {
			return fmt.Errorf("fetching product[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

func HandleSearchByName(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var ns NameSearch
		if err := web.Decode(w, r, &ns); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(ns); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		ps, err := SearchByName(ctx, db, ns.Name)
		if err != nil {
			return fmt.Errorf("searching products by name[%s]: %w", ns.Name, err)
		}

		return web.Respond(ctx, w, ps, http.StatusOK)
	}
}

func HandleSearchByPrice(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pr PriceSearch
		if err := web.Decode(w, r, &pr); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(pr); err != nil {
			return weberr.NewError(errors.New("both minPrice and maxPrice are required"), "Both minPrice and maxPrice are required", http.StatusBadRequest)
		}

		ps, err := SearchByPriceRange(ctx, db, *pr.MinPrice, *pr.MaxPrice)
		if err != nil {
			return fmt.Errorf("searching products by price range: %w", err)
		}

		return web.Respond(ctx, w, ps, http.StatusOK)
	}
}
