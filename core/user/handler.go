package user

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
	"github.com/meowexpress/ecommerce-api/core/auth"
	"github.com/meowexpress/ecommerce-api/core/claims"
	"github.com/meowexpress/ecommerce-api/validate"
	"golang.org/x/crypto/bcrypt"
)

func HandleRegister(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var un UserNew
		if err := web.Decode(w, r, &un); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(un); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if _, err := FetchByEmail(ctx, db, un.Email); err == nil {
			err := errors.New("email already registered")
			return weberr.Conflict(err, err.Error())
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking email[%s]: %w", un.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(un.Password), 10)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		now := time.Now().UTC()
		u := User{
			ID:           validate.GenerateID(),
			FirstName:    un.FirstName,
			LastName:     un.LastName,
			Email:        un.Email,
			MobileNo:     un.MobileNo,
			Address:      un.Address,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := Create(ctx, db, u); err != nil {
			return fmt.Errorf("creating user: %w", err)
		}

		return web.Respond(ctx, w, u, http.StatusCreated)
	}
}

func HandleLogin(db *sqlx.DB, keeper *auth.Keeper) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in Login
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		u, err := FetchByEmail(ctx, db, in.Email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "No Email Found", http.StatusNotFound)
			}
			return fmt.Errorf("fetching user by email: %w", err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
			return weberr.NewError(err, "Email and password do not match", http.StatusUnauthorized)
		}

		token, err := keeper.CreateToken(u.ID, u.Email, u.Admin)
		if err != nil {
			return fmt.Errorf("creating access token for user[%s]: %w", u.ID, err)
		}

		resp := struct {
			Access string `json:"access"`
		}{token}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}

func HandleShowCurrent(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		u, err := Fetch(ctx, db, clm.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "User not found", http.StatusNotFound)
			}
			return fmt.Errorf("fetching user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, u, http.StatusOK)
	}
}

func HandleUpdateProfile(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var up ProfileUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		u, err := Fetch(ctx, db, clm.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "User not found", http.StatusNotFound)
			}
			return fmt.Errorf("fetching user[%s]: %w", clm.UserID, err)
		}

		if up.FirstName != nil {
			u.FirstName = *up.FirstName
		}
		if up.LastName != nil {
			u.LastName = *up.LastName
		}
		if up.Email != nil {
			u.Email = *up.Email
		}
		if up.MobileNo != nil {
			u.MobileNo = *up.MobileNo
		}
		if up.Address != nil {
			u.Address = *up.Address
		}
		u.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, u); err != nil {
			return fmt.Errorf("updating profile of user[%s]: %w", u.ID, err)
		}

		return web.Respond(ctx, w, u, http.StatusOK)
	}
}

func HandleResetPassword(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var pr PasswordReset
		if err := web.Decode(w, r, &pr); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(pr); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(pr.NewPassword), 10)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		if err := UpdatePassword(ctx, db, clm.UserID, string(hash)); err != nil {
			return fmt.Errorf("resetting password of user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		us, err := List(ctx, db)
		if err != nil {
			return fmt.Errorf("listing users: %w", err)
		}

		return web.Respond(ctx, w, us, http.StatusOK)
	}
}

func HandlePromote(db *sqlx.DB) web.Handler {
	return handleAdminFlag(db, true)
}

func HandleDemote(db *sqlx.DB) web.Handler {
	return handleAdminFlag(db, false)
}

func handleAdminFlag(db *sqlx.DB, admin bool) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if _, err := Fetch(ctx, db, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NewError(err, "User not found", http.StatusNotFound)
			}
			return fmt.Errorf("fetching user[%s]: %w", id, err)
		}

		if err := SetAdmin(ctx, db, id, admin); err != nil {
			return fmt.Errorf("toggling admin flag of user[%s]: %w", id, err)
		}

		u, err := Fetch(ctx, db, id)
		if err != nil {
			return fmt.Errorf("fetching user[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, u, http.StatusOK)
	}
}
