package user

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, u User) error {
	const q = `
	INSERT INTO users (user_id, first_name, last_name, email, mobile_no, address, password, is_admin, created_at, updated_at)
	VALUES (:user_id, :first_name, :last_name, :email, :mobile_no, :address, :password, :is_admin, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, u); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (User, error) {
	const q = `SELECT * FROM users WHERE user_id = $1`

	var u User
	if err := sqlx.GetContext(ctx, db, &u, q, id); err != nil {
		return User{}, err
	}

	return u, nil
}

func FetchByEmail(ctx context.Context, db sqlx.ExtContext, email string) (User, error) {
	const q = `SELECT * FROM users WHERE email = $1`

	var u User
	if err := sqlx.GetContext(ctx, db, &u, q, email); err != nil {
		return User{}, err
	}

	return u, nil
}

func List(ctx context.Context, db sqlx.ExtContext) ([]User, error) {
	const q = `SELECT * FROM users ORDER BY created_at`

	us := []User{}
	if err := sqlx.SelectContext(ctx, db, &us, q); err != nil {
		return nil, fmt.Errorf("selecting users: %w", err)
	}

	return us, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, u User) error {
	const q = `
	UPDATE users SET
	first_name = :first_name,
	last_name = :last_name,
	email = :email,
	mobile_no = :mobile_no,
	address = :address,
	updated_at = :updated_at
	WHERE user_id = :user_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, u); err != nil {
		return fmt.Errorf("updating user[%s]: %w", u.ID, err)
	}

	return nil
}

func SetAdmin(ctx context.Context, db sqlx.ExtContext, id string, admin bool) error {
	const q = `UPDATE users SET is_admin = $2, updated_at = now() WHERE user_id = $1`

	if _, err := db.ExecContext(ctx, q, id, admin); err != nil {
		return fmt.Errorf("setting admin flag of user[%s]: %w", id, err)
	}

	return nil
}

func UpdatePassword(ctx context.Context, db sqlx.ExtContext, id string, hash string) error {
	const q = `UPDATE users SET password = $2, updated_at = now() WHERE user_id = $1`

	if _, err := db.ExecContext(ctx, q, id, hash); err != nil {
		return fmt.Errorf("updating password of user[%s]: %w", id, err)
	}

	return nil
}
