package user

import "time"

type User struct {
	ID           string    `json:"id" db:"user_id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	MobileNo     string    `json:"mobileNo" db:"mobile_no"`
	Address      string    `json:"address" db:"address"`
	PasswordHash string    `json:"-" db:"password"`
	Admin        bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type UserNew struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	MobileNo  string `json:"mobileNo" validate:"required,len=11"`
	Address   string `json:"address" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileUp struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" validate:"omitempty,email"`
	MobileNo  *string `json:"mobileNo" validate:"omitempty,len=11"`
	Address   *string `json:"address"`
}

type PasswordReset struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
