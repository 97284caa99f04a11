package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a front-desk account. The password hash never leaves the server.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

const (
	RoleFrontDesk = "front_desk"
	RoleAdmin     = "admin"
)

var validRoles = map[string]bool{
	RoleFrontDesk: true,
	RoleAdmin:     true,
}

// LoginInput is the POST /auth/login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the POST /auth/login response body.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}
