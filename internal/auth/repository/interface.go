package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account that can sign in to the API.
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Role         string    `db:"role"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Repository provides user persistence. Get methods return apperr.NotFound
// when the user is absent; CreateUser returns apperr.Conflict on a duplicate
// email.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, u *User) error
	ListUsers(ctx context.Context) ([]User, error)
}
