package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// User is the stored account record. The password hash never leaves
// this package: it is excluded from JSON and from UserResponse.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserResponse is the outward-facing view of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Response() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned by register when the email is
	// already taken (detected by the pre-insert lookup).
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so that login responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AutoMigrate creates the users table. The UNIQUE constraint on email
// backs up the register pre-check: two concurrent registrations can
// both pass the lookup, but only one insert wins.
func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS users (
          id            uuid PRIMARY KEY,
          username      TEXT NOT NULL,
          email         TEXT UNIQUE NOT NULL,
          password_hash TEXT NOT NULL,
          created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `)
	if err != nil {
		log.Printf("auth: migrate users: %v", err)
		return err
	}
	return nil
}
