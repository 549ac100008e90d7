package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

type Server struct {
	repo      Repository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewServer(repo Repository, jwtSecret []byte, tokenTTL time.Duration) *Server {
	return &Server{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Router serves the /auth subtree: register and login.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	return r
}

// UsersRouter serves the /users subtree behind the bearer middleware.
func (s *Server) UsersRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(s.RequireUser)
	r.Get("/me", s.handleMe)
	return r
}

// register creates an account and issues its first token. The
// existence lookup runs immediately before the insert; the UNIQUE
// constraint on users.email is the backstop for the race between the
// two (two concurrent registers can both pass the lookup).
func (s *Server) register(ctx context.Context, username, email, password string) (string, User, error) {
	_, err := s.repo.FindUserByEmail(ctx, email)
	if err == nil {
		return "", User{}, ErrDuplicateEmail
	}
	if err != ErrUserNotFound {
		return "", User{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, username, email, string(hash))
	if err != nil {
		return "", User{}, fmt.Errorf("create user: %w", err)
	}

	token, err := IssueToken(s.jwtSecret, user.ID, s.tokenTTL)
	if err != nil {
		return "", User{}, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// login authenticates by email and password. An unknown email and a
// wrong password both come back as ErrInvalidCredentials; callers must
// not be able to tell the two apart.
func (s *Server) login(ctx context.Context, email, password string) (string, User, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := IssueToken(s.jwtSecret, user.ID, s.tokenTTL)
	if err != nil {
		return "", User{}, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
