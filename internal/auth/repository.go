package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	FindUserByEmail(ctx context.Context, email string) (User, error)
	FindUserByID(ctx context.Context, id string) (User, error)
	CreateUser(ctx context.Context, username, email, passwordHash string) (User, error)
}

// DBOps defines the subset of pgxpool.Pool methods we use.
// This allows us to inject a mock for testing.
type DBOps interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBOps
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func NewRepositoryWithDB(db DBOps) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindUserByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT
        id, username, email, password_hash, created_at, updated_at
      FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresRepository) FindUserByID(ctx context.Context, id string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT
        id, username, email, password_hash, created_at, updated_at
      FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// CreateUser inserts a new account with a freshly generated identifier
// and identical created_at/updated_at timestamps.
func (r *PostgresRepository) CreateUser(ctx context.Context, username, email, passwordHash string) (User, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	row := r.db.QueryRow(ctx, `INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $5)
        RETURNING id, username, email, password_hash, created_at, updated_at`,
		id, username, email, passwordHash, now,
	)
	return scanUser(row)
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}
