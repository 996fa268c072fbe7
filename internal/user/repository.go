package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avencillado/blognest/internal/platform/db"
)

var _ Repository = (*SQLRepository)(nil)

var (
	ErrNotFound       = errors.New("user repository: user not found")
	ErrDuplicateEmail = errors.New("user repository: email already registered")
)

const pgUniqueViolation = "23505"

// Repository is the interface for account persistence.
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (User, error)
	Find(ctx context.Context, userID string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type SQLRepository struct {
	db db.Executor
}

func NewRepository(db db.Executor) *SQLRepository {
	return &SQLRepository{db: db}
}

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

const queryUserCreate = `
INSERT INTO users (id, name, email, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, name, email, verified, created_at, updated_at
`

func (r *SQLRepository) Create(ctx context.Context, params CreateUserParams) (User, error) {
	row := r.db.QueryRowContext(ctx, queryUserCreate, uuid.NewString(), params.Name, params.Email, params.PasswordHash)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Verified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return u, ErrDuplicateEmail
		}
		return u, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

const queryUserColumns = `
id, name, email, password_hash, verified,
verification_code_hash, verification_expires_at,
reset_code_hash, reset_expires_at,
created_at, updated_at
`

func (r *SQLRepository) scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Verified,
		&u.VerifyCodeHash, &u.VerifyExpiresAt,
		&u.ResetCodeHash, &u.ResetExpiresAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *SQLRepository) Find(ctx context.Context, userID string) (*User, error) {
	query := "SELECT " + queryUserColumns + " FROM users WHERE id = $1 LIMIT 1"
	return r.scanUser(r.db.QueryRowContext(ctx, query, userID))
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := "SELECT " + queryUserColumns + " FROM users WHERE email = $1 LIMIT 1"
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}
