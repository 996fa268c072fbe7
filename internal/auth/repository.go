package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/avencillado/blognest/internal/platform/db"
	"github.com/avencillado/blognest/internal/user"
)

var _ Repository = (*SQLRepository)(nil)

type SQLRepository struct {
	db db.Executor
}

func NewRepository(db db.Executor) *SQLRepository {
	return &SQLRepository{db: db}
}

// SetVerifyCode overwrites the pending verification entry. At most one code
// per purpose is outstanding per account.
func (r *SQLRepository) SetVerifyCode(ctx context.Context, userID, codeHash string, expiresAt time.Time) error {
	const query = `
UPDATE users
SET verification_code_hash = $2, verification_expires_at = $3, updated_at = now()
WHERE id = $1 AND verified = FALSE`

	return r.exec(ctx, query, userID, codeHash, expiresAt)
}

// Verify flips the account to verified and clears the pending entry in one
// statement. The guard on the stored signature makes concurrent consumers
// race to first-valid-wins.
func (r *SQLRepository) Verify(ctx context.Context, userID, codeHash string) error {
	const query = `
UPDATE users
SET verified = TRUE, verification_code_hash = NULL, verification_expires_at = NULL, updated_at = now()
WHERE id = $1 AND verified = FALSE AND verification_code_hash = $2`

	return r.execConsume(ctx, query, userID, codeHash)
}

func (r *SQLRepository) SetResetCode(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	const query = `
UPDATE users
SET reset_code_hash = $2, reset_expires_at = $3, updated_at = now()
WHERE email = $1`

	return r.exec(ctx, query, email, codeHash, expiresAt)
}

// ResetPassword commits the new credential and clears the pending reset entry
// atomically, guarded by the stored signature.
func (r *SQLRepository) ResetPassword(ctx context.Context, email, codeHash, passwordHash string) error {
	const query = `
UPDATE users
SET password_hash = $3, reset_code_hash = NULL, reset_expires_at = NULL, updated_at = now()
WHERE email = $1 AND reset_code_hash = $2`

	return r.execConsume(ctx, query, email, codeHash, passwordHash)
}

// ChangePassword overwrites the credential and invalidates any outstanding
// reset attempt.
func (r *SQLRepository) ChangePassword(ctx context.Context, userID, passwordHash string) error {
	const query = `
UPDATE users
SET password_hash = $2, reset_code_hash = NULL, reset_expires_at = NULL, updated_at = now()
WHERE id = $1`

	return r.exec(ctx, query, userID, passwordHash)
}

func (r *SQLRepository) exec(ctx context.Context, query string, args ...any) error {
	return r.execWithZeroRowsErr(ctx, query, user.ErrNotFound, args...)
}

// execConsume is exec for code-consuming transitions: zero affected rows
// means the entry was already consumed or overwritten by a concurrent
// request, which surfaces as a mismatch.
func (r *SQLRepository) execConsume(ctx context.Context, query string, args ...any) error {
	return r.execWithZeroRowsErr(ctx, query, ErrCodeMismatch, args...)
}

func (r *SQLRepository) execWithZeroRowsErr(ctx context.Context, query string, zeroRowsErr error, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("execute query: %w", err)
	}

	numRows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if numRows == 0 {
		return zeroRowsErr
	}

	return nil
}
