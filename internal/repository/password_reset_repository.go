package repository

import (
	"context"
	"database/sql"
	"fmt"

	"jobtrack/internal/models"
)

type PasswordResetRepository interface {
	// Replace removes every existing token for the user and inserts the new
	// one in a single transaction, so at most one unused token exists per
	// user even under concurrent issuance.
	Replace(ctx context.Context, token *models.PasswordResetToken) error

	// ConsumeByTokenHash flips used=TRUE on the matching unused token and
	// returns it. The flip happens whether or not the token turns out to be
	// expired; expiry is the caller's check. Returns sql.ErrNoRows when no
	// unused token matches.
	ConsumeByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)

	WithTx(tx *sql.Tx) PasswordResetRepository
}

type passwordResetRepository struct {
	db    DBTX
	sqlDB *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db, sqlDB: db}
}

func (r *passwordResetRepository) WithTx(tx *sql.Tx) PasswordResetRepository {
	return &passwordResetRepository{db: tx}
}

func (r *passwordResetRepository) Replace(ctx context.Context, token *models.PasswordResetToken) error {
	if r.sqlDB == nil {
		return r.replace(ctx, r.db, token)
	}

	tx, err := r.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.replace(ctx, tx, token); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *passwordResetRepository) replace(ctx context.Context, db DBTX, token *models.PasswordResetToken) error {
	if _, err := db.ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE user_id = $1`, token.UserID,
	); err != nil {
		return fmt.Errorf("failed to delete existing reset tokens: %w", err)
	}

	query := `
		INSERT INTO password_reset_tokens (id, user_id, email, token_hash, used, expires_at, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6)
		RETURNING created_at
	`
	err := db.QueryRowContext(ctx, query,
		token.ID, token.UserID, token.Email, token.TokenHash, token.ExpiresAt, token.CreatedAt,
	).Scan(&token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reset token: %w", err)
	}
	return nil
}

func (r *passwordResetRepository) ConsumeByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	query := `
		UPDATE password_reset_tokens
		SET used = TRUE
		WHERE token_hash = $1 AND used = FALSE
		RETURNING id, user_id, email, token_hash, used, expires_at, created_at
	`

	var t models.PasswordResetToken
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&t.ID, &t.UserID, &t.Email, &t.TokenHash, &t.Used, &t.ExpiresAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
