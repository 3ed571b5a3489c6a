package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"jobtrack/internal/auth"
	"jobtrack/internal/logger"
	"jobtrack/internal/models"
	"jobtrack/internal/repository"
)

var (
	// ErrEmailTaken is returned by Register when the email already has an
	// account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so callers cannot tell which half failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrResetTokenNotFound: no unused token matches the secret. Also the
	// answer for any already-consumed token, expired or not.
	ErrResetTokenNotFound = errors.New("reset token not found")

	// ErrResetTokenExpired: the token matched but its window has passed.
	// The token is burned when this is returned.
	ErrResetTokenExpired = errors.New("reset token expired")
)

// AuthService orchestrates registration, login and the password reset
// lifecycle on top of the hasher, token codec and stores.
type AuthService struct {
	db          *sql.DB
	users       repository.UserRepository
	resets      repository.PasswordResetRepository
	hasher      *auth.Hasher
	tokens      *auth.TokenCodec
	mailer      EmailSender
	resetTTL    time.Duration
	frontendURL string
}

func NewAuthService(
	db *sql.DB,
	users repository.UserRepository,
	resets repository.PasswordResetRepository,
	hasher *auth.Hasher,
	tokens *auth.TokenCodec,
	mailer EmailSender,
	resetTTL time.Duration,
	frontendURL string,
) *AuthService {
	return &AuthService{
		db:          db,
		users:       users,
		resets:      resets,
		hasher:      hasher,
		tokens:      tokens,
		mailer:      mailer,
		resetTTL:    resetTTL,
		frontendURL: frontendURL,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return s.tokens.Issue(u.ID, u.Email)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		// corrupt stored digest: a server-side integrity problem, not a
		// credentials failure
		logger.Log.Error("stored password digest is corrupt",
			zap.String("user_id", u.ID), zap.Error(err))
		return "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(u.ID, u.Email)
}

// ForgotPassword always reports success to the caller. When the account
// exists it replaces any outstanding reset token and mails the new secret;
// the secret never appears in the HTTP response.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Log.Error("forgot-password user lookup failed", zap.Error(err))
		}
		return nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		logger.Log.Error("failed to generate reset secret", zap.Error(err))
		return nil
	}
	secret := hex.EncodeToString(raw)

	token := &models.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Email:     u.Email,
		TokenHash: HashResetSecret(secret),
		ExpiresAt: time.Now().UTC().Add(s.resetTTL),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.resets.Replace(ctx, token); err != nil {
		logger.Log.Error("failed to store reset token",
			zap.String("user_id", u.ID), zap.Error(err))
		return nil
	}

	subject := "Reset your password"
	body := "Use this link to reset your password:\n\n" +
		s.frontendURL + "/reset-password?token=" + secret +
		"\n\nThe link expires in " + s.resetTTL.String() + "."
	if err := s.mailer.Send(u.Email, subject, body); err != nil {
		// the caller still gets the generic acknowledgement
		logger.Log.Error("failed to send reset email",
			zap.String("user_id", u.ID), zap.Error(err))
	}

	return nil
}

// ResetPassword consumes the token and updates the password inside one
// transaction. An expired token is committed as consumed before returning
// ErrResetTokenExpired, so the secret cannot be retried. A failed password
// update rolls everything back.
func (s *AuthService) ResetPassword(ctx context.Context, secret, newPassword string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rec, err := s.resets.WithTx(tx).ConsumeByTokenHash(ctx, HashResetSecret(secret))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResetTokenNotFound
		}
		return err
	}

	if time.Now().UTC().After(rec.ExpiresAt) {
		if err := tx.Commit(); err != nil {
			return err
		}
		return ErrResetTokenExpired
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.users.WithTx(tx).UpdatePasswordHash(ctx, rec.UserID, digest); err != nil {
		return fmt.Errorf("failed to persist new password: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Log.Info("password reset completed", zap.String("user_id", rec.UserID))
	return nil
}

// HashResetSecret is the at-rest form of a reset secret; only the SHA-256
// hash ever touches the database.
func HashResetSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
