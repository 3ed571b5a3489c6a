package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"jobtrack/internal/auth"
	"jobtrack/internal/logger"
	"jobtrack/internal/repository"
)

type ctxKey string

const (
	CtxUserID ctxKey = "user_id"
	CtxEmail  ctxKey = "email"
)

// Authenticate resolves the bearer token into a verified, currently-existing
// user. Every failure mode (missing header, bad signature, expired token,
// missing claims, deleted user) produces the same 401 response.
func Authenticate(codec *auth.TokenCodec, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeUnauthorized(w)
				return
			}

			claims, err := codec.Validate(parts[1])
			if err != nil {
				writeUnauthorized(w)
				return
			}

			// the token owner must still exist; the identity handed to
			// downstream ownership checks comes from the database row,
			// not the token claims
			u, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					logger.Log.Error("user lookup failed during auth", zap.Error(err))
				}
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserID, u.ID)
			ctx = context.WithValue(ctx, CtxEmail, u.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   "invalid_token",
		"message": "Could not validate credentials",
	})
}

// UserID returns the authenticated user id placed by Authenticate.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(CtxUserID).(string)
	return id
}

// Email returns the authenticated user email placed by Authenticate.
func Email(ctx context.Context) string {
	email, _ := ctx.Value(CtxEmail).(string)
	return email
}
