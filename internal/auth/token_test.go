package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack/internal/auth"
)

const testSecret = "test-secret-key"

func testCodec(t *testing.T) *auth.TokenCodec {
	t.Helper()
	codec, err := auth.NewTokenCodec(testSecret, "HS256", time.Hour)
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodec(t *testing.T) {
	t.Run("rejects unknown algorithm", func(t *testing.T) {
		_, err := auth.NewTokenCodec(testSecret, "XX999", time.Hour)
		assert.Error(t, err)
	})

	t.Run("rejects non-HMAC algorithm", func(t *testing.T) {
		_, err := auth.NewTokenCodec(testSecret, "RS256", time.Hour)
		assert.Error(t, err)
	})

	t.Run("accepts HS256 and HS512", func(t *testing.T) {
		for _, alg := range []string{"HS256", "HS512"} {
			_, err := auth.NewTokenCodec(testSecret, alg, time.Hour)
			assert.NoError(t, err, alg)
		}
	})
}

func TestIssueAndValidate(t *testing.T) {
	codec := testCodec(t)

	t.Run("round trip preserves identity", func(t *testing.T) {
		tokenString, err := codec.Issue("user-1", "user@example.com")
		require.NoError(t, err)

		claims, err := codec.Validate(tokenString)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
	})

	t.Run("token is valid right up to its expiry", func(t *testing.T) {
		tokenString, err := codec.IssueWithTTL("user-1", "user@example.com", time.Minute)
		require.NoError(t, err)

		_, err = codec.Validate(tokenString)
		assert.NoError(t, err)
	})
}

func TestValidateFailures(t *testing.T) {
	codec := testCodec(t)

	t.Run("expired token", func(t *testing.T) {
		tokenString, err := codec.IssueWithTTL("user-1", "user@example.com", -time.Second)
		require.NoError(t, err)

		_, err = codec.Validate(tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		// exp == now at issuance; by validation time now > exp
		tokenString, err := codec.IssueWithTTL("user-1", "user@example.com", 0)
		require.NoError(t, err)
		time.Sleep(1100 * time.Millisecond)

		_, err = codec.Validate(tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("tampered signature", func(t *testing.T) {
		tokenString, err := codec.Issue("user-1", "user@example.com")
		require.NoError(t, err)

		b := []byte(tokenString)
		last := len(b) - 1
		if b[last] == 'A' {
			b[last] = 'B'
		} else {
			b[last] = 'A'
		}

		_, err = codec.Validate(string(b))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := auth.NewTokenCodec("another-secret", "HS256", time.Hour)
		require.NoError(t, err)
		tokenString, err := other.Issue("user-1", "user@example.com")
		require.NoError(t, err)

		_, err = codec.Validate(tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := codec.Validate("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)

		_, err = codec.Validate("")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing subject claim", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"email": "user@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := raw.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = codec.Validate(tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing email claim", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := raw.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = codec.Validate(tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing expiry claim", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":   "user-1",
			"email": "user@example.com",
		})
		tokenString, err := raw.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = codec.Validate(tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("alg none is rejected", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub":   "user-1",
			"email": "user@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = codec.Validate(tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
