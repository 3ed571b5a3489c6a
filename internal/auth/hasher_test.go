package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack/internal/auth"
)

// low-cost parameters keep the test suite fast
func testHasher() *auth.Hasher {
	return auth.NewHasher(auth.Argon2Params{MemoryKB: 1024, Time: 1, Threads: 1})
}

func TestHashPassword(t *testing.T) {
	hasher := testHasher()

	t.Run("produces self-describing digest", func(t *testing.T) {
		digest, err := hasher.Hash("password123")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(digest, "$argon2id$"))
		assert.Len(t, strings.Split(digest, "$"), 6)
	})

	t.Run("same password produces different digests (salt)", func(t *testing.T) {
		d1, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		d2, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, d1, d2)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.Error(t, err)
	})
}

func TestVerifyPassword(t *testing.T) {
	hasher := testHasher()

	t.Run("correct password verifies", func(t *testing.T) {
		digest, err := hasher.Hash("correctpassword")
		require.NoError(t, err)

		ok, err := hasher.Verify("correctpassword", digest)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password fails without error", func(t *testing.T) {
		digest, err := hasher.Hash("correctpassword")
		require.NoError(t, err)

		ok, err := hasher.Verify("wrongpassword", digest)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("verifies under the digest's own parameters", func(t *testing.T) {
		digest, err := hasher.Hash("portable")
		require.NoError(t, err)

		// a hasher configured differently must still verify: all
		// parameters come from the digest itself
		other := auth.NewHasher(auth.Argon2Params{MemoryKB: 2048, Time: 2, Threads: 2})
		ok, err := other.Verify("portable", digest)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("malformed digest returns error", func(t *testing.T) {
		_, err := hasher.Verify("password", "not-a-valid-digest")
		assert.Error(t, err)
	})

	t.Run("wrong algorithm returns error", func(t *testing.T) {
		_, err := hasher.Verify("password", "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported hash algorithm")
	})

	t.Run("invalid parameters returns error", func(t *testing.T) {
		_, err := hasher.Verify("password", "$argon2id$v=19$invalid$c2FsdA$aGFzaA")
		assert.Error(t, err)
	})

	t.Run("invalid salt base64 returns error", func(t *testing.T) {
		_, err := hasher.Verify("password", "$argon2id$v=19$m=1024,t=1,p=1$!!!bad!!!$aGFzaA")
		assert.Error(t, err)
	})

	t.Run("threads overflow returns error", func(t *testing.T) {
		_, err := hasher.Verify("password", "$argon2id$v=19$m=1024,t=1,p=256$c2FsdA$aGFzaA")
		assert.Error(t, err)
	})
}
