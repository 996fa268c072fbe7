package hash_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencillado/blognest/internal/config"
	"github.com/avencillado/blognest/internal/platform/hash"
)

func testArgon2Config() *config.Argon2 {
	return &config.Argon2{
		Memory:     65536,
		Iterations: 2,
		Threads:    2,
		SaltLength: 16,
		KeyLength:  32,
	}
}

func TestArgon2Hasher_Hash(t *testing.T) {
	t.Parallel()

	hasher := hash.NewArgon2Hasher(testArgon2Config(), "pepper")

	hashed, err := hasher.Hash("Passw0rd1")
	require.NoError(t, err)

	parts := strings.Split(hashed, "$")
	require.Len(t, parts, 6)
	assert.Equal(t, "argon2id", parts[1])

	// fresh salt each call, so two hashes of the same secret differ
	again, err := hasher.Hash("Passw0rd1")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again)
}

func TestArgon2Hasher_Verify(t *testing.T) {
	t.Parallel()

	hasher := hash.NewArgon2Hasher(testArgon2Config(), "pepper")

	hashed, err := hasher.Hash("Passw0rd1")
	require.NoError(t, err)

	ok, err := hasher.Verify("Passw0rd1", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("NotThePassword1", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_VerifyMalformedDigest(t *testing.T) {
	t.Parallel()

	hasher := hash.NewArgon2Hasher(testArgon2Config(), "pepper")

	for _, malformed := range []string{"", "not-a-digest", "$argon2id$v=19$m=bad$x$y"} {
		ok, err := hasher.Verify("anything", malformed)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestHMACSigner_Sign(t *testing.T) {
	t.Parallel()

	signer := hash.NewHMACSigner("code-key")

	sig := signer.Sign("123456")
	assert.NotEmpty(t, sig)
	assert.Equal(t, sig, signer.Sign("123456"))
	assert.NotEqual(t, sig, signer.Sign("123457"))

	otherKey := hash.NewHMACSigner("other-key")
	assert.NotEqual(t, sig, otherKey.Sign("123456"))
}
